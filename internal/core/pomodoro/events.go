package pomodoro

import (
	"errors"
	"fmt"
	"time"
)

// Phase represents the current mode of the action.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseRunning          Phase = "running"
	PhaseFinishedBlinking Phase = "finished_blinking"
)

// SlotIndex selects one of the two countdown slots.
type SlotIndex int

const (
	SlotFirst  SlotIndex = 1
	SlotSecond SlotIndex = 2
)

// Other returns the slot that is not this one.
func (slot SlotIndex) Other() SlotIndex {
	if slot == SlotFirst {
		return SlotSecond
	}
	return SlotFirst
}

func (slot SlotIndex) valid() bool {
	return slot == SlotFirst || slot == SlotSecond
}

// ColorIndex selects one of the two finish colors.
type ColorIndex int

const (
	ColorPrimary   ColorIndex = 1
	ColorSecondary ColorIndex = 2
)

// InputEvent is an input event forwarded by the host.
type InputEvent string

const (
	KeyDown             InputEvent = "key_down"
	KeyUp               InputEvent = "key_up"
	KeyShortUp          InputEvent = "key_short_up"
	KeyHoldStart        InputEvent = "key_hold_start"
	KeyHoldStop         InputEvent = "key_hold_stop"
	DialDown            InputEvent = "dial_down"
	DialUp              InputEvent = "dial_up"
	DialShortUp         InputEvent = "dial_short_up"
	DialHoldStart       InputEvent = "dial_hold_start"
	DialTurnCW          InputEvent = "dial_turn_cw"
	DialTurnCCW         InputEvent = "dial_turn_ccw"
	DialShortTouchPress InputEvent = "dial_short_touch_press"
	DialLongTouchPress  InputEvent = "dial_long_touch_press"
)

// ErrUnknownInputEvent is returned for an unrecognised event name.
var ErrUnknownInputEvent = errors.New("unknown input event")

var inputEvents = []InputEvent{
	KeyDown, KeyUp, KeyShortUp, KeyHoldStart, KeyHoldStop,
	DialDown, DialUp, DialShortUp, DialHoldStart, DialTurnCW, DialTurnCCW,
	DialShortTouchPress, DialLongTouchPress,
}

// InputEvents lists every known input event.
func InputEvents() []InputEvent {
	return append([]InputEvent(nil), inputEvents...)
}

// ParseInputEvent resolves an event by name.
func ParseInputEvent(name string) (InputEvent, error) {
	for _, event := range inputEvents {
		if string(event) == name {
			return event, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownInputEvent, name)
}

// IsConfirm reports whether the event is a short confirming activation.
func (event InputEvent) IsConfirm() bool {
	switch event {
	case KeyShortUp, DialShortUp, DialShortTouchPress:
		return true
	default:
		return false
	}
}

// EventType defines the type of action event.
type EventType string

const (
	EventPhaseChange EventType = "phase_change"
	EventProgress    EventType = "progress"
)

// Event represents an action update for observers.
type Event struct {
	Type      EventType
	Phase     Phase
	Slot      SlotIndex
	Label     string
	Remaining time.Duration
	At        time.Time
}
