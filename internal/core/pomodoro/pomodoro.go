// Package pomodoro implements the Pomodoro deck action: a two-slot
// countdown that blinks the key background when it reaches zero.
//
// Every entry point (OnReady, OnTick, OnInputEvent, OnRemove, the config
// setters and the blink callback) is expected to be invoked serially by the
// host loop. The Action holds no locks.
package pomodoro

import (
	"fmt"
	"os"
	"time"

	"pomodorodeck/internal/core/model"
)

const (
	// BlinkInterval is the cadence of the finish color alternation.
	BlinkInterval = 500 * time.Millisecond

	iconSize   = 0.35
	iconVAlign = -1
)

// Options contains runtime options for an Action.
type Options struct {
	// IconPath is the plugin icon. Refreshes skip it when the file is absent.
	IconPath string
	// Now defaults to time.Now.
	Now func() time.Time
}

// Action is one placement of the Pomodoro action.
type Action struct {
	host    Host
	options Options
	config  model.TimerConfig

	phase     Phase
	active    SlotIndex
	startedAt time.Time
	blinkOn   bool
	blink     TimerHandle

	events []chan Event
}

// New creates an idle Action on the first slot.
func New(host Host, options Options) *Action {
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Action{
		host:    host,
		options: options,
		config:  model.DefaultTimerConfig(),
		phase:   PhaseIdle,
		active:  SlotFirst,
	}
}

// Subscribe registers a new observer channel.
func (action *Action) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	action.events = append(action.events, ch)
	return ch
}

// OnReady loads the persisted settings and draws the initial state.
func (action *Action) OnReady() {
	action.config = ConfigFromSettings(action.host.Settings())
	action.refresh()
	action.emitPhase()
}

// OnTick advances a running countdown. The host calls it once per second.
func (action *Action) OnTick() {
	if action.phase != PhaseRunning {
		return
	}
	remaining := action.Remaining()
	if remaining <= 0 {
		action.finish()
		return
	}
	action.refresh()
	action.emit(Event{
		Type:      EventProgress,
		Phase:     action.phase,
		Slot:      action.active,
		Label:     action.label(),
		Remaining: remaining,
		At:        action.options.Now(),
	})
}

// OnInputEvent handles a press. Only confirm presses change state.
func (action *Action) OnInputEvent(event InputEvent) {
	if !event.IsConfirm() {
		return
	}
	switch action.phase {
	case PhaseIdle:
		action.start()
	case PhaseRunning:
		action.switchToOtherIdle()
	case PhaseFinishedBlinking:
		action.switchAndStart()
	}
}

// OnRemove releases the blink timer and detaches observers.
func (action *Action) OnRemove() {
	action.stopBlink()
	action.phase = PhaseIdle
	action.startedAt = time.Time{}
	action.blinkOn = false

	events := action.events
	action.events = nil
	for _, ch := range events {
		close(ch)
	}
}

// Phase returns the current phase.
func (action *Action) Phase() Phase {
	return action.phase
}

// ActiveSlot returns the selected slot.
func (action *Action) ActiveSlot() SlotIndex {
	return action.active
}

// StartedAt returns the start of the running countdown, zero otherwise.
func (action *Action) StartedAt() time.Time {
	return action.startedAt
}

// BlinkOn reports which finish color is showing.
func (action *Action) BlinkOn() bool {
	return action.blinkOn
}

// Blinking reports whether a blink timer is scheduled.
func (action *Action) Blinking() bool {
	return action.blink != nil
}

// Config returns a copy of the in-memory configuration.
func (action *Action) Config() model.TimerConfig {
	return action.config
}

// Remaining returns the time left on the active slot in whole seconds.
// Idle reports the full duration.
func (action *Action) Remaining() time.Duration {
	total := action.duration()
	if action.startedAt.IsZero() {
		return total
	}
	remaining := total - action.options.Now().Sub(action.startedAt)
	remaining = remaining.Truncate(time.Second)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (action *Action) duration() time.Duration {
	return time.Duration(action.slot(action.active).DurationMinutes) * time.Minute
}

func (action *Action) label() string {
	return action.slot(action.active).Label
}

func (action *Action) slot(index SlotIndex) model.Slot {
	if index == SlotSecond {
		return action.config.Slots[1]
	}
	return action.config.Slots[0]
}

func (action *Action) start() {
	action.phase = PhaseRunning
	action.startedAt = action.options.Now()
	action.refresh()
	action.emitPhase()
}

func (action *Action) switchToOtherIdle() {
	action.stopBlink()
	action.active = action.active.Other()
	action.phase = PhaseIdle
	action.startedAt = time.Time{}
	action.blinkOn = false
	action.paint(model.Transparent)
	action.refresh()
	action.emitPhase()
}

func (action *Action) switchAndStart() {
	action.stopBlink()
	action.active = action.active.Other()
	action.blinkOn = false
	action.paint(model.Transparent)
	action.start()
}

func (action *Action) finish() {
	action.phase = PhaseFinishedBlinking
	action.startedAt = time.Time{}
	action.blinkOn = true
	action.refresh()

	if action.config.BlinkEnabled {
		action.blink = action.host.Every(BlinkInterval, action.blinkStep)
	}
	action.paint(action.config.Color1)
	action.emitPhase()
}

func (action *Action) blinkStep() bool {
	if action.phase != PhaseFinishedBlinking {
		action.blink = nil
		return false
	}
	action.blinkOn = !action.blinkOn
	if action.blinkOn {
		action.paint(action.config.Color1)
	} else {
		action.paint(action.config.Color2)
	}
	return true
}

func (action *Action) stopBlink() {
	if action.blink == nil {
		return
	}
	action.blink.Cancel()
	action.blink = nil
}

func (action *Action) paint(color model.RGBA) {
	painter, ok := action.host.Background()
	if !ok || painter == nil {
		return
	}
	painter.SetBackgroundColor(color)
}

func (action *Action) refresh() {
	if action.options.IconPath != "" {
		if _, err := os.Stat(action.options.IconPath); err == nil {
			action.host.SetMedia(action.options.IconPath, iconSize, iconVAlign)
		}
	}

	action.host.SetBottomLabel(action.label())

	switch action.phase {
	case PhaseFinishedBlinking:
		action.host.SetCenterLabel("00:00")
	default:
		action.host.SetCenterLabel(FormatTime(action.Remaining()))
	}
}

func (action *Action) emitPhase() {
	action.emit(Event{
		Type:      EventPhaseChange,
		Phase:     action.phase,
		Slot:      action.active,
		Label:     action.label(),
		Remaining: action.Remaining(),
		At:        action.options.Now(),
	})
}

func (action *Action) emit(event Event) {
	if event.Phase == PhaseFinishedBlinking {
		event.Remaining = 0
	}
	for _, ch := range action.events {
		select {
		case ch <- event:
		default:
		}
	}
}

// FormatTime converts a duration into MM:SS. Minutes are not wrapped at 60.
func FormatTime(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value / time.Second)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
