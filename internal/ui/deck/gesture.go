package deck

import (
	"pomodorodeck/internal/core/pomodoro"
	"pomodorodeck/internal/plugin"
)

// Gesture is a pointer interaction on a simulated surface.
type Gesture int

const (
	GesturePrimary Gesture = iota
	GestureSecondary
	GestureScrollUp
	GestureScrollDown
)

// Events returns the input events a physical deck would emit for gesture
// on a surface of the given kind, in emission order.
func Events(kind plugin.InputKind, gesture Gesture) []pomodoro.InputEvent {
	switch kind {
	case plugin.InputKey:
		switch gesture {
		case GesturePrimary:
			return []pomodoro.InputEvent{pomodoro.KeyDown, pomodoro.KeyUp, pomodoro.KeyShortUp}
		case GestureSecondary:
			return []pomodoro.InputEvent{pomodoro.KeyDown, pomodoro.KeyHoldStart, pomodoro.KeyUp, pomodoro.KeyHoldStop}
		}
	case plugin.InputDial:
		switch gesture {
		case GesturePrimary:
			return []pomodoro.InputEvent{pomodoro.DialDown, pomodoro.DialUp, pomodoro.DialShortUp}
		case GestureSecondary:
			return []pomodoro.InputEvent{pomodoro.DialShortTouchPress}
		case GestureScrollUp:
			return []pomodoro.InputEvent{pomodoro.DialTurnCW}
		case GestureScrollDown:
			return []pomodoro.InputEvent{pomodoro.DialTurnCCW}
		}
	}
	return nil
}
