package pomodoro

import (
	"time"

	"pomodorodeck/internal/core/model"
)

// Display renders the action on its input surface.
type Display interface {
	SetMedia(path string, size float64, valign float64)
	SetBottomLabel(text string)
	SetCenterLabel(text string)
}

// BackgroundColorer fills the surface background. Not every surface has one.
type BackgroundColorer interface {
	SetBackgroundColor(color model.RGBA)
}

// SettingsStore gives access to the host-persisted settings of one placement.
type SettingsStore interface {
	Settings() map[string]any
	SetSettings(settings map[string]any)
}

// TimerHandle cancels a recurring timer. Cancel must be safe to call twice.
type TimerHandle interface {
	Cancel()
}

// Scheduler runs fn every interval on the host loop until fn returns false
// or the handle is cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func() bool) TimerHandle
}

// Host is everything the action consumes from the deck application.
type Host interface {
	Display
	SettingsStore
	Scheduler

	// Background reports the background painter of the current surface.
	Background() (BackgroundColorer, bool)
}
