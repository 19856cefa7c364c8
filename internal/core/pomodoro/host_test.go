package pomodoro

import (
	"time"

	"pomodorodeck/internal/core/model"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) Advance(delta time.Duration) {
	clock.now = clock.now.Add(delta)
}

type fakeTimer struct {
	interval  time.Duration
	fn        func() bool
	cancelled int
	stopped   bool
}

func (timer *fakeTimer) Cancel() {
	timer.cancelled++
}

// fire runs one scheduled invocation the way a host loop would.
func (timer *fakeTimer) fire() bool {
	if timer.cancelled > 0 || timer.stopped {
		return false
	}
	if !timer.fn() {
		timer.stopped = true
		return false
	}
	return true
}

type fakeHost struct {
	settings     map[string]any
	saves        int
	noBackground bool

	media       []string
	bottom      string
	center      string
	centerCalls int
	backgrounds []model.RGBA
	timers      []*fakeTimer
}

func newFakeHost() *fakeHost {
	return &fakeHost{settings: map[string]any{}}
}

func (host *fakeHost) SetMedia(path string, size float64, valign float64) {
	host.media = append(host.media, path)
}

func (host *fakeHost) SetBottomLabel(text string) {
	host.bottom = text
}

func (host *fakeHost) SetCenterLabel(text string) {
	host.center = text
	host.centerCalls++
}

func (host *fakeHost) SetBackgroundColor(color model.RGBA) {
	host.backgrounds = append(host.backgrounds, color)
}

func (host *fakeHost) Settings() map[string]any {
	copied := make(map[string]any, len(host.settings))
	for key, value := range host.settings {
		copied[key] = value
	}
	return copied
}

func (host *fakeHost) SetSettings(settings map[string]any) {
	host.settings = settings
	host.saves++
}

func (host *fakeHost) Every(interval time.Duration, fn func() bool) TimerHandle {
	timer := &fakeTimer{interval: interval, fn: fn}
	host.timers = append(host.timers, timer)
	return timer
}

func (host *fakeHost) Background() (BackgroundColorer, bool) {
	if host.noBackground {
		return nil, false
	}
	return host, true
}

func (host *fakeHost) lastBackground() model.RGBA {
	if len(host.backgrounds) == 0 {
		return model.RGBA{}
	}
	return host.backgrounds[len(host.backgrounds)-1]
}

func newTestAction(host *fakeHost, clock *fakeClock) *Action {
	action := New(host, Options{Now: clock.Now})
	action.OnReady()
	return action
}
