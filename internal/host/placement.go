package host

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pomodorodeck/internal/core/pomodoro"
	"pomodorodeck/internal/plugin"
)

// ErrUnsupportedSurface indicates an action that cannot run on a surface kind.
var ErrUnsupportedSurface = errors.New("action does not support surface")

// Surface is a rendered input element: a key, a dial, a touch strip.
// Surfaces that can fill their background also implement
// pomodoro.BackgroundColorer.
type Surface interface {
	pomodoro.Display
	Kind() plugin.InputKind
}

// SettingsBackend persists the settings map of each placement.
type SettingsBackend interface {
	Load(id string) (map[string]any, error)
	Save(id string, settings map[string]any) error
}

// Placement is one action instance bound to one surface. It is the
// pomodoro.Host seen by the action.
type Placement struct {
	id         string
	loop       *Loop
	surface    Surface
	backend    SettingsBackend
	background pomodoro.BackgroundColorer
	action     *pomodoro.Action

	// loop-owned
	removed bool
}

// Attach creates an action for holder on surface and runs its OnReady on
// the loop.
func (loop *Loop) Attach(holder plugin.ActionHolder, id string, surface Surface, backend SettingsBackend, options pomodoro.Options) (*Placement, error) {
	if holder.Supports(surface.Kind()) == plugin.Unsupported {
		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedSurface, holder.ID(), surface.Kind())
	}

	placement := &Placement{
		id:      id,
		loop:    loop,
		surface: surface,
		backend: backend,
	}
	if painter, ok := surface.(pomodoro.BackgroundColorer); ok {
		placement.background = painter
	}
	placement.action = holder.NewAction(placement, options)

	if err := loop.Post(func() { loop.attach(placement) }); err != nil {
		return nil, err
	}
	return placement, nil
}

// ID returns the persisted placement id.
func (placement *Placement) ID() string {
	return placement.id
}

// Kind returns the surface kind.
func (placement *Placement) Kind() plugin.InputKind {
	return placement.surface.Kind()
}

// Dispatch forwards an input event to the action.
func (placement *Placement) Dispatch(event pomodoro.InputEvent) error {
	return placement.Do(func(action *pomodoro.Action) {
		action.OnInputEvent(event)
	})
}

// Do runs fn with the action on the loop.
func (placement *Placement) Do(fn func(action *pomodoro.Action)) error {
	return placement.loop.Post(func() {
		if placement.removed {
			return
		}
		fn(placement.action)
	})
}

// Call runs fn with the action on the loop and waits for it.
func (placement *Placement) Call(ctx context.Context, fn func(action *pomodoro.Action)) error {
	return placement.loop.Call(ctx, func() {
		if placement.removed {
			return
		}
		fn(placement.action)
	})
}

// Remove tears the action down. Removing twice is a no-op.
func (placement *Placement) Remove() error {
	return placement.loop.Post(func() {
		placement.loop.detach(placement)
	})
}

// SetMedia implements pomodoro.Display.
func (placement *Placement) SetMedia(path string, size float64, valign float64) {
	placement.surface.SetMedia(path, size, valign)
}

// SetBottomLabel implements pomodoro.Display.
func (placement *Placement) SetBottomLabel(text string) {
	placement.surface.SetBottomLabel(text)
}

// SetCenterLabel implements pomodoro.Display.
func (placement *Placement) SetCenterLabel(text string) {
	placement.surface.SetCenterLabel(text)
}

// Background reports the background painter of the surface, if it has one.
func (placement *Placement) Background() (pomodoro.BackgroundColorer, bool) {
	return placement.background, placement.background != nil
}

// Every implements pomodoro.Scheduler.
func (placement *Placement) Every(interval time.Duration, fn func() bool) pomodoro.TimerHandle {
	return placement.loop.Every(interval, fn)
}

// Settings implements pomodoro.SettingsStore. Read failures yield an
// empty map so the action falls back to defaults.
func (placement *Placement) Settings() map[string]any {
	settings, err := placement.backend.Load(placement.id)
	if err != nil {
		log.Printf("settings: load %s: %v", placement.id, err)
		return map[string]any{}
	}
	return settings
}

// SetSettings implements pomodoro.SettingsStore.
func (placement *Placement) SetSettings(settings map[string]any) {
	if err := placement.backend.Save(placement.id, settings); err != nil {
		log.Printf("settings: save %s: %v", placement.id, err)
	}
}

var _ pomodoro.Host = (*Placement)(nil)
