// Package host is a minimal deck host for the Pomodoro plugin: a single
// goroutine that delivers ticks, input events, config edits and recurring
// timer callbacks to action placements one at a time.
//
// Maintenance notes:
//   - Actions hold no locks. Anything that touches a *pomodoro.Action must
//     run on the loop, through Post, Call, or the Placement helpers.
//   - Never call Call from inside a loop callback: it waits for the loop
//     and would deadlock.
package host

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"pomodorodeck/internal/core/pomodoro"
)

// ErrStopped is returned when work is posted to a stopped loop.
var ErrStopped = errors.New("host loop stopped")

// Options contains runtime options for the Loop.
type Options struct {
	TickInterval time.Duration
	QueueSize    int
}

// Loop serializes every callback delivered to the placed actions.
type Loop struct {
	options Options
	queue   chan func()
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	running bool
	stopped bool

	// loop-owned
	placements []*Placement
}

// NewLoop creates a Loop. It does nothing until Start.
func NewLoop(options Options) *Loop {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.QueueSize <= 0 {
		options.QueueSize = 256
	}
	return &Loop{
		options: options,
		queue:   make(chan func(), options.QueueSize),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start launches the loop goroutine.
func (loop *Loop) Start() {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	if loop.running || loop.stopped {
		return
	}
	loop.running = true
	go loop.run()
}

// Stop removes every placement and terminates the loop.
func (loop *Loop) Stop() {
	loop.mu.Lock()
	if loop.stopped {
		loop.mu.Unlock()
		return
	}
	loop.stopped = true
	running := loop.running
	close(loop.stopCh)
	loop.mu.Unlock()

	if running {
		<-loop.doneCh
		return
	}
	loop.removeAll()
}

// Post enqueues fn to run on the loop.
func (loop *Loop) Post(fn func()) error {
	select {
	case <-loop.stopCh:
		return ErrStopped
	default:
	}

	select {
	case loop.queue <- fn:
		return nil
	case <-loop.stopCh:
		return ErrStopped
	}
}

// Call runs fn on the loop and waits for it to finish.
func (loop *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	err := loop.Post(func() {
		defer close(done)
		fn()
	})
	if err != nil {
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-loop.stopCh:
		return ErrStopped
	}
}

// Every schedules fn on the loop every interval until it returns false or
// the handle is cancelled. The next run is scheduled after fn returns.
func (loop *Loop) Every(interval time.Duration, fn func() bool) pomodoro.TimerHandle {
	handle := &recurring{loop: loop, interval: interval, fn: fn}
	handle.schedule()
	return handle
}

func (loop *Loop) run() {
	defer close(loop.doneCh)

	ticker := time.NewTicker(loop.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-loop.stopCh:
			loop.removeAll()
			return
		case fn := <-loop.queue:
			fn()
		case <-ticker.C:
			loop.tick()
		}
	}
}

func (loop *Loop) tick() {
	placements := append([]*Placement(nil), loop.placements...)
	for _, placement := range placements {
		placement.action.OnTick()
	}
}

func (loop *Loop) attach(placement *Placement) {
	loop.placements = append(loop.placements, placement)
	placement.action.OnReady()
}

func (loop *Loop) detach(placement *Placement) {
	if placement.removed {
		return
	}
	placement.removed = true
	placement.action.OnRemove()
	for index, candidate := range loop.placements {
		if candidate == placement {
			loop.placements = append(loop.placements[:index], loop.placements[index+1:]...)
			return
		}
	}
}

func (loop *Loop) removeAll() {
	placements := append([]*Placement(nil), loop.placements...)
	for _, placement := range placements {
		loop.detach(placement)
	}
}

type recurring struct {
	loop      *Loop
	interval  time.Duration
	fn        func() bool
	cancelled atomic.Bool

	mu    sync.Mutex
	timer *time.Timer
}

func (handle *recurring) schedule() {
	handle.mu.Lock()
	defer handle.mu.Unlock()
	if handle.cancelled.Load() {
		return
	}
	handle.timer = time.AfterFunc(handle.interval, handle.fire)
}

func (handle *recurring) fire() {
	if handle.cancelled.Load() {
		return
	}
	_ = handle.loop.Post(func() {
		if handle.cancelled.Load() {
			return
		}
		if !handle.fn() {
			handle.cancelled.Store(true)
			return
		}
		handle.schedule()
	})
}

// Cancel stops the timer. Calling it again is a no-op.
func (handle *recurring) Cancel() {
	if handle.cancelled.Swap(true) {
		return
	}
	handle.mu.Lock()
	defer handle.mu.Unlock()
	if handle.timer != nil {
		handle.timer.Stop()
	}
}
