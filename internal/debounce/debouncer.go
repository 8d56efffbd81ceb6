// Package debounce runs the latest of a burst of tasks once the burst goes quiet.
package debounce

import (
	"sync"
	"time"
)

// DefaultInterval is the quiet period used when none is given.
const DefaultInterval = 600 * time.Millisecond

// Debouncer holds at most one pending task. Each Trigger replaces the pending
// task and restarts the timer. A timer that fires after it has been superseded
// does nothing, even if it raced with Trigger or Stop.
type Debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	pending func()
}

// New creates a Debouncer. A non-positive interval uses DefaultInterval.
func New(interval time.Duration) *Debouncer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Debouncer{interval: interval}
}

// Interval returns the quiet period.
func (d *Debouncer) Interval() time.Duration {
	return d.interval
}

// Trigger cancels any pending task and schedules fn to run after the interval.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()
	d.pending = fn
	gen := d.gen
	d.timer = time.AfterFunc(d.interval, func() {
		d.fire(gen)
	})
}

// Stop cancels the pending task without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelLocked()
}

// Flush runs the pending task now, on the calling goroutine.
// Reports whether a task was pending.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.pending
	d.cancelLocked()
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending reports whether a task is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// cancelLocked invalidates the current generation. Callers hold mu.
func (d *Debouncer) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = nil
}
