package timing

import (
	"sync"
	"time"
)

// Debouncer postpones a callback until Call has gone quiet for Delay.
//
// Each Call replaces any pending callback and restarts the delay window, so
// only the most recent callback runs, and only once the burst of calls has
// stopped. Typical use is search-as-you-type or window-resize handling.
//
// The zero value is not usable; create with NewDebouncer. Always Dispose a
// debouncer owned by a disposable host so a pending callback cannot fire
// into a dead object.
type Debouncer struct {
	// Delay is the quiet period required before the callback runs.
	Delay time.Duration

	mu         sync.Mutex
	scheduler  Scheduler
	pending    Handle
	fn         func()
	generation int
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{Delay: delay}
}

// SetScheduler replaces the deferred-continuation source. A nil scheduler
// restores the default timer-based one.
func (d *Debouncer) SetScheduler(scheduler Scheduler) {
	d.mu.Lock()
	d.scheduler = scheduler
	d.mu.Unlock()
}

// Call schedules fn to run after Delay, replacing any pending callback and
// restarting the window. A nil fn still restarts the window but drops the
// pending callback.
//
// Each Call opens a new generation; a timer from an earlier generation that
// has already begun firing when its Cancel arrives is a no-op, so a replaced
// callback can never run early on a stale timer.
func (d *Debouncer) Call(fn func()) {
	d.mu.Lock()
	if d.pending != nil {
		d.pending.Cancel()
	}
	d.generation++
	gen := d.generation
	d.fn = fn
	delay := d.Delay
	if delay < 0 {
		delay = 0
	}
	d.pending = d.schedulerLocked().Schedule(delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// Flush runs the pending callback immediately, if there is one.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.pending == nil {
		d.mu.Unlock()
		return
	}
	d.pending.Cancel()
	d.pending = nil
	d.generation++
	fn := d.fn
	d.fn = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Cancel drops the pending callback without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	if d.pending != nil {
		d.pending.Cancel()
		d.pending = nil
	}
	d.generation++
	d.fn = nil
	d.mu.Unlock()
}

// IsPending returns true while a callback is waiting out the quiet period.
func (d *Debouncer) IsPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// Dispose cancels any pending callback.
func (d *Debouncer) Dispose() {
	d.Cancel()
}

func (d *Debouncer) fire(gen int) {
	d.mu.Lock()
	if gen != d.generation {
		// A stale timer that outran its Cancel; the callback it carried has
		// been replaced or dropped.
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.pending = nil
	d.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (d *Debouncer) schedulerLocked() Scheduler {
	if d.scheduler != nil {
		return d.scheduler
	}
	return defaultScheduler
}
