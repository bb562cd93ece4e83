package timing

import (
	"sync"
	"time"
)

// Throttler limits how often a callback may run.
//
// A Call arriving outside the interval runs immediately (leading edge).
// Calls arriving inside the interval are dropped, unless Trailing is set,
// in which case the most recent one is coalesced into a single run at the
// end of the interval. Elapsed time is measured with the package clock.
//
// The zero value is not usable; create with NewThrottler.
type Throttler struct {
	// Interval is the minimum spacing between runs.
	Interval time.Duration

	// Trailing coalesces calls arriving inside the interval into one run
	// at the interval boundary instead of dropping them.
	Trailing bool

	mu         sync.Mutex
	scheduler  Scheduler
	pending    Handle
	last       time.Time
	trailingFn func()
}

// NewThrottler creates a throttler with the given minimum spacing.
func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{Interval: interval}
}

// SetScheduler replaces the deferred-continuation source. A nil scheduler
// restores the default timer-based one.
func (t *Throttler) SetScheduler(scheduler Scheduler) {
	t.mu.Lock()
	t.scheduler = scheduler
	t.mu.Unlock()
}

// Call runs fn immediately if the interval since the last run has elapsed.
// Otherwise the call is dropped, or held for the trailing edge when
// Trailing is set.
func (t *Throttler) Call(fn func()) {
	if fn == nil {
		return
	}
	now := Now()

	t.mu.Lock()
	interval := t.Interval
	if t.last.IsZero() || now.Sub(t.last) >= interval {
		t.last = now
		t.mu.Unlock()
		fn()
		return
	}
	if !t.Trailing {
		t.mu.Unlock()
		return
	}
	t.trailingFn = fn
	if t.pending == nil {
		remaining := t.last.Add(interval).Sub(now)
		t.pending = t.schedulerLocked().Schedule(remaining, t.fireTrailing)
	}
	t.mu.Unlock()
}

// Cancel drops a held trailing call without running it.
func (t *Throttler) Cancel() {
	t.mu.Lock()
	if t.pending != nil {
		t.pending.Cancel()
		t.pending = nil
	}
	t.trailingFn = nil
	t.mu.Unlock()
}

// Dispose cancels any held trailing call.
func (t *Throttler) Dispose() {
	t.Cancel()
}

func (t *Throttler) fireTrailing() {
	t.mu.Lock()
	fn := t.trailingFn
	t.trailingFn = nil
	t.pending = nil
	if fn != nil {
		t.last = Now()
	}
	t.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (t *Throttler) schedulerLocked() Scheduler {
	if t.scheduler != nil {
		return t.scheduler
	}
	return defaultScheduler
}
