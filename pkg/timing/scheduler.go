package timing

import "time"

// Handle identifies a scheduled continuation.
type Handle interface {
	// Cancel prevents the continuation from firing. Cancelling after the
	// continuation has fired, or cancelling twice, is a no-op.
	Cancel()
}

// Scheduler schedules a callback to run once after a delay.
//
// Implementations must never invoke fn synchronously from inside Schedule;
// callers rely on Schedule returning before fn can observe their state.
// The default implementation is [TimerScheduler]. Tests use the manual
// scheduler from pkg/testing.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Handle
}

// TimerScheduler schedules continuations on the Go runtime timer heap.
//
// The zero value is ready to use; continuations then fire on a timer
// goroutine. Set Dispatch to hop callbacks onto a specific thread, the way
// a host framework forwards work to its UI thread:
//
//	sched := &timing.TimerScheduler{Dispatch: drift.Dispatch}
type TimerScheduler struct {
	// Dispatch, when non-nil, receives every fired continuation instead of
	// the continuation running directly on the timer goroutine.
	Dispatch func(func())
}

// Schedule runs fn once after d elapses.
func (s *TimerScheduler) Schedule(d time.Duration, fn func()) Handle {
	if fn == nil {
		return noopHandle{}
	}
	run := fn
	if s.Dispatch != nil {
		dispatch := s.Dispatch
		run = func() { dispatch(fn) }
	}
	return &timerHandle{timer: time.AfterFunc(d, run)}
}

type timerHandle struct {
	timer *time.Timer
}

func (h *timerHandle) Cancel() {
	h.timer.Stop()
}

type noopHandle struct{}

func (noopHandle) Cancel() {}

// defaultScheduler backs utilities whose scheduler was never set.
var defaultScheduler Scheduler = &TimerScheduler{}
