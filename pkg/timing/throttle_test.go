package timing_test

import (
	"testing"
	"time"

	kittest "github.com/go-drift/driftkit/pkg/testing"
	"github.com/go-drift/driftkit/pkg/timing"
)

// newThrottler wires a throttler to a manual scheduler that also serves as
// the package clock for elapsed-time measurement.
func newThrottler(t *testing.T, interval time.Duration) (*timing.Throttler, *kittest.ManualScheduler) {
	t.Helper()
	sched := kittest.NewManualScheduler()
	prev := timing.SetClock(sched)
	t.Cleanup(func() { timing.SetClock(prev) })

	th := timing.NewThrottler(interval)
	th.SetScheduler(sched)
	return th, sched
}

func TestThrottler_LeadingCallRunsImmediately(t *testing.T) {
	th, _ := newThrottler(t, 100*time.Millisecond)

	calls := 0
	th.Call(func() { calls++ })

	if calls != 1 {
		t.Errorf("leading call ran %d times, want 1 (immediately)", calls)
	}
}

func TestThrottler_CallsInsideIntervalDropped(t *testing.T) {
	th, sched := newThrottler(t, 100*time.Millisecond)

	calls := 0
	th.Call(func() { calls++ })
	sched.Advance(50 * time.Millisecond)
	th.Call(func() { calls++ })
	th.Call(func() { calls++ })

	sched.Advance(time.Second)

	if calls != 1 {
		t.Errorf("ran %d times, want 1 (non-trailing throttle drops inner calls)", calls)
	}
}

func TestThrottler_RunsAgainAfterInterval(t *testing.T) {
	th, sched := newThrottler(t, 100*time.Millisecond)

	calls := 0
	th.Call(func() { calls++ })
	sched.Advance(100 * time.Millisecond)
	th.Call(func() { calls++ })

	if calls != 2 {
		t.Errorf("ran %d times, want 2", calls)
	}
}

func TestThrottler_TrailingCoalesces(t *testing.T) {
	th, sched := newThrottler(t, 100*time.Millisecond)
	th.Trailing = true

	var order []string
	th.Call(func() { order = append(order, "lead") })
	sched.Advance(10 * time.Millisecond)
	th.Call(func() { order = append(order, "t1") })
	sched.Advance(10 * time.Millisecond)
	th.Call(func() { order = append(order, "t2") })

	// Only the most recent held call runs, at the interval boundary.
	sched.Advance(80 * time.Millisecond)

	if len(order) != 2 || order[0] != "lead" || order[1] != "t2" {
		t.Errorf("order = %v, want [lead t2]", order)
	}
}

func TestThrottler_TrailingRunRestartsInterval(t *testing.T) {
	th, sched := newThrottler(t, 100*time.Millisecond)
	th.Trailing = true

	calls := 0
	th.Call(func() { calls++ })              // leading, t=0
	sched.Advance(50 * time.Millisecond)     // t=50
	th.Call(func() { calls++ })              // held for trailing at t=100
	sched.Advance(50 * time.Millisecond)     // trailing fires, calls=2
	th.Call(func() { calls++ })              // t=100, inside new interval
	sched.Advance(100 * time.Millisecond)    // held call fires at t=200

	if calls != 3 {
		t.Errorf("ran %d times, want 3", calls)
	}
}

func TestThrottler_Cancel(t *testing.T) {
	th, sched := newThrottler(t, 100*time.Millisecond)
	th.Trailing = true

	calls := 0
	th.Call(func() { calls++ })
	sched.Advance(10 * time.Millisecond)
	th.Call(func() { calls++ })
	th.Cancel()

	sched.Advance(time.Second)

	if calls != 1 {
		t.Errorf("ran %d times, want 1 (trailing call cancelled)", calls)
	}
}

func TestThrottler_NilCallIgnored(t *testing.T) {
	th, _ := newThrottler(t, time.Second)
	th.Call(nil) // must not panic
}
