package timing_test

import (
	"testing"
	"time"

	kittest "github.com/go-drift/driftkit/pkg/testing"
	"github.com/go-drift/driftkit/pkg/timing"
)

func newDebouncer(delay time.Duration) (*timing.Debouncer, *kittest.ManualScheduler) {
	sched := kittest.NewManualScheduler()
	d := timing.NewDebouncer(delay)
	d.SetScheduler(sched)
	return d, sched
}

func TestDebouncer_FiresAfterQuietPeriod(t *testing.T) {
	d, sched := newDebouncer(300 * time.Millisecond)

	calls := 0
	d.Call(func() { calls++ })

	sched.Advance(299 * time.Millisecond)
	if calls != 0 {
		t.Fatal("callback fired before the quiet period elapsed")
	}

	sched.Advance(time.Millisecond)
	if calls != 1 {
		t.Errorf("callback fired %d times, want 1", calls)
	}
}

func TestDebouncer_BurstCoalescesToLastCall(t *testing.T) {
	d, sched := newDebouncer(100 * time.Millisecond)

	var got string
	for _, s := range []string{"a", "ab", "abc"} {
		s := s
		d.Call(func() { got = s })
		sched.Advance(50 * time.Millisecond) // always inside the window
	}

	sched.Advance(100 * time.Millisecond)

	if got != "abc" {
		t.Errorf("got %q, want only the last call to run", got)
	}
}

func TestDebouncer_EachCallRestartsWindow(t *testing.T) {
	d, sched := newDebouncer(100 * time.Millisecond)

	calls := 0
	d.Call(func() { calls++ })
	sched.Advance(90 * time.Millisecond)
	d.Call(func() { calls++ })
	sched.Advance(90 * time.Millisecond)

	if calls != 0 {
		t.Fatal("window should have been restarted by the second call")
	}

	sched.Advance(10 * time.Millisecond)
	if calls != 1 {
		t.Errorf("callback fired %d times, want 1", calls)
	}
}

func TestDebouncer_Flush(t *testing.T) {
	d, sched := newDebouncer(time.Hour)

	calls := 0
	d.Call(func() { calls++ })
	d.Flush()

	if calls != 1 {
		t.Fatalf("Flush should run the pending callback, ran %d times", calls)
	}

	sched.Advance(2 * time.Hour)
	if calls != 1 {
		t.Errorf("flushed callback ran again, total %d", calls)
	}
	if d.IsPending() {
		t.Error("nothing should be pending after Flush")
	}
}

func TestDebouncer_FlushWithoutPendingIsNoop(t *testing.T) {
	d, _ := newDebouncer(time.Second)
	d.Flush() // must not panic
}

func TestDebouncer_Cancel(t *testing.T) {
	d, sched := newDebouncer(100 * time.Millisecond)

	calls := 0
	d.Call(func() { calls++ })
	d.Cancel()

	sched.Advance(time.Second)

	if calls != 0 {
		t.Errorf("cancelled callback ran %d times", calls)
	}
	if d.IsPending() {
		t.Error("IsPending() should be false after Cancel")
	}
}

func TestDebouncer_DisposeCancels(t *testing.T) {
	d, sched := newDebouncer(100 * time.Millisecond)

	calls := 0
	d.Call(func() { calls++ })
	d.Dispose()

	sched.Advance(time.Second)
	if calls != 0 {
		t.Errorf("callback ran %d times after Dispose", calls)
	}
}

func TestDebouncer_ZeroDelayStillDefers(t *testing.T) {
	d, sched := newDebouncer(0)

	calls := 0
	d.Call(func() { calls++ })

	if calls != 0 {
		t.Fatal("zero-delay debounce must not run synchronously")
	}

	sched.Advance(0)
	if calls != 1 {
		t.Errorf("callback fired %d times, want 1", calls)
	}
}

// uncancelableScheduler hands out handles whose Cancel does nothing,
// modelling a runtime timer that has already begun firing when Cancel
// arrives.
type uncancelableScheduler struct {
	fns []func()
}

func (s *uncancelableScheduler) Schedule(d time.Duration, fn func()) timing.Handle {
	s.fns = append(s.fns, fn)
	return uncancelableHandle{}
}

type uncancelableHandle struct{}

func (uncancelableHandle) Cancel() {}

func TestDebouncer_StaleTimerDoesNotFireReplacedCallback(t *testing.T) {
	sched := &uncancelableScheduler{}
	d := timing.NewDebouncer(100 * time.Millisecond)
	d.SetScheduler(sched)

	first, second := 0, 0
	d.Call(func() { first++ })
	d.Call(func() { second++ })

	if len(sched.fns) != 2 {
		t.Fatalf("scheduled %d timers, want 2", len(sched.fns))
	}

	// The first timer outran its Cancel and fires anyway; it must not run
	// the replacement callback early.
	sched.fns[0]()
	if first != 0 || second != 0 {
		t.Fatalf("stale timer ran a callback: first=%d second=%d", first, second)
	}
	if !d.IsPending() {
		t.Fatal("the replacement callback should still be pending")
	}

	sched.fns[1]()
	if second != 1 {
		t.Errorf("replacement callback ran %d times, want 1", second)
	}
	if first != 0 {
		t.Errorf("replaced callback ran %d times, want 0", first)
	}
}

func TestDebouncer_StaleTimerAfterCancelIsNoop(t *testing.T) {
	sched := &uncancelableScheduler{}
	d := timing.NewDebouncer(100 * time.Millisecond)
	d.SetScheduler(sched)

	calls := 0
	d.Call(func() { calls++ })
	d.Cancel()

	sched.fns[0]()
	if calls != 0 {
		t.Errorf("cancelled callback ran %d times via a stale timer", calls)
	}
}

func TestDebouncer_ReusableAfterFire(t *testing.T) {
	d, sched := newDebouncer(50 * time.Millisecond)

	calls := 0
	d.Call(func() { calls++ })
	sched.Advance(50 * time.Millisecond)
	d.Call(func() { calls++ })
	sched.Advance(50 * time.Millisecond)

	if calls != 2 {
		t.Errorf("callback fired %d times, want 2", calls)
	}
}
