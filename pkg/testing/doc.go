// Package testing provides deterministic time control for testing driftkit
// utilities.
//
// # Manual time
//
// ManualScheduler implements both timing.Clock and timing.Scheduler. Tests
// install it, then advance time by hand; continuations due within the
// advanced window fire synchronously, in due order:
//
//	func TestSearchDebounce(t *testing.T) {
//	    sched := kittest.NewManualScheduler()
//	    d := timing.NewDebouncer(300 * time.Millisecond)
//	    d.SetScheduler(sched)
//
//	    d.Call(runQuery)
//	    sched.Advance(299 * time.Millisecond) // nothing yet
//	    sched.Advance(time.Millisecond)       // runQuery fires here
//	}
//
// FakeClock is the lighter option for utilities that only read the clock
// and never schedule:
//
//	clock := kittest.NewFakeClock()
//	prev := timing.SetClock(clock)
//	defer timing.SetClock(prev)
//	clock.Advance(time.Second)
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import kittest "github.com/go-drift/driftkit/pkg/testing"
package testing
