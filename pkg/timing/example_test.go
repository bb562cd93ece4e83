package timing_test

import (
	"fmt"
	"time"

	kittest "github.com/go-drift/driftkit/pkg/testing"
	"github.com/go-drift/driftkit/pkg/timing"
)

// ExampleChunkScheduler processes a slice in chunks of two, reporting
// progress at every chunk boundary.
func ExampleChunkScheduler() {
	sched := kittest.NewManualScheduler()

	cs := timing.NewChunkScheduler([]int{1, 2, 3, 4, 5}, func(x, _ int) int {
		return x * 2
	})
	cs.ChunkSize = 2
	cs.Interval = 100 * time.Millisecond
	cs.SetScheduler(sched)

	cs.OnProgress = func(done, total int) {
		fmt.Printf("progress %d/%d\n", done, total)
	}
	cs.OnComplete = func(results []int) {
		fmt.Println("results", results)
	}

	cs.Start()
	sched.Advance(time.Second)

	// Output:
	// progress 2/5
	// progress 4/5
	// progress 5/5
	// results [2 4 6 8 10]
}

// ExampleDebouncer coalesces a burst of keystrokes into one query.
func ExampleDebouncer() {
	sched := kittest.NewManualScheduler()

	search := timing.NewDebouncer(300 * time.Millisecond)
	search.SetScheduler(sched)

	for _, q := range []string{"d", "dr", "dri", "drift"} {
		q := q
		search.Call(func() { fmt.Println("query:", q) })
		sched.Advance(100 * time.Millisecond)
	}
	sched.Advance(300 * time.Millisecond)

	// Output:
	// query: drift
}
