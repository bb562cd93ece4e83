package testing

import (
	"sync"
	"time"

	"github.com/go-drift/driftkit/pkg/timing"
)

// ManualScheduler is a timing.Scheduler and timing.Clock driven entirely by
// Advance. Nothing fires until a test moves time forward; continuations due
// within the advanced window run synchronously inside Advance, earliest due
// time first, scheduling order breaking ties.
//
// Continuations may schedule further continuations; those fire within the
// same Advance if their due time falls inside the window.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Time
	nextSeq int
	tasks   []*manualTask
}

type manualTask struct {
	due       time.Time
	seq       int
	fn        func()
	cancelled bool
}

var (
	_ timing.Scheduler = (*ManualScheduler)(nil)
	_ timing.Clock     = (*ManualScheduler)(nil)
)

// NewManualScheduler returns a scheduler whose clock starts at the same
// fixed epoch as FakeClock.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{now: epoch}
}

// Now returns the current manual time.
func (m *ManualScheduler) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Schedule queues fn to fire once the clock has advanced d past the current
// manual time. Negative delays are treated as zero; the continuation still
// waits for the next Advance, it never fires synchronously.
func (m *ManualScheduler) Schedule(d time.Duration, fn func()) timing.Handle {
	if fn == nil {
		return manualHandle{}
	}
	if d < 0 {
		d = 0
	}
	m.mu.Lock()
	task := &manualTask{due: m.now.Add(d), seq: m.nextSeq, fn: fn}
	m.nextSeq++
	m.tasks = append(m.tasks, task)
	m.mu.Unlock()
	return manualHandle{m: m, task: task}
}

// Advance moves the clock forward by d, firing every continuation that
// falls due along the way. The clock sits at each continuation's due time
// while it runs, so re-scheduled work lands at the right instant.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	for {
		task := m.popDueLocked(target)
		if task == nil {
			break
		}
		if task.due.After(m.now) {
			m.now = task.due
		}
		m.mu.Unlock()
		task.fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// Pending returns the number of queued continuations.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, task := range m.tasks {
		if !task.cancelled {
			count++
		}
	}
	return count
}

// popDueLocked removes and returns the earliest continuation due at or
// before target, or nil if none is due.
func (m *ManualScheduler) popDueLocked(target time.Time) *manualTask {
	best := -1
	for i, task := range m.tasks {
		if task.cancelled || task.due.After(target) {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		b := m.tasks[best]
		if task.due.Before(b.due) || (task.due.Equal(b.due) && task.seq < b.seq) {
			best = i
		}
	}
	if best == -1 {
		return nil
	}
	task := m.tasks[best]
	m.tasks = append(m.tasks[:best], m.tasks[best+1:]...)
	return task
}

type manualHandle struct {
	m    *ManualScheduler
	task *manualTask
}

func (h manualHandle) Cancel() {
	if h.m == nil {
		return
	}
	h.m.mu.Lock()
	h.task.cancelled = true
	h.m.mu.Unlock()
}
