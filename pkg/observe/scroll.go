package observe

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/driftkit/pkg/state"
	"github.com/go-drift/driftkit/pkg/timing"
)

// ScrollDirection describes the direction of the most recent scroll delta.
type ScrollDirection int

const (
	// ScrollIdle means no scrolling is in progress.
	ScrollIdle ScrollDirection = iota
	// ScrollForward means the offset is increasing.
	ScrollForward
	// ScrollReverse means the offset is decreasing.
	ScrollReverse
)

// String returns a human-readable representation of the direction.
func (d ScrollDirection) String() string {
	switch d {
	case ScrollIdle:
		return "idle"
	case ScrollForward:
		return "forward"
	case ScrollReverse:
		return "reverse"
	default:
		return fmt.Sprintf("ScrollDirection(%d)", int(d))
	}
}

// DefaultQuietPeriod is how long reports must stop before the tracker
// considers scrolling finished.
const DefaultQuietPeriod = 150 * time.Millisecond

// ScrollTracker turns a stream of scroll-position reports into stable
// reactive facts: current offset, direction, edge arrival, and a boolean
// "is the user scrolling" that falls back to false after a quiet period.
//
// The host calls Report on every scroll frame; the tracker owns no event
// source of its own. Dispose cancels the internal quiet-period timer.
type ScrollTracker struct {
	// EdgeTolerance is the slack, in logical pixels, within which the
	// offset counts as having arrived at an edge.
	EdgeTolerance float64

	// QuietPeriod overrides DefaultQuietPeriod when positive.
	QuietPeriod time.Duration

	mu        sync.Mutex
	offset    float64
	min       float64
	max       float64
	direction ScrollDirection
	reported  bool

	scrolling *state.Observable[bool]
	changes   *state.Notifier
	quiet     *timing.Debouncer
}

// NewScrollTracker creates an idle tracker.
func NewScrollTracker() *ScrollTracker {
	return &ScrollTracker{
		scrolling: state.NewObservable(false),
		changes:   state.NewNotifier(),
		quiet:     timing.NewDebouncer(DefaultQuietPeriod),
	}
}

// SetScheduler replaces the deferred-continuation source for the
// quiet-period timer. A nil scheduler restores the default timer-based one.
func (t *ScrollTracker) SetScheduler(scheduler timing.Scheduler) {
	t.quiet.SetScheduler(scheduler)
}

// Report records a scroll frame: the current offset and the scrollable
// range. Direction derives from the delta against the previous offset; a
// repeat of the same offset keeps the previous direction.
func (t *ScrollTracker) Report(offset, min, max float64) {
	t.mu.Lock()
	if t.reported {
		switch {
		case offset > t.offset:
			t.direction = ScrollForward
		case offset < t.offset:
			t.direction = ScrollReverse
		}
	}
	t.offset = offset
	t.min = min
	t.max = max
	t.reported = true
	quietPeriod := t.QuietPeriod
	if quietPeriod <= 0 {
		quietPeriod = DefaultQuietPeriod
	}
	t.quiet.Delay = quietPeriod
	t.mu.Unlock()

	if !t.scrolling.Value() {
		t.scrolling.Set(true)
	}
	t.quiet.Call(t.settle)
	t.changes.Notify()
}

// Offset returns the last reported offset.
func (t *ScrollTracker) Offset() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.offset
}

// Direction returns the direction of the most recent delta, or ScrollIdle
// after the quiet period has elapsed.
func (t *ScrollTracker) Direction() ScrollDirection {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.direction
}

// AtStart reports whether the offset sits within EdgeTolerance of the
// scrollable range's start. False before the first Report.
func (t *ScrollTracker) AtStart() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reported && t.offset-t.min <= t.EdgeTolerance
}

// AtEnd reports whether the offset sits within EdgeTolerance of the
// scrollable range's end. False before the first Report.
func (t *ScrollTracker) AtEnd() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reported && t.max-t.offset <= t.EdgeTolerance
}

// Scrolling returns an observable boolean that is true from the first
// Report of a burst until the quiet period elapses.
func (t *ScrollTracker) Scrolling() *state.Observable[bool] {
	return t.scrolling
}

// AddListener registers a callback invoked on every Report and on
// quiet-period settle. Returns an unsubscribe function.
func (t *ScrollTracker) AddListener(listener func()) func() {
	return t.changes.AddListener(listener)
}

// Dispose cancels the quiet-period timer.
func (t *ScrollTracker) Dispose() {
	t.quiet.Dispose()
}

// settle marks the end of a scroll burst.
func (t *ScrollTracker) settle() {
	t.mu.Lock()
	t.direction = ScrollIdle
	t.mu.Unlock()

	t.scrolling.Set(false)
	t.changes.Notify()
}
