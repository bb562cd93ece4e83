// Package timing provides timing-control primitives for driftkit:
// a cooperative chunk scheduler for processing large collections without
// starving the UI thread, plus debounce and throttle wrappers for noisy
// callbacks.
//
// # Chunked processing
//
// ChunkScheduler splits a large slice into fixed-size chunks and processes
// one chunk per turn, yielding between chunks so the host stays responsive:
//
//	s.thumbs = timing.NewChunkScheduler(photos, decodeThumbnail)
//	s.thumbs.ChunkSize = 25
//	s.thumbs.OnProgress = func(done, total int) { s.progress.Set(float64(done) / float64(total)) }
//	s.thumbs.OnComplete = func(results []Thumbnail) { s.gallery.Set(results) }
//	s.thumbs.Start()
//
// # Debounce and throttle
//
// Debouncer delays a callback until its input goes quiet; Throttler caps how
// often a callback may run:
//
//	search := timing.NewDebouncer(300 * time.Millisecond)
//	onKeystroke := func(q string) { search.Call(func() { runQuery(q) }) }
//
// # Deterministic tests
//
// Every primitive takes its deferred continuations from a [Scheduler] and its
// time from the package [Clock]; swap both for the manual implementations in
// pkg/testing to drive time by hand.
package timing

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/driftkit/pkg/errors"
	"github.com/go-drift/driftkit/pkg/state"
)

// Phase represents the lifecycle state of a ChunkScheduler run.
//
// The phase follows this state machine:
//
//	         Start()                     last chunk
//	Idle ──────────────► Running ──────────────────► Completed
//	  ▲                  │     ▲                          │
//	  │          Pause() │     │ Resume()                 │ Start()
//	  │                  ▼     │                          ▼
//	  │◄──────────────  Paused                      (fresh run)
//	       Stop()
//
// Stop() returns to Idle from either Running or Paused.
type Phase int

const (
	// PhaseIdle means no run is in progress.
	PhaseIdle Phase = iota
	// PhaseRunning means chunks are being processed.
	PhaseRunning
	// PhasePaused means a run is suspended between chunks.
	PhasePaused
	// PhaseCompleted means the last run processed every element.
	PhaseCompleted
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

const (
	// DefaultChunkSize is the number of elements processed per chunk when
	// ChunkSize is left at zero.
	DefaultChunkSize = 10
	// DefaultInterval is the yield delay between chunks when Interval is
	// left at zero. One frame at 60fps.
	DefaultInterval = 16 * time.Millisecond
)

// ChunkScheduler cooperatively processes an ordered slice in bounded-size
// chunks, yielding control between chunks so other work can run.
//
// Each chunk runs synchronously and uninterrupted, in ascending index order.
// Between chunks the scheduler parks a single deferred continuation on its
// [Scheduler]; Pause and Stop cancel it, so no chunk ever runs while paused
// or after a stop.
//
// Configuration fields and callbacks must be set before the first Start and
// not modified afterwards. The transform is treated as synchronous: if it
// starts asynchronous work, the scheduler still records its return value
// immediately.
//
// A panic escaping the transform aborts the run: the pending continuation is
// cancelled, cursor and results are discarded, the phase returns to
// PhaseIdle, the panic is reported through the errors package, and OnError
// fires with a KindTransform error. OnComplete never fires for an aborted
// run.
//
// The scheduler object is reusable: after completion or Stop, Start begins a
// fresh run with fresh results. Always call Dispose when done so a pending
// continuation cannot fire into a dead object.
type ChunkScheduler[T, R any] struct {
	// ChunkSize is the number of elements processed per chunk.
	// Defaults to DefaultChunkSize; values <= 0 fall back to the default.
	ChunkSize int

	// Interval is the minimum delay between the end of one chunk and the
	// start of the next. Defaults to DefaultInterval; zero is honored as
	// an immediate reschedule, negative values are treated as zero.
	Interval time.Duration

	// OnProgress is called once per processed chunk with the number of
	// elements processed so far and the total element count.
	OnProgress func(done, total int)

	// OnComplete is called exactly once per completed run with the full
	// results in index order.
	OnComplete func(results []R)

	// OnError is called when a run aborts because the transform panicked.
	OnError func(err error)

	mu         sync.Mutex
	items      []T
	transform  func(T, int) R
	scheduler  Scheduler
	phase      Phase
	cursor     int
	results    []R
	pending    Handle
	generation int
	activity   *state.Observable[bool]
}

// NewChunkScheduler creates a scheduler over items. The transform maps each
// element and its index to a result; it is invoked exactly once per element,
// in index order. A nil transform panics.
//
// The items slice is captured as-is and never mutated; callers must not
// mutate it during a run.
func NewChunkScheduler[T, R any](items []T, transform func(T, int) R) *ChunkScheduler[T, R] {
	if transform == nil {
		panic("timing: NewChunkScheduler requires a non-nil transform")
	}
	return &ChunkScheduler[T, R]{
		ChunkSize: DefaultChunkSize,
		Interval:  DefaultInterval,
		items:     items,
		transform: transform,
		activity:  state.NewObservable(false),
	}
}

// SetScheduler replaces the deferred-continuation source. Call before Start;
// replacing the scheduler mid-run is not supported. A nil scheduler restores
// the default timer-based one.
func (s *ChunkScheduler[T, R]) SetScheduler(scheduler Scheduler) {
	s.mu.Lock()
	s.scheduler = scheduler
	s.mu.Unlock()
}

// Phase returns the current lifecycle phase.
func (s *ChunkScheduler[T, R]) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// IsActive returns true while a run is in progress, whether running or
// paused.
func (s *ChunkScheduler[T, R]) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == PhaseRunning || s.phase == PhasePaused
}

// Activity returns an observable boolean mirroring IsActive. It flips to
// true when a run starts and back to false on completion, stop, or abort,
// but not on pause.
func (s *ChunkScheduler[T, R]) Activity() *state.Observable[bool] {
	return s.activity
}

// Progress returns the number of elements processed so far in the current
// run and the total element count.
func (s *ChunkScheduler[T, R]) Progress() (done, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, len(s.items)
}

// Start begins a fresh run: the cursor returns to zero, results are cleared,
// and the first chunk is processed synchronously before Start returns.
//
// Start is a complete no-op while a run is active (running or paused); it
// does not reset, restart, or panic. After completion or Stop, Start behaves
// exactly like the very first Start.
func (s *ChunkScheduler[T, R]) Start() {
	s.mu.Lock()
	if s.phase == PhaseRunning || s.phase == PhasePaused {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.cursor = 0
	s.results = make([]R, len(s.items))
	s.phase = PhaseRunning
	s.mu.Unlock()

	s.activity.Set(true)
	s.step(gen)
}

// Pause suspends the run at the current chunk boundary. The pending
// continuation is cancelled, so no further chunk runs until Resume. No-op
// unless running. The activity flag stays true while paused.
//
// A Pause arriving while a chunk's transforms are executing, including from
// inside the transform itself, takes effect at the end of that chunk: the
// chunk commits and reports progress, then the run halts. If that chunk was
// the last one, the run completes instead.
func (s *ChunkScheduler[T, R]) Pause() {
	s.mu.Lock()
	if s.phase != PhaseRunning {
		s.mu.Unlock()
		return
	}
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
	s.phase = PhasePaused
	s.mu.Unlock()
}

// Resume continues a paused run, processing the next chunk immediately
// rather than waiting out the interval again. No-op unless paused.
func (s *ChunkScheduler[T, R]) Resume() {
	s.mu.Lock()
	if s.phase != PhasePaused {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseRunning
	gen := s.generation
	s.mu.Unlock()

	s.step(gen)
}

// Stop aborts the run: the pending continuation is cancelled, the cursor
// returns to zero, results are cleared, and the phase returns to PhaseIdle.
// OnComplete does not fire for a stopped run. No-op unless a run is active.
func (s *ChunkScheduler[T, R]) Stop() {
	s.mu.Lock()
	if s.phase != PhaseRunning && s.phase != PhasePaused {
		s.mu.Unlock()
		return
	}
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
	s.generation++
	s.phase = PhaseIdle
	s.cursor = 0
	s.results = nil
	s.mu.Unlock()

	s.activity.Set(false)
}

// Dispose stops any active run and cancels the pending continuation.
// Safe to call multiple times.
func (s *ChunkScheduler[T, R]) Dispose() {
	s.Stop()
}

// step processes one chunk. It runs only while the phase is PhaseRunning and
// the generation matches the run that scheduled it; a continuation left over
// from a stopped run is a no-op.
func (s *ChunkScheduler[T, R]) step(gen int) {
	s.mu.Lock()
	if s.phase != PhaseRunning || gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.pending = nil
	cursor := s.cursor
	end := cursor + s.effectiveChunkSizeLocked()
	if end > len(s.items) {
		end = len(s.items)
	}
	items := s.items
	transform := s.transform
	results := s.results
	s.mu.Unlock()

	// Transforms run outside the lock; user code may call back into the
	// scheduler. Writes land in this run's results slice, which a Stop
	// would orphan rather than reuse.
	if !s.runTransforms(gen, items, results, cursor, end, transform) {
		return
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	// A Pause that landed while the transforms ran still commits this
	// chunk: the cursor advances and progress fires, so Resume continues
	// from the boundary instead of re-invoking the transform on indices
	// already processed.
	paused := s.phase == PhasePaused
	if s.phase != PhaseRunning && !paused {
		s.mu.Unlock()
		return
	}
	s.cursor = end
	done, total := end, len(items)
	completed := end >= total
	var complete []R
	switch {
	case completed:
		s.phase = PhaseCompleted
		s.pending = nil
		complete = s.results
	case paused:
		// Halted at the boundary; Resume picks up from the committed cursor.
	default:
		s.pending = s.schedulerLocked().Schedule(s.effectiveIntervalLocked(), func() {
			s.step(gen)
		})
	}
	onProgress := s.OnProgress
	onComplete := s.OnComplete
	s.mu.Unlock()

	if completed {
		s.activity.Set(false)
	}
	if onProgress != nil {
		onProgress(done, total)
	}
	if completed && onComplete != nil {
		onComplete(complete)
	}
}

// runTransforms applies the transform to items[cursor:end] in ascending
// order. A panic aborts the run and returns false.
func (s *ChunkScheduler[T, R]) runTransforms(gen int, items []T, results []R, cursor, end int, transform func(T, int) R) (ok bool) {
	index := cursor
	defer func() {
		if r := recover(); r != nil {
			s.abortRun(gen, index, r)
			ok = false
		}
	}()
	for ; index < end; index++ {
		results[index] = transform(items[index], index)
	}
	return true
}

// abortRun tears down a run whose transform panicked.
func (s *ChunkScheduler[T, R]) abortRun(gen, index int, value any) {
	s.mu.Lock()
	if gen != s.generation || (s.phase != PhaseRunning && s.phase != PhasePaused) {
		// The run was already stopped or restarted; nothing to tear down.
		s.mu.Unlock()
		return
	}
	s.generation++
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
	s.phase = PhaseIdle
	s.cursor = 0
	s.results = nil
	onError := s.OnError
	s.mu.Unlock()

	s.activity.Set(false)

	err := &errors.KitError{
		Op:         "timing.ChunkScheduler",
		Kind:       errors.KindTransform,
		Err:        fmt.Errorf("transform panicked at index %d: %v", index, value),
		StackTrace: errors.CaptureStack(),
	}
	errors.Report(err)
	if onError != nil {
		onError(err)
	}
}

func (s *ChunkScheduler[T, R]) effectiveChunkSizeLocked() int {
	if s.ChunkSize <= 0 {
		return DefaultChunkSize
	}
	return s.ChunkSize
}

func (s *ChunkScheduler[T, R]) effectiveIntervalLocked() time.Duration {
	if s.Interval < 0 {
		return 0
	}
	return s.Interval
}

func (s *ChunkScheduler[T, R]) schedulerLocked() Scheduler {
	if s.scheduler != nil {
		return s.scheduler
	}
	return defaultScheduler
}
