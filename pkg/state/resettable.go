package state

import "sync"

// Resettable holds a value whose initial state comes from a factory and can
// be restored at any time with Reset.
//
// The factory runs once at construction and again on every Reset, so mutable
// initial values (maps, slices) are rebuilt rather than shared between runs.
type Resettable[T any] struct {
	mu             sync.Mutex
	factory        func() T
	value          T
	dirty          bool
	listeners      map[int]func(T)
	nextListenerID int
}

// NewResettable creates a resettable container seeded from factory().
// A nil factory panics; the container cannot exist without an initial state.
func NewResettable[T any](factory func() T) *Resettable[T] {
	if factory == nil {
		panic("state: NewResettable requires a non-nil factory")
	}
	return &Resettable[T]{
		factory:   factory,
		value:     factory(),
		listeners: make(map[int]func(T)),
	}
}

// Value returns the current value.
func (r *Resettable[T]) Value() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.value
}

// Set replaces the value, marks the container dirty, and notifies listeners.
func (r *Resettable[T]) Set(value T) {
	r.mu.Lock()
	r.value = value
	r.dirty = true
	listeners := r.snapshotLocked()
	r.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}

// Update applies a transformation to the current value, marks the container
// dirty, and notifies listeners.
func (r *Resettable[T]) Update(transform func(T) T) {
	if transform == nil {
		return
	}
	r.mu.Lock()
	r.value = transform(r.value)
	r.dirty = true
	value := r.value
	listeners := r.snapshotLocked()
	r.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}

// Reset restores the value from the factory, clears the dirty flag, and
// notifies listeners with the fresh value.
func (r *Resettable[T]) Reset() {
	r.mu.Lock()
	r.value = r.factory()
	r.dirty = false
	value := r.value
	listeners := r.snapshotLocked()
	r.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}

// IsDirty reports whether the value has been set since construction or the
// last Reset.
func (r *Resettable[T]) IsDirty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dirty
}

// AddListener registers a callback invoked with the new value on each change,
// including Reset. Returns an unsubscribe function.
func (r *Resettable[T]) AddListener(listener func(T)) func() {
	if listener == nil {
		return func() {}
	}
	r.mu.Lock()
	id := r.nextListenerID
	r.nextListenerID++
	r.listeners[id] = listener
	r.mu.Unlock()
	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

func (r *Resettable[T]) snapshotLocked() []func(T) {
	listeners := make([]func(T), 0, len(r.listeners))
	for _, l := range r.listeners {
		listeners = append(listeners, l)
	}
	return listeners
}
