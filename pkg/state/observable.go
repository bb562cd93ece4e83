package state

import "sync"

// Observable holds a value and notifies typed listeners when it changes.
//
// Set and Update always notify, even if the new value equals the old one;
// values are not required to be comparable.
type Observable[T any] struct {
	mu             sync.Mutex
	value          T
	listeners      map[int]func(T)
	nextListenerID int
}

// NewObservable creates an observable holding the given initial value.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		value:     initial,
		listeners: make(map[int]func(T)),
	}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set replaces the value and notifies listeners.
func (o *Observable[T]) Set(value T) {
	o.mu.Lock()
	o.value = value
	listeners := o.snapshotLocked()
	o.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}

// Update applies a transformation to the current value and notifies listeners.
func (o *Observable[T]) Update(transform func(T) T) {
	if transform == nil {
		return
	}
	o.mu.Lock()
	o.value = transform(o.value)
	value := o.value
	listeners := o.snapshotLocked()
	o.mu.Unlock()

	for _, l := range listeners {
		l(value)
	}
}

// AddListener registers a callback invoked with the new value on each change.
// Returns an unsubscribe function.
func (o *Observable[T]) AddListener(listener func(T)) func() {
	if listener == nil {
		return func() {}
	}
	o.mu.Lock()
	id := o.nextListenerID
	o.nextListenerID++
	o.listeners[id] = listener
	o.mu.Unlock()
	return func() {
		o.mu.Lock()
		delete(o.listeners, id)
		o.mu.Unlock()
	}
}

// ListenerCount returns the number of registered listeners.
func (o *Observable[T]) ListenerCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.listeners)
}

// snapshotLocked copies the listener set so callbacks run without the lock.
func (o *Observable[T]) snapshotLocked() []func(T) {
	listeners := make([]func(T), 0, len(o.listeners))
	for _, l := range o.listeners {
		listeners = append(listeners, l)
	}
	return listeners
}
