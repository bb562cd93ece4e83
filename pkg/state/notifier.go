package state

import "sync"

// Notifier is a payload-free change signal.
//
// Listeners are invoked synchronously, in unspecified order, each time
// Notify is called.
type Notifier struct {
	mu             sync.Mutex
	listeners      map[int]func()
	nextListenerID int
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{listeners: make(map[int]func())}
}

// AddListener registers a callback for Notify.
// Returns an unsubscribe function.
func (n *Notifier) AddListener(listener func()) func() {
	if listener == nil {
		return func() {}
	}
	n.mu.Lock()
	id := n.nextListenerID
	n.nextListenerID++
	n.listeners[id] = listener
	n.mu.Unlock()
	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

// ListenerCount returns the number of registered listeners.
func (n *Notifier) ListenerCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.listeners)
}

// Notify invokes all registered listeners.
func (n *Notifier) Notify() {
	n.mu.Lock()
	listeners := make([]func(), 0, len(n.listeners))
	for _, l := range n.listeners {
		listeners = append(listeners, l)
	}
	n.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}
