// Package state provides reactive value containers for driftkit utilities.
//
// The containers follow the listener conventions of the Drift framework:
// AddListener returns an unsubscribe function, and notifications are
// delivered synchronously on the goroutine that mutated the value.
//
// # Containers
//
// Notifier is a plain change signal with no payload:
//
//	refresh := state.NewNotifier()
//	unsub := refresh.AddListener(func() { reload() })
//	refresh.Notify()
//	unsub()
//
// Observable holds a value and notifies typed listeners on change:
//
//	counter := state.NewObservable(0)
//	counter.AddListener(func(v int) { fmt.Println(v) })
//	counter.Set(1)
//
// Resettable is an Observable whose initial value comes from a factory
// and can be restored at any time:
//
//	form := state.NewResettable(func() Filters { return DefaultFilters() })
//	form.Set(custom)
//	form.Reset() // back to DefaultFilters(), listeners notified
//
// All containers are safe for concurrent use. Listeners run without any
// internal lock held, so they may call back into the container.
package state
