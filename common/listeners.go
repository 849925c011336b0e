package common

import "sync"

// Listeners is an ordered, concurrency-safe registry of callbacks of type T.
// Each registration gets its own ListenerID, so the same function value can be added
// and removed independently; removal never relies on comparing function values.
type Listeners[T any] struct {
	mu      sync.Mutex
	nextID  ListenerID
	entries []listenerEntry[T]
}

type listenerEntry[T any] struct {
	id ListenerID
	fn T
}

// Add registers fn and returns the ID that removes it.
//
// Parameters:
//   - fn: the callback to register
//
// Returns:
//   - ListenerID: non-zero handle for Remove
func (l *Listeners[T]) Add(fn T) ListenerID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.nextID++
	l.entries = append(l.entries, listenerEntry[T]{id: l.nextID, fn: fn})
	return l.nextID
}

// Remove unregisters the callback with the given ID.
// Unknown or zero IDs are ignored.
//
// Parameters:
//   - id: handle returned by Add
//
// Returns:
//   - bool: true if a registration was removed
func (l *Listeners[T]) Remove(id ListenerID) bool {
	if id == 0 {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].id == id {
			copy(l.entries[i:], l.entries[i+1:])
			l.entries[len(l.entries)-1] = listenerEntry[T]{}
			l.entries = l.entries[:len(l.entries)-1]
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the registered callbacks in registration order.
// Callers iterate the copy so callbacks may add or remove listeners while being dispatched.
//
// Returns:
//   - []T: the registered callbacks
func (l *Listeners[T]) Snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.fn
	}
	return out
}

// Len returns the number of registered callbacks.
func (l *Listeners[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
