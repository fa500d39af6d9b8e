package reactive

import "sync"

// Watcher observes changes to a Value. It receives the previous and the
// new value and runs synchronously on the goroutine that called Set.
type Watcher[T any] func(old, next T)

// Value is an observable holder for a single value.
//
// Watchers registered with Watch are invoked in registration order on
// every Set, before Set returns, so a read after Set always observes a
// state all watchers have seen.
type Value[T any] struct {
	mu       sync.RWMutex
	v        T
	watchers map[int]Watcher[T]
	nextID   int
}

// NewValue creates a holder with the given initial value.
// Creation does not notify watchers (there are none yet).
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{v: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Set replaces the value and synchronously notifies every watcher with
// the old and new values.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	old := v.v
	v.v = next
	// Snapshot watchers so an unsubscribe during notification is safe.
	ws := make([]Watcher[T], 0, len(v.watchers))
	for id := 0; id < v.nextID; id++ {
		if w, ok := v.watchers[id]; ok {
			ws = append(ws, w)
		}
	}
	v.mu.Unlock()

	for _, w := range ws {
		w(old, next)
	}
}

// Update applies fn to the current value and stores the result, notifying
// watchers as Set does.
func (v *Value[T]) Update(fn func(T) T) {
	v.mu.Lock()
	next := fn(v.v)
	v.mu.Unlock()
	v.Set(next)
}

// Watch registers a watcher and returns a cancel function that removes
// it. Cancel is idempotent.
func (v *Value[T]) Watch(w Watcher[T]) (cancel func()) {
	v.mu.Lock()
	if v.watchers == nil {
		v.watchers = make(map[int]Watcher[T])
	}
	id := v.nextID
	v.nextID++
	v.watchers[id] = w
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.watchers, id)
		v.mu.Unlock()
	}
}
