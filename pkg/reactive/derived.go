package reactive

import "sync"

// Derived is a value recomputed from other state on demand.
//
// The compute function runs lazily: Get recomputes only when the holder
// has been invalidated since the last read. Mutators of upstream state
// call Invalidate to mark the cached result stale; both the eager
// (invalidate-then-read) and lazy (read-when-needed) recompute models
// fall out of this.
type Derived[T any] struct {
	mu      sync.Mutex
	compute func() T
	cached  T
	dirty   bool
}

// NewDerived creates a derived value. The compute function must not be
// nil and must be safe to call from any goroutine holding no locks on
// the Derived itself.
func NewDerived[T any](compute func() T) *Derived[T] {
	return &Derived[T]{compute: compute, dirty: true}
}

// Get returns the derived value, recomputing it first when stale.
func (d *Derived[T]) Get() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dirty {
		d.cached = d.compute()
		d.dirty = false
	}
	return d.cached
}

// Invalidate marks the cached value stale. The next Get recomputes.
func (d *Derived[T]) Invalidate() {
	d.mu.Lock()
	d.dirty = true
	d.mu.Unlock()
}

// Stale reports whether the next Get will recompute.
func (d *Derived[T]) Stale() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty
}
