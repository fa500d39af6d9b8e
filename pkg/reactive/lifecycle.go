package reactive

import (
	"errors"
	"sync"
)

// ErrAlreadyStarted is returned when Start is called on a running lifecycle.
var ErrAlreadyStarted = errors.New("already started")

// Lifecycle performs scoped acquisition and guaranteed release of an
// underlying subscription (a timer, a watcher, a connection). It replaces
// UI mount/unmount hooks with explicit Start and Stop that can be called
// from any owner.
//
// Start acquires; Stop releases. Stop is idempotent and safe to call on a
// lifecycle that never started, so callers can unconditionally defer it.
type Lifecycle struct {
	mu      sync.Mutex
	start   func() error
	stop    func()
	running bool
}

// NewLifecycle creates a lifecycle from an acquire and a release function.
// Either may be nil when there is nothing to do on that side.
func NewLifecycle(start func() error, stop func()) *Lifecycle {
	return &Lifecycle{start: start, stop: stop}
}

// Start acquires the subscription. Starting a running lifecycle returns
// ErrAlreadyStarted without invoking the acquire function again.
func (l *Lifecycle) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return ErrAlreadyStarted
	}
	if l.start != nil {
		if err := l.start(); err != nil {
			return err
		}
	}
	l.running = true
	return nil
}

// Stop releases the subscription. Calls beyond the first are no-ops until
// the lifecycle is started again.
func (l *Lifecycle) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.running {
		return
	}
	l.running = false
	if l.stop != nil {
		l.stop()
	}
}

// Running reports whether the lifecycle is currently started.
func (l *Lifecycle) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}
