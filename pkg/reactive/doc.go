// Package reactive provides explicit observable state holders.
//
// The package replaces framework-bound reactivity with three small
// primitives:
//
//   - [Value]: a mutable holder that notifies registered watchers
//     synchronously on every change
//   - [Derived]: a value recomputed from other state on demand, guarded by
//     a dirty flag so unchanged inputs never trigger recomputation
//   - [Lifecycle]: scoped acquisition and guaranteed release of an
//     underlying subscription via explicit Start/Stop, independent of any
//     UI framework's mount/unmount cycle
//
// All primitives are safe for concurrent use; notification order follows
// Set order and watchers run on the caller's goroutine.
package reactive
