// Package reactive is the component runtime the hooks are built on.
//
// It provides fine-grained reactivity: reading a signal while a component
// renders subscribes the component to that signal, and writing the signal
// schedules a re-render.
//
// # Core Types
//
// Signal[T] is a reactive value container:
//
//	count := NewSignal(0)
//	value := count.Get()  // Read (subscribes current listener)
//	count.Set(5)          // Write (notifies subscribers)
//
// Effect runs side effects after render and re-runs when its dependencies
// change:
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("Count is:", count.Get())
//	    return func() { /* cleanup */ }
//	})
//
// Owner is a component scope. Disposing an Owner disposes its effects and
// child owners and runs its cleanups.
//
// # Components
//
// Mount binds a render function to a root Owner:
//
//	inst := Mount(func() {
//	    n := UseSignal(0)
//	    fmt.Println("rendered with", n.Get())
//	})
//	defer inst.Unmount()
//
// Hook state lives in per-owner slots, so a hook called on every render
// returns the same state it created on the first render. Hooks must be
// called unconditionally and in the same order on every render.
//
// # Thread Safety
//
// Signals and refs may be written from any goroutine. The tracking context is
// per-goroutine, so goroutines that create effects must establish an owner
// explicitly via WithOwner.
package reactive
