package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs when a signal it read changes.
//
// Effects created while their owner renders are deferred until the render
// commits; elsewhere they run immediately. The Cleanup returned by the last
// run is called before the next run and when the effect is disposed.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	// sources are the signals read during the last run.
	sources   []*signalBase
	sourcesMu sync.Mutex

	owner *Owner

	pending  atomic.Bool
	disposed atomic.Bool
}

// MarkDirty schedules the effect to re-run. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	if e.pending.CompareAndSwap(false, true) && e.owner != nil {
		e.owner.scheduleEffect(e)
	}
}

// ID returns the unique identifier for this effect. Implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

func (e *Effect) clearSources() {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
}

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}
	e.pending.Store(false)

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.clearSources()

	WithOwner(e.owner, func() {
		WithListener(e, func() {
			e.cleanup = e.fn()
		})
	})
}

func (e *Effect) dispose() {
	if e.disposed.Swap(true) {
		return
	}
	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}
	e.clearSources()
}

// CreateEffect creates an effect owned by the current owner.
//
//	CreateEffect(func() Cleanup {
//	    fmt.Println("Count is:", count.Get())
//	    return func() { fmt.Println("Cleanup") }
//	})
//
// CreateEffect creates a new effect on every call; inside a render function
// use it through a hook (UseMount, UseSlot) so it is created once.
func CreateEffect(fn func() Cleanup) *Effect {
	owner := CurrentOwner()

	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: owner,
	}
	if owner == nil {
		e.run()
		return e
	}
	if owner.IsDisposed() {
		e.disposed.Store(true)
		return e
	}

	owner.registerEffect(e)
	if owner.rendering {
		e.pending.Store(true)
		owner.scheduleEffect(e)
		return e
	}
	e.run()
	return e
}

// OnMount creates an effect with no reactive dependencies: fn runs once,
// after the current render commits.
func OnMount(fn func()) {
	CreateEffect(func() Cleanup {
		Untracked(fn)
		return nil
	})
}

// OnUnmount registers fn to run when the current owner is disposed.
func OnUnmount(fn func()) {
	if owner := CurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}
