package reactive

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/vango-dev/hooks/internal/errors"
)

// Instance is a mounted component: a render function bound to an Owner.
//
// Signals read during render subscribe the instance; writing one marks the
// instance dirty. Re-rendering is explicit (Flush, Act, WaitForUpdate) so
// the goroutine that drives the instance decides when renders happen.
type Instance struct {
	id     uint64
	owner  *Owner
	render func()

	// mu serializes renders, effect runs and unmount.
	mu sync.Mutex

	dirty   atomic.Bool
	wake    chan struct{}
	renders atomic.Int64

	sources   []*signalBase
	sourcesMu sync.Mutex
}

type mountConfig struct {
	logger *slog.Logger
	parent *Owner
}

// MountOption configures Mount.
type MountOption func(*mountConfig)

// WithLogger sets the logger hooks use for this component tree.
func WithLogger(l *slog.Logger) MountOption {
	return func(c *mountConfig) {
		c.logger = l
	}
}

// WithParent mounts the component under parent, so disposing parent
// unmounts it.
func WithParent(parent *Owner) MountOption {
	return func(c *mountConfig) {
		c.parent = parent
	}
}

// Mount renders the component once, runs the effects scheduled by that
// render and returns the mounted instance.
//
//	inst := reactive.Mount(func() {
//	    done := hooks.UseTimeout(time.Second)
//	    fmt.Println("timed out:", done)
//	})
//	defer inst.Unmount()
func Mount(render func(), opts ...MountOption) *Instance {
	var cfg mountConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	i := &Instance{
		id:     nextID(),
		owner:  NewOwner(cfg.parent),
		render: render,
		wake:   make(chan struct{}, 1),
	}
	if cfg.logger != nil {
		i.owner.SetLogger(cfg.logger)
	}
	i.owner.onSchedule = i.notify

	i.Rerender()
	return i
}

// ID returns the unique identifier for this instance. Implements Listener.
func (i *Instance) ID() uint64 {
	return i.id
}

// MarkDirty records that a dependency changed. Implements Listener.
func (i *Instance) MarkDirty() {
	if i.owner.IsDisposed() {
		return
	}
	i.dirty.Store(true)
	i.notify()
}

func (i *Instance) notify() {
	select {
	case i.wake <- struct{}{}:
	default:
	}
}

func (i *Instance) addSource(source *signalBase) {
	i.sourcesMu.Lock()
	defer i.sourcesMu.Unlock()

	for _, s := range i.sources {
		if s == source {
			return
		}
	}
	i.sources = append(i.sources, source)
}

func (i *Instance) clearSources() {
	i.sourcesMu.Lock()
	defer i.sourcesMu.Unlock()

	for _, s := range i.sources {
		s.unsubscribe(i)
	}
	i.sources = nil
}

// Owner returns the instance's owner.
func (i *Instance) Owner() *Owner {
	return i.owner
}

// Rerender renders the component unconditionally, then runs pending effects.
func (i *Instance) Rerender() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.renderLocked()
}

func (i *Instance) renderLocked() {
	if i.owner.IsDisposed() {
		return
	}

	i.dirty.Store(false)
	i.clearSources()

	WithOwner(i.owner, func() {
		WithListener(i, func() {
			i.owner.startRender()
			defer i.owner.endRender()
			i.render()
		})
	})
	i.renders.Add(1)

	i.owner.RunPendingEffects()
}

// Flush re-renders if a dependency changed since the last render and runs
// pending effects. It reports whether a render happened.
func (i *Instance) Flush() bool {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.dirty.Load() {
		i.renderLocked()
		return true
	}
	i.owner.RunPendingEffects()
	return false
}

// Act runs fn, typically an event handler calling a hook's callback, and
// then flushes the resulting updates.
func (i *Instance) Act(fn func()) {
	fn()
	i.Flush()
}

// WaitForUpdate blocks until a dependency of the last render changes or an
// effect is scheduled, then flushes. It returns ctx.Err() if ctx ends first
// and an E003 error if the instance is unmounted.
func (i *Instance) WaitForUpdate(ctx context.Context) error {
	for {
		if !i.Mounted() {
			return errors.New("E003")
		}
		if i.dirty.Load() || i.owner.HasPendingEffects() {
			i.Flush()
			return nil
		}

		select {
		case <-i.wake:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Unmount disposes the instance's owner, running hook cleanups. Later
// signal writes no longer reach the instance.
func (i *Instance) Unmount() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.owner.Dispose()
	i.clearSources()
	i.notify()
}

// Mounted reports whether the instance has not been unmounted.
func (i *Instance) Mounted() bool {
	return !i.owner.IsDisposed()
}

// Renders returns how many times the component has rendered.
func (i *Instance) Renders() int {
	return int(i.renders.Load())
}
