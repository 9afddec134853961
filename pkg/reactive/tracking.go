package reactive

import (
	"runtime"
	"sync"
)

// trackingContext holds the reactive state for a goroutine.
type trackingContext struct {
	// owner receives newly created effects and hook slots.
	owner *Owner

	// listener subscribes to signals read while it is set.
	listener Listener

	// batchDepth counts nested Batch calls.
	batchDepth int

	// pending accumulates listeners to notify when the outermost batch ends.
	pending []Listener

	// depth counts active scopes (WithOwner, WithListener, Batch, ...).
	// The context is dropped when it reaches zero.
	depth int
}

var trackingContexts sync.Map

// goroutineID parses the current goroutine's ID from its stack header
// ("goroutine <id> [...").
func goroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] < '0' || buf[i] > '9' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// lookupTracking returns the current goroutine's context, or nil if no scope
// is active. Goroutines that only write signals never allocate one.
func lookupTracking() *trackingContext {
	if ctx, ok := trackingContexts.Load(goroutineID()); ok {
		return ctx.(*trackingContext)
	}
	return nil
}

// enter opens a scope on the current goroutine's context, creating it if
// needed. Every enter must be paired with leave.
func enter() (*trackingContext, uint64) {
	gid := goroutineID()
	var ctx *trackingContext
	if v, ok := trackingContexts.Load(gid); ok {
		ctx = v.(*trackingContext)
	} else {
		ctx = &trackingContext{}
		trackingContexts.Store(gid, ctx)
	}
	ctx.depth++
	return ctx, gid
}

func (c *trackingContext) leave(gid uint64) {
	c.depth--
	if c.depth == 0 {
		trackingContexts.CompareAndDelete(gid, c)
	}
}

func currentListener() Listener {
	if ctx := lookupTracking(); ctx != nil {
		return ctx.listener
	}
	return nil
}

// CurrentOwner returns the owner established for the current goroutine, or
// nil outside of render, effects and WithOwner.
func CurrentOwner() *Owner {
	if ctx := lookupTracking(); ctx != nil {
		return ctx.owner
	}
	return nil
}

// WithOwner runs fn with owner as the current owner. Effects created inside
// fn belong to owner.
//
//	go func() {
//	    reactive.WithOwner(owner, func() {
//	        reactive.OnUnmount(stop)
//	    })
//	}()
func WithOwner(owner *Owner, fn func()) {
	ctx, gid := enter()
	old := ctx.owner
	ctx.owner = owner
	defer func() {
		ctx.owner = old
		ctx.leave(gid)
	}()
	fn()
}

// WithListener runs fn with l subscribed to every signal read inside it.
func WithListener(l Listener, fn func()) {
	ctx, gid := enter()
	old := ctx.listener
	ctx.listener = l
	defer func() {
		ctx.listener = old
		ctx.leave(gid)
	}()
	fn()
}

// Untracked runs fn without tracking signal reads as dependencies.
func Untracked(fn func()) {
	if currentListener() == nil {
		fn()
		return
	}
	WithListener(nil, fn)
}
