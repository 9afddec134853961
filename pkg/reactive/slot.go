package reactive

import (
	"fmt"

	"github.com/vango-dev/hooks/internal/errors"
)

func (o *Owner) startRender() {
	o.rendering = true
	o.slotIdx = 0
}

func (o *Owner) endRender() {
	o.rendering = false
	defer func() { o.renderCount++ }()

	if DebugMode && o.renderCount > 0 && o.slotIdx < len(o.slots) {
		panic(errors.New("E002").WithDetail(fmt.Sprintf(
			"expected %d hooks, got %d", len(o.slots), o.slotIdx)))
	}
}

// RenderingOwner returns the owner currently rendering on this goroutine.
// It panics with E001 when called outside a render function; hook is the
// name reported in the error.
func RenderingOwner(hook string) *Owner {
	o := CurrentOwner()
	if o == nil || !o.rendering {
		panic(errors.New("E001").
			WithSuggestion(fmt.Sprintf("Call %s from the render function passed to reactive.Mount", hook)))
	}
	return o
}

// UseSlot returns the hook state stored at the current hook position of the
// rendering component. On the first render init creates the state; later
// renders return the stored value. init must not call hooks.
//
//	func UseCounter() *Signal[int] {
//	    return UseSlot("UseCounter", func() *Signal[int] { return NewSignal(0) })
//	}
func UseSlot[T any](hook string, init func() T) T {
	o := RenderingOwner(hook)

	idx := o.slotIdx
	o.slotIdx++

	if idx < len(o.slots) {
		v, ok := o.slots[idx].(T)
		if !ok {
			panic(errors.New("E002").WithDetail(fmt.Sprintf(
				"%s at position %d found state of type %T", hook, idx, o.slots[idx])))
		}
		return v
	}

	if DebugMode && o.renderCount > 0 {
		panic(errors.New("E002").WithDetail(fmt.Sprintf(
			"extra %s hook at position %d", hook, idx)))
	}

	v := init()
	o.slots = append(o.slots, v)
	return v
}

// UseSignal returns a signal that keeps its identity across renders.
func UseSignal[T any](initial T) *Signal[T] {
	return UseSlot("UseSignal", func() *Signal[T] {
		return NewSignal(initial)
	})
}

// UseRef returns a ref that keeps its identity across renders.
func UseRef[T any](initial T) *Ref[T] {
	return UseSlot("UseRef", func() *Ref[T] {
		return NewRef(initial)
	})
}
