package hooks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/vango-dev/hooks/pkg/reactive"
)

// AsyncState is the state of an operation wrapped by UseAsyncFn.
//
// At most one of Err and Value is meaningful: a settled operation has either
// failed (Err != nil) or succeeded (HasValue).
type AsyncState[S any] struct {
	Loading  bool
	Err      error
	Value    S
	HasValue bool
}

// Settled reports whether the last call finished, successfully or not.
func (s AsyncState[S]) Settled() bool {
	return !s.Loading && (s.Err != nil || s.HasValue)
}

type asyncSlot[S, A any] struct {
	deps     []any
	callback func(A)
}

// UseAsyncFn wraps fn with loading, error and value state.
//
// The returned state starts as {Loading: false}. Calling the returned
// callback while the component is mounted sets {Loading: true} and runs fn
// on its own goroutine; its result becomes {Value: v, HasValue: true} or
// {Err: err}. Failures are logged through the owner's logger. Once the
// component unmounts the callback does nothing and results are dropped, so
// the state stays where it was.
//
// The callback keeps its identity, and the fn it calls, until deps change
// (compared with reflect.DeepEqual).
func UseAsyncFn[S, A any](fn func(A) (S, error), deps ...any) (AsyncState[S], func(A)) {
	logger := reactive.RenderingOwner("UseAsyncFn").Logger()

	state := reactive.UseSignal(AsyncState[S]{})
	mounted := UseIsMounted(nil)
	slot := reactive.UseSlot("UseAsyncFn", func() *asyncSlot[S, A] {
		return &asyncSlot[S, A]{}
	})

	if slot.callback == nil || !reflect.DeepEqual(slot.deps, deps) {
		slot.deps = deps
		slot.callback = asyncCallback(fn, state, mounted, logger)
	}

	return state.Get(), slot.callback
}

func asyncCallback[S, A any](fn func(A) (S, error), state *reactive.Signal[AsyncState[S]], mounted *MountedRef, logger *slog.Logger) func(A) {
	return func(args A) {
		if !mounted.Current() {
			return
		}
		state.Set(AsyncState[S]{Loading: true})

		go func() {
			value, err := call(fn, args)
			if err != nil {
				logAsyncError(logger, err)
				if mounted.Current() {
					state.Set(AsyncState[S]{Err: err})
				}
				return
			}
			if mounted.Current() {
				state.Set(AsyncState[S]{Value: value, HasValue: true})
			}
		}()
	}
}

// call runs fn, turning a panic into an error.
func call[S, A any](fn func(A) (S, error), args A) (value S, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hooks: async function panicked: %v", r)
		}
	}()
	return fn(args)
}

func logAsyncError(logger *slog.Logger, err error) {
	if errors.Is(err, context.Canceled) {
		logger.Debug("async operation cancelled", "error", err)
		return
	}
	logger.Error("async operation failed", "error", err)
}
