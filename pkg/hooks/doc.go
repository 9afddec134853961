// Package hooks provides reusable UI-state helpers for components mounted
// with the reactive runtime.
//
//   - UseIsMounted tracks whether the component is still mounted.
//   - UseMount runs a side effect once, after the first render.
//   - UseTimeout flips a flag once a delay has elapsed after mount.
//   - UseAsyncFn wraps an asynchronous operation with loading, error and
//     value state.
//
// Network requests are wrapped by the fetch package, which composes
// UseAsyncFn and UseIsMounted.
//
// # Example
//
//	inst := reactive.Mount(func() {
//	    state, load := hooks.UseAsyncFn(func(id string) (*User, error) {
//	        return api.GetUser(id)
//	    })
//	    switch {
//	    case state.Loading:
//	        render("loading...")
//	    case state.Err != nil:
//	        render(state.Err.Error())
//	    case state.HasValue:
//	        render(state.Value.Name)
//	    default:
//	        onClick = func() { load("42") }
//	    }
//	})
//
// Like every hook, these must be called unconditionally and in the same
// order on every render.
package hooks
