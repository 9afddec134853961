package fetch

import (
	"context"

	"github.com/vango-dev/hooks/pkg/hooks"
	"github.com/vango-dev/hooks/pkg/reactive"
)

// Config describes a request issued by UseFetch.
type Config[S any] struct {
	// URL is the default request URL. Changing it between renders replaces
	// the callback.
	URL string

	// Options are the base options of every call.
	Options Options

	// OnSuccess receives each decoded response.
	OnSuccess func(S)

	// OnError receives each failure other than an abort.
	OnError func(error)
}

type fetchSlot struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// UseFetch returns the state of the request described by cfg and a callback
// that sends it. The state follows hooks.UseAsyncFn: {Loading: true} while a
// request is in flight, then the decoded value or the error.
//
// Requests are bound to the component: unmounting cancels any request in
// flight, which then settles with ErrAborted without calling OnError and
// without changing the state.
func UseFetch[S any](cfg Config[S]) (hooks.AsyncState[S], func(RequestOptions)) {
	slot := reactive.UseSlot("UseFetch", func() *fetchSlot {
		ctx, cancel := context.WithCancel(context.Background())
		return &fetchSlot{ctx: ctx, cancel: cancel}
	})
	hooks.UseIsMounted(slot.cancel)

	send := Request(cfg.URL, cfg.Options, cfg.OnSuccess, cfg.OnError)
	return hooks.UseAsyncFn(func(ro RequestOptions) (S, error) {
		return send(slot.ctx, ro)
	}, cfg.URL)
}
