// Package fetch wraps HTTP requests for components: status-code checking,
// JSON encoding and decoding, and cancellation tied to component lifetime.
//
// # Hooks
//
// UseFetch composes hooks.UseAsyncFn and hooks.UseIsMounted. The request
// runs when the returned callback is called and is cancelled when the
// component unmounts:
//
//	inst := reactive.Mount(func() {
//	    state, send := fetch.UseFetch(fetch.Config[[]Item]{
//	        URL:       "https://api.example.com/items",
//	        OnSuccess: func(items []Item) { log.Println(len(items)) },
//	    })
//	    if !state.Loading && !state.Settled() {
//	        send(fetch.RequestOptions{})
//	    }
//	})
//
// Base captures the settings shared by an application's requests (base URL,
// authorization, default options):
//
//	api := fetch.NewBase(fetch.BaseConfig{
//	    BaseURL:       func() string { return "https://api.example.com" },
//	    Authorization: func() http.Header { return http.Header{"Authorization": {"Token " + tok}} },
//	})
//	state, send := fetch.UseBaseFetch(api, fetch.Config[Item]{URL: "/items/1"})
//
// # Errors
//
// Non-2xx responses become *HTTPError, whose Details hold a user-facing
// explanation (Details["default"]) or the server's field errors. Requests
// cancelled by unmount return an error matching ErrAborted and never reach
// OnError.
//
// # Observability
//
// Every request runs in an OpenTelemetry client span taken from the global
// tracer provider, and trace context is injected into the request headers.
// EnableMetrics registers Prometheus collectors for request counts,
// durations and failures.
package fetch
