package fetch

import (
	"net/http"
	"time"
)

// Options configures how a request is sent. The zero value sends a GET
// with http.DefaultClient.
type Options struct {
	// Method is the HTTP method (default: GET).
	Method string

	// Header holds extra request headers.
	Header http.Header

	// Client sends the request (default: http.DefaultClient).
	Client *http.Client

	// Timeout bounds the whole request, body decoding included.
	// Zero means no timeout beyond the client's own.
	Timeout time.Duration
}

// Merge returns o overlaid with over. Non-zero fields of over win; headers
// are merged key by key with over's values replacing o's.
func (o Options) Merge(over *Options) Options {
	merged := o
	merged.Header = mergeHeader(nil, o.Header)
	if over == nil {
		return merged
	}

	if over.Method != "" {
		merged.Method = over.Method
	}
	if over.Client != nil {
		merged.Client = over.Client
	}
	if over.Timeout != 0 {
		merged.Timeout = over.Timeout
	}
	merged.Header = mergeHeader(merged.Header, over.Header)
	return merged
}

func (o Options) method() string {
	if o.Method == "" {
		return http.MethodGet
	}
	return o.Method
}

func (o Options) client() *http.Client {
	if o.Client == nil {
		return http.DefaultClient
	}
	return o.Client
}

// mergeHeader copies every key of src into dst under its canonical form,
// replacing existing values.
func mergeHeader(dst, src http.Header) http.Header {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(http.Header, len(src))
	}
	for k, v := range src {
		dst[http.CanonicalHeaderKey(k)] = append([]string(nil), v...)
	}
	return dst
}

// RequestOptions are the per-call arguments of a request callback.
type RequestOptions struct {
	// URL replaces the configured URL when non-empty.
	URL string

	// Body, when non-nil, is sent JSON-encoded with
	// Content-Type: application/json.
	Body any

	// Options overlay the configured options for this call.
	Options *Options
}
