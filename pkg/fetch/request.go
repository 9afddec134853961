package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	hookerrors "github.com/vango-dev/hooks/internal/errors"
)

// RequestIDHeader is set on every request that does not already carry it.
const RequestIDHeader = "X-Request-ID"

// RequestFunc sends one request described by the per-call options.
type RequestFunc[S any] func(ctx context.Context, ro RequestOptions) (S, error)

// Request primes a request to defaultURL with base options. Each call of
// the returned function overlays its RequestOptions, sends the request,
// checks the status and decodes the JSON body into S (204 No Content
// yields the zero S).
//
// onSuccess receives the decoded value; onError receives every failure
// except cancellation, which is returned as an error matching ErrAborted.
// Either callback may be nil.
func Request[S any](defaultURL string, base Options, onSuccess func(S), onError func(error)) RequestFunc[S] {
	return func(ctx context.Context, ro RequestOptions) (S, error) {
		var zero S

		url := defaultURL
		if ro.URL != "" {
			url = ro.URL
		}

		data, err := send[S](ctx, url, base.Merge(ro.Options), ro.Body)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return zero, fmt.Errorf("%w: %w", ErrAborted, err)
			}
			if onError != nil {
				onError(err)
			}
			return zero, err
		}

		if onSuccess != nil {
			onSuccess(data)
		}
		return data, nil
	}
}

func send[S any](ctx context.Context, url string, opts Options, body any) (data S, err error) {
	method := opts.method()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	ctx, span := startSpan(ctx, method, url)
	defer func() { endSpan(span, err) }()

	req, err := newRequest(ctx, method, url, opts.Header, body)
	if err != nil {
		recordFailure(method, failureBuild)
		return data, err
	}
	injectTrace(ctx, req)

	start := time.Now()
	release := trackInFlight()
	resp, err := opts.client().Do(req)
	release()
	if err != nil {
		recordFailure(method, classifyTransport(err))
		return data, err
	}
	observeResponse(method, resp.StatusCode, time.Since(start))
	setSpanStatus(span, resp.StatusCode)

	if _, err = CheckStatus(resp); err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return data, ctx.Err()
		}
		recordFailure(method, failureStatus)
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return data, nil
	}
	if err = json.NewDecoder(resp.Body).Decode(&data); err != nil {
		if errors.Is(err, context.Canceled) {
			return data, err
		}
		recordFailure(method, failureDecode)
		return data, hookerrors.New("E011").Wrap(err)
	}
	return data, nil
}

func newRequest(ctx context.Context, method, url string, header http.Header, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, hookerrors.New("E010").Wrap(err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, hookerrors.New("E010").Wrap(err)
	}

	req.Header = mergeHeader(req.Header, header)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return req, nil
}
