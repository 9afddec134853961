package fetch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// ErrAborted is matched by errors returned for requests cancelled before
// they completed, typically because the component unmounted.
var ErrAborted = errors.New("fetch: request aborted")

const (
	detailNotFound     = "Not found"
	detailUnauthorized = "You are not authorized to perform this action."
	detailDefault      = "An error occurred."

	// maxErrorBody caps how much of an error response is read.
	maxErrorBody = 1 << 20
)

// HTTPError is returned for responses with a non-2xx status.
type HTTPError struct {
	// Status is the HTTP status code.
	Status int

	// StatusText is the reason phrase, e.g. "Not Found".
	StatusText string

	// Details explains the failure. Details["default"] holds a single
	// message; otherwise keys are the fields reported by the server.
	Details map[string]any

	// Response is the failed response. Its body has been read and replaced
	// with an in-memory copy.
	Response *http.Response
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return "HTTP Error: " + e.StatusText
}

// StatusCode returns the HTTP status code for this error.
func (e *HTTPError) StatusCode() int {
	return e.Status
}

// Message returns Details["default"] when it is a string.
func (e *HTTPError) Message() string {
	if s, ok := e.Details["default"].(string); ok {
		return s
	}
	return ""
}

// CheckStatus returns resp unchanged when its status is 2xx. Otherwise it
// reads and closes the body and returns an *HTTPError describing the
// failure:
//
//   - 404: {"default": "Not found"}
//   - 401: {"default": "You are not authorized to perform this action."}
//   - a JSON object with an "errors" array: the entries joined by newlines
//   - a JSON object with an "errors" object: that object
//   - any other JSON object: the object itself
//   - anything else: {"default": "An error occurred."}
func CheckStatus(resp *http.Response) (*http.Response, error) {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	herr := &HTTPError{
		Status:     resp.StatusCode,
		StatusText: statusText(resp),
		Response:   resp,
	}

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	resp.Body.Close()
	resp.Body = io.NopCloser(bytes.NewReader(body))

	switch resp.StatusCode {
	case http.StatusNotFound:
		herr.Details = map[string]any{"default": detailNotFound}
	case http.StatusUnauthorized:
		herr.Details = map[string]any{"default": detailUnauthorized}
	default:
		if readErr != nil {
			herr.Details = map[string]any{"default": detailDefault}
		} else {
			herr.Details = parseDetails(body)
		}
	}
	return nil, herr
}

// statusText extracts the reason phrase from resp.Status ("418 I'm a
// teapot"), falling back to the standard text for the code.
func statusText(resp *http.Response) string {
	prefix := strconv.Itoa(resp.StatusCode) + " "
	if text := strings.TrimPrefix(resp.Status, prefix); text != "" && text != resp.Status {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

func parseDetails(body []byte) map[string]any {
	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return map[string]any{"default": detailDefault}
	}
	obj, ok := data.(map[string]any)
	if !ok {
		return map[string]any{"default": detailDefault}
	}

	errs := obj["errors"]
	if falsy(errs) {
		return obj
	}
	switch v := errs.(type) {
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = joinable(item)
		}
		return map[string]any{"default": strings.Join(parts, "\n")}
	case map[string]any:
		return v
	default:
		return map[string]any{"default": fmt.Sprint(v)}
	}
}

// falsy reports whether a decoded JSON value is absent, null, false, zero
// or the empty string.
func falsy(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case float64:
		return x == 0
	case string:
		return x == ""
	}
	return false
}

func joinable(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case map[string]any, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	default:
		return fmt.Sprint(x)
	}
}
