package main

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vango-dev/hooks/internal/errors"
	"github.com/vango-dev/hooks/pkg/fetch"
	"github.com/vango-dev/hooks/pkg/hooks"
	"github.com/vango-dev/hooks/pkg/reactive"
)

// settleGrace is how long the CLI waits past the request timeout before
// giving up on a request that has not settled.
const settleGrace = time.Second

type getOptions struct {
	method  string
	data    string
	headers []string
	timeout time.Duration
}

func getCmd(a *app) *cobra.Command {
	var opts getOptions

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Send a request and print the result",
		Long: `Send one request to HOOKS_BASE_URL + <path> and print the decoded
JSON response.

The request runs inside a mounted component using UseBaseFetch, with the
configured Authorization header. Failed requests print the status and
error details, then exit non-zero.

Examples:
  hooksctl get /api/items
  hooksctl get /api/items -X POST -d '{"name":"kettle"}'
  hooksctl get /api/private -H 'Accept-Language: en'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd.Context(), a, cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.method, "method", "X", http.MethodGet, "HTTP method")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "JSON request body")
	cmd.Flags().StringArrayVarP(&opts.headers, "header", "H", nil, `Extra header as "Name: value" (repeatable)`)
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Request timeout (default HOOKS_TIMEOUT)")

	return cmd
}

func runGet(ctx context.Context, a *app, out io.Writer, path string, opts getOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	header, err := parseHeaders(opts.headers)
	if err != nil {
		return err
	}

	var body any
	if opts.data != "" {
		if err := json.Unmarshal([]byte(opts.data), &body); err != nil {
			return errors.New("E010").
				WithDetail("--data is not valid JSON").
				Wrap(err)
		}
	}

	timeout := a.cfg.Timeout
	if opts.timeout > 0 {
		timeout = opts.timeout
	}

	api := fetch.NewBase(fetch.BaseConfig{
		BaseURL:        func() string { return strings.TrimSuffix(a.cfg.BaseURL, "/") },
		Authorization:  a.cfg.Authorization,
		DefaultOptions: fetch.Options{Timeout: timeout},
	})

	var state hooks.AsyncState[any]
	inst := reactive.Mount(func() {
		var send func(fetch.RequestOptions)
		state, send = fetch.UseBaseFetch(api, fetch.Config[any]{
			URL: path,
			Options: fetch.Options{
				Method: strings.ToUpper(opts.method),
				Header: header,
			},
		})
		hooks.UseMount(func() reactive.Cleanup {
			send(fetch.RequestOptions{Body: body})
			return nil
		})
	}, reactive.WithLogger(a.logger))
	defer inst.Unmount()

	waitCtx := ctx
	if timeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, timeout+settleGrace)
		defer cancel()
	}

	for !state.Settled() {
		if err := inst.WaitForUpdate(waitCtx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return errors.New("E030").Wrap(err)
		}
	}

	if state.Err != nil {
		var herr *fetch.HTTPError
		if stderrors.As(state.Err, &herr) {
			printJSON(out, map[string]any{
				"status":  herr.Status,
				"details": herr.Details,
			})
		}
		return state.Err
	}

	a.logger.Debug("request settled", "path", path)
	if state.Value != nil {
		printJSON(out, state.Value)
	}
	return nil
}

// parseHeaders turns "Name: value" flags into a header.
func parseHeaders(raw []string) (http.Header, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	h := make(http.Header, len(raw))
	for _, line := range raw {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errors.New("E010").
				WithDetail(fmt.Sprintf("Header %q is not in \"Name: value\" form", line))
		}
		h.Add(name, strings.TrimSpace(value))
	}
	return h, nil
}

func printJSON(out io.Writer, v any) {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}
