package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/hooks/internal/demoapi"
	"github.com/vango-dev/hooks/pkg/middleware"
)

const shutdownTimeout = 5 * time.Second

func serveCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the demo API",
		Long: `Run a small in-memory JSON API to try requests against.

Routes:
  GET    /api/items        list items
  POST   /api/items        create an item ({"name": "..."})
  GET    /api/items/{id}   fetch an item
  DELETE /api/items/{id}   delete an item
  GET    /api/private      requires an Authorization header
  GET    /api/teapot       always fails with 418
  GET    /metrics          Prometheus metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, a, addr, func(bound net.Addr) {
				fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", bound)
			})
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default HOOKS_LISTEN_ADDR)")

	return cmd
}

// newServerHandler wires the demo API and the metrics endpoint.
func newServerHandler(a *app, reg *prometheus.Registry) http.Handler {
	api := demoapi.New(demoapi.NewStore(), a.logger)

	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	r.Mount("/", api.Router(
		middleware.RequestID,
		middleware.RequestLogger(a.logger),
		middleware.OpenTelemetry(),
		middleware.Prometheus(
			middleware.WithNamespace(a.cfg.MetricsNamespace),
			middleware.WithRegistry(reg),
		),
	))
	return r
}

// runServe serves until ctx ends, then shuts down gracefully. ready, if
// non-nil, is called with the bound address once the listener is open.
func runServe(ctx context.Context, a *app, addr string, ready func(net.Addr)) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           newServerHandler(a, reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	a.logger.Info("demo api listening", "addr", ln.Addr().String())
	if ready != nil {
		ready(ln.Addr())
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
