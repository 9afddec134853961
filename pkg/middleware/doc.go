// Package middleware instruments net/http servers.
//
// Each constructor returns a func(http.Handler) http.Handler, so the
// middleware plugs into chi routers or plain http.ServeMux chains:
//
//	r := chi.NewRouter()
//	r.Use(
//	    middleware.RequestID,
//	    middleware.RequestLogger(logger),
//	    middleware.OpenTelemetry(),
//	    middleware.Prometheus(middleware.WithNamespace("hooks")),
//	)
//
// # Prometheus Metrics
//
// Prometheus records request counts, durations and in-flight requests,
// labelled by the chi route pattern rather than the raw path:
//
//	r.Handle("/metrics", promhttp.Handler())
//
// # OpenTelemetry
//
// OpenTelemetry extracts incoming trace context and wraps each request in a
// server span taken from the global tracer provider. Responses with a 5xx
// status mark the span as failed.
//
// # Request IDs
//
// RequestID reuses the caller's X-Request-ID or generates a UUID, echoes it
// on the response and stores it in the request context for RequestLogger
// and handlers (see RequestIDFromContext).
package middleware
