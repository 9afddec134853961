package fetch

import (
	"context"
	"errors"
	"net"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors for requests.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "hooks").
	Namespace string

	// Subsystem is the metrics subsystem (default: "fetch").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the request metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "hooks",
		Subsystem: "fetch",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Failure kinds used for the request_errors_total "kind" label.
const (
	failureBuild     = "build"
	failureTransport = "transport"
	failureTimeout   = "timeout"
	failureStatus    = "status"
	failureDecode    = "decode"
)

type metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestErrors   *prometheus.CounterVec
	inFlight        prometheus.Gauge
}

// globalMetrics is nil until EnableMetrics is called.
var globalMetrics atomic.Pointer[metrics]

func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of requests that received a response",
			ConstLabels: config.ConstLabels,
		}, []string{"method", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "Time from sending a request to receiving response headers",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"method"}),

		requestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_errors_total",
			Help:        "Total number of failed requests by failure kind",
			ConstLabels: config.ConstLabels,
		}, []string{"method", "kind"}),

		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_in_flight",
			Help:        "Number of requests waiting for a response",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// EnableMetrics registers the request collectors and starts recording.
//
// Metrics collected (with the default namespace and subsystem):
//   - hooks_fetch_requests_total: Counter of responses by method and status code
//   - hooks_fetch_request_duration_seconds: Histogram of time to response headers
//   - hooks_fetch_request_errors_total: Counter of failures by method and kind
//   - hooks_fetch_requests_in_flight: Gauge of outstanding requests
//
// Calling EnableMetrics again replaces the collectors; register them in a
// fresh registry when doing so.
func EnableMetrics(opts ...MetricsOption) error {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	var m *metrics
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				if e, ok := r.(error); ok {
					err = e
					return
				}
				panic(r)
			}
		}()
		m = initMetrics(config)
		return nil
	}()
	if err != nil {
		return err
	}

	globalMetrics.Store(m)
	return nil
}

// DisableMetrics stops recording. Registered collectors keep their values.
func DisableMetrics() {
	globalMetrics.Store(nil)
}

func trackInFlight() func() {
	m := globalMetrics.Load()
	if m == nil {
		return func() {}
	}
	m.inFlight.Inc()
	return m.inFlight.Dec
}

func observeResponse(method string, status int, elapsed time.Duration) {
	m := globalMetrics.Load()
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method).Observe(elapsed.Seconds())
}

func recordFailure(method, kind string) {
	m := globalMetrics.Load()
	if m == nil || kind == "" {
		return
	}
	m.requestErrors.WithLabelValues(method, kind).Inc()
}

// classifyTransport maps a client error to a failure kind. Cancellation is
// not a failure and is reported as "".
func classifyTransport(err error) string {
	if errors.Is(err, context.Canceled) {
		return ""
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return failureTimeout
	}
	return failureTransport
}
