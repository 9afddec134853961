package fetch

import (
	"context"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of request spans.
const TracerName = "github.com/vango-dev/hooks/pkg/fetch"

// startSpan opens a client span on the global tracer provider. The tracer is
// resolved per call so providers installed after init are honoured.
func startSpan(ctx context.Context, method, url string) (context.Context, trace.Span) {
	return otel.Tracer(TracerName).Start(ctx, "fetch "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", url),
		),
	)
}

// injectTrace writes the span context into the request headers using the
// global propagator, falling back to W3C trace context.
func injectTrace(ctx context.Context, req *http.Request) {
	prop := otel.GetTextMapPropagator()
	if len(prop.Fields()) == 0 {
		prop = propagation.TraceContext{}
	}
	prop.Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func setSpanStatus(span trace.Span, status int) {
	span.SetAttributes(attribute.Int("http.response.status_code", status))
}

func endSpan(span trace.Span, err error) {
	defer span.End()

	switch {
	case err == nil:
		span.SetStatus(codes.Ok, "")
	case errors.Is(err, context.Canceled):
		span.SetAttributes(attribute.Bool("fetch.aborted", true))
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
