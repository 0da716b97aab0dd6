package telemetry

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName = "github.com/jsamuelsen/quote-service/telemetry"

	// HeaderTraceID is set on every traced response.
	HeaderTraceID = "X-Trace-ID"
)

// Metrics holds HTTP server metrics.
type Metrics struct {
	requestDuration metric.Float64Histogram
	requestTotal    metric.Int64Counter
	activeRequests  metric.Int64UpDownCounter
}

// NewMetrics creates HTTP server metrics on the global meter provider.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	activeRequests, err := meter.Int64UpDownCounter(
		"http.server.active_requests",
		metric.WithDescription("Number of active HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		activeRequests:  activeRequests,
	}, nil
}

// Middleware returns the telemetry chain for the engine: otelgin tracing
// followed by request metrics and the X-Trace-ID response header.
func Middleware(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName),
		MetricsMiddleware(),
	}
}

// MetricsMiddleware records request metrics. It must run after otelgin so the
// span is available for the trace header.
func MetricsMiddleware() gin.HandlerFunc {
	// Instrument errors go to the otel error handler; requests still flow.
	metrics, err := NewMetrics()
	if err != nil {
		otel.Handle(err)
	}

	return func(c *gin.Context) {
		start := time.Now()

		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}

		if metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
			)

			metrics.activeRequests.Add(c.Request.Context(), 1, attrs)
			defer metrics.activeRequests.Add(c.Request.Context(), -1, attrs)
		}

		c.Next()

		if metrics != nil {
			attrs := metric.WithAttributes(
				attribute.String("http.method", c.Request.Method),
				attribute.String("http.route", c.FullPath()),
				attribute.Int("http.status_code", c.Writer.Status()),
			)
			metrics.requestDuration.Record(c.Request.Context(), time.Since(start).Seconds(), attrs)
			metrics.requestTotal.Add(c.Request.Context(), 1, attrs)
		}
	}
}

// StartStoreSpan starts a client span around one storage driver call.
func StartStoreSpan(ctx context.Context, backend, operation string) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, "quotes."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", backend),
			attribute.String("db.operation", operation),
		),
	)
}

// EndStoreSpan records err on span, if any, and ends it.
func EndStoreSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
