package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/zatekoja/doseordering/pkg/config"
)

const instrumentationName = "github.com/zatekoja/doseordering"

// Metrics holds all application metrics
type Metrics struct {
	RequestCount        metric.Int64Counter
	RequestDuration     metric.Float64Histogram
	PlanCount           metric.Int64Counter
	PlanDuration        metric.Float64Histogram
	RecommendationCount metric.Int64Counter
	UnpricedCount       metric.Int64Counter
	ExportCount         metric.Int64Counter
}

// Setup initializes OpenTelemetry tracing and returns its shutdown function
func Setup(ctx context.Context, cfg config.OTELConfig) (func(context.Context) error, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	traceExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.Endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tracerProvider.Shutdown, nil
}

// InitMetrics initializes application metrics on the global meter provider
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestCount, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	planCount, err := meter.Int64Counter(
		"ordering.plan.count",
		metric.WithDescription("Number of order plans calculated"),
	)
	if err != nil {
		return nil, err
	}

	planDuration, err := meter.Float64Histogram(
		"ordering.plan.duration",
		metric.WithDescription("Order plan calculation time in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	recommendationCount, err := meter.Int64Counter(
		"ordering.recommendation.count",
		metric.WithDescription("Number of isotope recommendations emitted"),
	)
	if err != nil {
		return nil, err
	}

	unpricedCount, err := meter.Int64Counter(
		"ordering.unpriced.count",
		metric.WithDescription("Isotopes with confirmed demand but no vendor price"),
	)
	if err != nil {
		return nil, err
	}

	exportCount, err := meter.Int64Counter(
		"export.workbook.count",
		metric.WithDescription("Number of spreadsheet exports"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:        requestCount,
		RequestDuration:     requestDuration,
		PlanCount:           planCount,
		PlanDuration:        planDuration,
		RecommendationCount: recommendationCount,
		UnpricedCount:       unpricedCount,
		ExportCount:         exportCount,
	}, nil
}

// StartSpan starts a new trace span
func StartSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	tracer := otel.Tracer(instrumentationName)
	return tracer.Start(ctx, spanName)
}

// RecordError records an error in the current span
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}

// SetSpanAttributes sets attributes on a span
func SetSpanAttributes(span trace.Span, attrs ...attribute.KeyValue) {
	span.SetAttributes(attrs...)
}

// RecordRequestMetric records an HTTP request. A nil metrics set is ignored.
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	metrics.RequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordPlanMetric records one order plan calculation
func RecordPlanMetric(ctx context.Context, metrics *Metrics, filterKind string, recommendations, unpriced int, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("ordering.filter", filterKind))

	metrics.PlanCount.Add(ctx, 1, attrs)
	metrics.PlanDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
	metrics.RecommendationCount.Add(ctx, int64(recommendations), attrs)
	metrics.UnpricedCount.Add(ctx, int64(unpriced), attrs)
}

// RecordExport records a spreadsheet export
func RecordExport(ctx context.Context, metrics *Metrics, report string) {
	if metrics == nil {
		return
	}
	metrics.ExportCount.Add(ctx, 1, metric.WithAttributes(attribute.String("export.report", report)))
}
