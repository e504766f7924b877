package observability

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"resumescore/internal/config"
)

// Metrics holds all custom metrics for resumescore
type Metrics struct {
	// Scoring
	ResumesScored metric.Int64Counter
	ScoreValue    metric.Int64Histogram

	// Validation
	ValidationsRun   metric.Int64Counter
	ValidationIssues metric.Int64Counter

	// Export
	ExportsRendered metric.Int64Counter

	// Store
	StoreOperations metric.Int64Counter
	StoreDuration   metric.Float64Histogram

	// Rate limiting
	RateLimitHits metric.Int64Counter
}

// Manager owns the tracer and meter providers. A nil *Manager is valid and
// records nothing, so callers never need to guard their calls.
type Manager struct {
	config         config.ObservabilityConfig
	tracerProvider *trace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	metrics        *Metrics
	prometheus     http.Handler
	shutdownFuncs  []func(context.Context) error
}

// NewManager sets up tracing and metrics according to cfg. When
// observability is disabled it returns a manager that records nothing.
func NewManager(cfg config.ObservabilityConfig) (*Manager, error) {
	return newManager(cfg, nil)
}

// newManager lets tests attach their own reader.
func newManager(cfg config.ObservabilityConfig, extra sdkmetric.Reader) (*Manager, error) {
	m := &Manager{config: cfg}
	if !cfg.Enabled {
		return m, nil
	}

	res, err := m.resource()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize resource: %w", err)
	}

	if cfg.TracingEnabled {
		if err := m.initTracing(res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
	}

	if cfg.MetricsEnabled {
		if err := m.initMetrics(res, extra); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	return m, nil
}

func (m *Manager) resource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(m.config.ServiceName),
			semconv.ServiceVersion(m.config.ServiceVersion),
			attribute.String("service.instance.id", m.config.ServiceInstance),
		),
	)
}

func (m *Manager) initTracing(res *resource.Resource) error {
	var exporter trace.SpanExporter
	var err error

	switch {
	case m.config.ConsoleOutput:
		opts := []stdouttrace.Option{stdouttrace.WithWriter(os.Stderr)}
		if m.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	case m.config.OTLPEndpoint != "":
		exporter, err = m.otlpTraceExporter()
	default:
		exporter = noOpSpanExporter{}
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(m.config.SampleRate))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	m.tracerProvider = tp
	m.shutdownFuncs = append(m.shutdownFuncs, tp.Shutdown)
	return nil
}

func (m *Manager) initMetrics(res *resource.Resource, extra sdkmetric.Reader) error {
	readers, err := m.metricReaders()
	if err != nil {
		return err
	}
	if extra != nil {
		readers = append(readers, extra)
	}
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, r := range readers {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)

	m.meterProvider = mp
	m.shutdownFuncs = append(m.shutdownFuncs, mp.Shutdown)

	metrics, err := newMetrics(mp.Meter(m.config.ServiceName))
	if err != nil {
		return err
	}
	m.metrics = metrics
	return nil
}

// metricReaders builds one reader per configured sink.
func (m *Manager) metricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader
	interval := m.config.CollectionInterval
	if interval <= 0 {
		interval = 15 * time.Second
	}

	if m.config.ConsoleOutput {
		exporter, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stderr))
		if err != nil {
			return nil, fmt.Errorf("failed to create console metric exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
	}

	if m.config.OTLPEndpoint != "" {
		exporter, err := m.otlpMetricExporter()
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		readers = append(readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
	}

	if m.config.PrometheusEnabled {
		reader, handler, err := NewPrometheusExporter()
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		readers = append(readers, reader)
		m.prometheus = handler
	}

	return readers, nil
}

func newMetrics(meter metric.Meter) (*Metrics, error) {
	var err error
	m := &Metrics{}

	if m.ResumesScored, err = meter.Int64Counter(
		"resumescore_resumes_scored_total",
		metric.WithDescription("Total number of resumes scored"),
	); err != nil {
		return nil, fmt.Errorf("failed to create resumes scored metric: %w", err)
	}

	if m.ScoreValue, err = meter.Int64Histogram(
		"resumescore_score",
		metric.WithDescription("Distribution of ATS scores"),
		metric.WithExplicitBucketBoundaries(20, 40, 60, 70, 80, 90, 100),
	); err != nil {
		return nil, fmt.Errorf("failed to create score metric: %w", err)
	}

	if m.ValidationsRun, err = meter.Int64Counter(
		"resumescore_validations_total",
		metric.WithDescription("Total number of validation runs"),
	); err != nil {
		return nil, fmt.Errorf("failed to create validations metric: %w", err)
	}

	if m.ValidationIssues, err = meter.Int64Counter(
		"resumescore_validation_issues_total",
		metric.WithDescription("Validation issues found, by severity"),
	); err != nil {
		return nil, fmt.Errorf("failed to create validation issues metric: %w", err)
	}

	if m.ExportsRendered, err = meter.Int64Counter(
		"resumescore_exports_total",
		metric.WithDescription("Total number of exports rendered"),
	); err != nil {
		return nil, fmt.Errorf("failed to create exports metric: %w", err)
	}

	if m.StoreOperations, err = meter.Int64Counter(
		"resumescore_store_operations_total",
		metric.WithDescription("Store operations by backend, operation and outcome"),
	); err != nil {
		return nil, fmt.Errorf("failed to create store operations metric: %w", err)
	}

	if m.StoreDuration, err = meter.Float64Histogram(
		"resumescore_store_operation_duration_seconds",
		metric.WithDescription("Time spent in store operations"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("failed to create store duration metric: %w", err)
	}

	if m.RateLimitHits, err = meter.Int64Counter(
		"resumescore_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	); err != nil {
		return nil, fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return m, nil
}

// RecordScore counts one scoring run and records its value.
func (m *Manager) RecordScore(ctx context.Context, strategy, label string, score int) {
	if m == nil || m.metrics == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("strategy", strategy),
		attribute.String("label", label),
	)
	m.metrics.ResumesScored.Add(ctx, 1, attrs)
	m.metrics.ScoreValue.Record(ctx, int64(score), metric.WithAttributes(attribute.String("strategy", strategy)))
}

// RecordValidation counts one validation run and its issues by severity.
func (m *Manager) RecordValidation(ctx context.Context, valid bool, errorCount, warningCount int) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.ValidationsRun.Add(ctx, 1, metric.WithAttributes(attribute.Bool("valid", valid)))
	if errorCount > 0 {
		m.metrics.ValidationIssues.Add(ctx, int64(errorCount), metric.WithAttributes(attribute.String("severity", "error")))
	}
	if warningCount > 0 {
		m.metrics.ValidationIssues.Add(ctx, int64(warningCount), metric.WithAttributes(attribute.String("severity", "warning")))
	}
}

// RecordExport counts one export attempt.
func (m *Manager) RecordExport(ctx context.Context, format string, err error) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.ExportsRendered.Add(ctx, 1, metric.WithAttributes(
		attribute.String("format", format),
		attribute.Bool("success", err == nil),
	))
}

// RecordRateLimitHit counts one rejected request.
func (m *Manager) RecordRateLimitHit(ctx context.Context, clientType string) {
	if m == nil || m.metrics == nil {
		return
	}
	m.metrics.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attribute.String("client_type", clientType)))
}

// TrackStoreOperation runs fn inside a span and records its outcome and
// duration.
func (m *Manager) TrackStoreOperation(ctx context.Context, backend, operation string, fn func(context.Context) error) error {
	ctx, span := m.Tracer("resumescore.store").Start(ctx, "store."+operation,
		oteltrace.WithAttributes(attribute.String("store.backend", backend)))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start).Seconds()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if m == nil || m.metrics == nil {
		return err
	}
	attrs := metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	)
	m.metrics.StoreOperations.Add(ctx, 1, attrs)
	m.metrics.StoreDuration.Record(ctx, elapsed, attrs)
	return err
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (m *Manager) HTTPMiddleware() func(http.Handler) http.Handler {
	if m == nil || !m.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	opts := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	}
	if m.tracerProvider != nil {
		opts = append(opts, otelhttp.WithTracerProvider(m.tracerProvider))
	}
	if m.meterProvider != nil {
		opts = append(opts, otelhttp.WithMeterProvider(m.meterProvider))
	}
	return otelhttp.NewMiddleware(m.config.ServiceName, opts...)
}

// Tracer returns a tracer for the service
func (m *Manager) Tracer(name string) oteltrace.Tracer {
	if m == nil || m.tracerProvider == nil {
		return noop.NewTracerProvider().Tracer(name)
	}
	return m.tracerProvider.Tracer(name)
}

// PrometheusHandler serves the scrape endpoint, or nil when the Prometheus
// exporter is off.
func (m *Manager) PrometheusHandler() http.Handler {
	if m == nil {
		return nil
	}
	return m.prometheus
}

// Shutdown flushes and stops every provider.
func (m *Manager) Shutdown(ctx context.Context) error {
	if m == nil {
		return nil
	}
	for _, shutdown := range m.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// noOpSpanExporter drops spans when no sink is configured.
type noOpSpanExporter struct{}

func (noOpSpanExporter) ExportSpans(context.Context, []trace.ReadOnlySpan) error { return nil }
func (noOpSpanExporter) Shutdown(context.Context) error                          { return nil }

func (m *Manager) otlpTraceExporter() (trace.SpanExporter, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(m.config.OTLPEndpoint)}
	if m.config.OTLPInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(m.config.OTLPHeaders) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(m.config.OTLPHeaders))
	}
	return otlptracehttp.New(context.Background(), opts...)
}

func (m *Manager) otlpMetricExporter() (sdkmetric.Exporter, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpointURL(m.config.OTLPEndpoint)}
	if m.config.OTLPInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(m.config.OTLPHeaders) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(m.config.OTLPHeaders))
	}
	return otlpmetrichttp.New(context.Background(), opts...)
}
