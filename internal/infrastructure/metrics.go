package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	ServiceName = "cardiopulse"
	MeterName   = "cardiopulse"
)

// MetricsProviders holds the OpenTelemetry metric provider and the
// Prometheus scrape handler it exports through.
type MetricsProviders struct {
	MeterProvider  *sdkmetric.MeterProvider
	Meter          metric.Meter
	PrometheusHTTP http.Handler
	Logger         *slog.Logger
}

// InitializeMetrics wires an OTel meter provider with a Prometheus
// exporter. Tracing backends are deliberately not configured; request
// correlation runs through the trace-id logging handler instead.
func InitializeMetrics(version string, logger *slog.Logger) (*MetricsProviders, error) {
	if logger == nil {
		logger = slog.Default()
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	// A dedicated registry keeps re-initialization (tests, restarts) from
	// colliding with collectors left in the global default registry.
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	logger.Info("metrics initialized",
		slog.String("service", ServiceName),
		slog.String("exporter", "prometheus"))

	return &MetricsProviders{
		MeterProvider:  mp,
		Meter:          mp.Meter(MeterName),
		PrometheusHTTP: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Logger:         logger,
	}, nil
}

// RequestMetrics holds the HTTP-level instruments recorded by the
// metrics middleware.
type RequestMetrics struct {
	RequestCount    metric.Int64Counter
	RequestDuration metric.Float64Histogram
	ActiveRequests  metric.Int64UpDownCounter
}

// NewRequestMetrics creates the HTTP request instruments.
func NewRequestMetrics(meter metric.Meter) (*RequestMetrics, error) {
	requestCount, err := meter.Int64Counter("http_requests_total",
		metric.WithDescription("Total HTTP requests"))
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"))
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	activeRequests, err := meter.Int64UpDownCounter("http_requests_active",
		metric.WithDescription("In-flight HTTP requests"))
	if err != nil {
		return nil, fmt.Errorf("failed to create active requests counter: %w", err)
	}

	return &RequestMetrics{
		RequestCount:    requestCount,
		RequestDuration: requestDuration,
		ActiveRequests:  activeRequests,
	}, nil
}

// Shutdown gracefully shuts down the metric provider.
func (p *MetricsProviders) Shutdown(ctx context.Context) error {
	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
	}
	return nil
}
