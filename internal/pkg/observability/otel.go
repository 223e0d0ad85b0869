// Package observability sets up process-wide logging, tracing and metrics.
package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// Settings control how telemetry is exported. Zero values fall back to
// OTEL_* environment variables and then to stdout.
type Settings struct {
	ServiceName  string
	Environment  string
	OTLPEndpoint string
	Insecure     bool
	LogLevel     slog.Level
	LogOutput    io.Writer
}

// Telemetry bundles the providers the rest of the process pulls tracers and
// meters from.
type Telemetry struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Setup installs the JSON slog default logger, a batching tracer provider and
// a meter provider, and the W3C trace context propagator. The returned
// shutdown flushes pending spans and must be called on exit.
func Setup(ctx context.Context, s Settings) (*Telemetry, func(context.Context) error, error) {
	logger := newLogger(s)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			attribute.String("service.name", s.ServiceName),
			attribute.String("deployment.environment", firstNonEmpty(s.Environment, os.Getenv("ENVIRONMENT"), "local")),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	exporter, err := newSpanExporter(ctx, s, logger)
	if err != nil {
		return nil, nil, err
	}

	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewManualReader()),
	)
	otel.SetMeterProvider(meterProvider)

	shutdown := func(ctx context.Context) error {
		return errors.Join(meterProvider.Shutdown(ctx), tracerProvider.Shutdown(ctx))
	}

	return &Telemetry{
		Logger:         logger,
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
	}, shutdown, nil
}

// Tracer returns a named tracer, or the global one when t is nil.
func (t *Telemetry) Tracer(name string) trace.Tracer {
	if t == nil || t.TracerProvider == nil {
		return otel.Tracer(name)
	}
	return t.TracerProvider.Tracer(name)
}

// Meter returns a named meter, or a no-op meter when t is nil.
func (t *Telemetry) Meter(name string) metric.Meter {
	if t == nil || t.MeterProvider == nil {
		return metricnoop.NewMeterProvider().Meter(name)
	}
	return t.MeterProvider.Meter(name)
}

func newLogger(s Settings) *slog.Logger {
	out := s.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: s.LogLevel}))
	if s.ServiceName != "" {
		logger = logger.With("service", s.ServiceName)
	}
	slog.SetDefault(logger)
	return logger
}

func newSpanExporter(ctx context.Context, s Settings, logger *slog.Logger) (sdktrace.SpanExporter, error) {
	endpoint := firstNonEmpty(s.OTLPEndpoint, os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	if endpoint == "" {
		return stdouttrace.New()
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(endpoint)}
	if s.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err == nil {
		return exporter, nil
	}

	logger.Warn("otlp trace exporter unavailable, using stdout", "endpoint", endpoint, "error", err)
	return stdouttrace.New()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
