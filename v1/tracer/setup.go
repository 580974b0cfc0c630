package tracer

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Tracer owns the OpenTelemetry tracer provider for the process. Creating
// one installs it as the global provider, so instrumented components (the
// registry client traces every REST call) start emitting spans without any
// extra wiring.
type Tracer struct {
	tracer *sdktrace.TracerProvider
}

// NewClient initializes OpenTelemetry tracing from the configuration. With
// cfg.Enabled false it returns an inert Tracer: span creation still works
// through the default no-op provider, nothing is exported.
//
// Example:
//
//	t, err := tracer.NewClient(tracer.Config{
//	    Enabled:     true,
//	    Endpoint:    "localhost:4318",
//	    ServiceName: "user-pipeline",
//	    Insecure:    true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Shutdown(context.Background())
func NewClient(cfg Config) (*Tracer, error) {
	if !cfg.Enabled {
		return &Tracer{}, nil
	}
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("tracer: Endpoint is required when tracing is enabled")
	}
	if cfg.SampleRatio <= 0 || cfg.SampleRatio > 1 {
		cfg.SampleRatio = DefaultSampleRatio
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("tracer: create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tracer: build resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Tracer{tracer: provider}, nil
}

// Shutdown flushes pending spans and stops the provider. It is a no-op on an
// inert tracer.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.tracer == nil {
		return nil
	}
	return t.tracer.Shutdown(ctx)
}
