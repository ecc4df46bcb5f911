package cmd

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"

	"github.com/bholdus-chain/dex/app"
)

const serviceName = "dexd"

// TelemetryConfig controls OTLP trace export.
type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	SampleRate   float64
}

// DefaultTelemetryConfig leaves tracing off.
func DefaultTelemetryConfig() TelemetryConfig {
	return TelemetryConfig{
		Enabled:      false,
		OTLPEndpoint: "localhost:4318",
		SampleRate:   1.0,
	}
}

// Validate checks the endpoint and sample rate of an enabled config.
func (c TelemetryConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.OTLPEndpoint == "" {
		return fmt.Errorf("telemetry.otlp_endpoint is required when tracing is enabled")
	}
	if _, err := url.Parse(c.OTLPEndpoint); err != nil {
		return fmt.Errorf("invalid telemetry.otlp_endpoint: %w", err)
	}
	if c.SampleRate < 0 || c.SampleRate > 1 {
		return fmt.Errorf("telemetry.sample_rate must be between 0 and 1")
	}
	return nil
}

// newTracerProvider builds the trace pipeline for an enabled config.
func newTracerProvider(ctx context.Context, cfg TelemetryConfig) (*tracesdk.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", app.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	endpoint := strings.TrimPrefix(cfg.OTLPEndpoint, "http://")
	exp, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(endpoint), otlptracehttp.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	return tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exp),
		tracesdk.WithResource(res),
		tracesdk.WithSampler(tracesdk.ParentBased(tracesdk.TraceIDRatioBased(cfg.SampleRate))),
	), nil
}

// initTracing installs the global tracer provider and returns its shutdown.
// A disabled config installs nothing.
func initTracing(ctx context.Context, cfg TelemetryConfig) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}
	tp, err := newTracerProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}
