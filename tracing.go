// OpenTelemetry tracing for hook invocations.
package agenthooks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/darkostanimirovic/agenthooks"

// Tracer records spans around hook invocations. A nil Tracer disables
// tracing entirely.
type Tracer interface {
	// StartSpan opens a span for one hook invocation.
	// The returned function ends the span.
	StartSpan(ctx context.Context, name string, attributes map[string]any) (context.Context, func())

	// Flush ensures all pending spans are exported (important for
	// short-lived applications).
	Flush(ctx context.Context) error
}

// OTelConfig holds configuration for OpenTelemetry tracing over OTLP/HTTP.
type OTelConfig struct {
	// Endpoint is the collector endpoint, with or without a scheme.
	Endpoint string
	// Headers are sent with every export request (auth, tenant routing).
	Headers map[string]string
	// ServiceName identifies the application in traces.
	ServiceName string
	// ServiceVersion tracks the application version.
	ServiceVersion string
	// Environment specifies the deployment environment (production, staging, etc.)
	Environment string
}

// OTelTracer implements Tracer using the OpenTelemetry SDK.
type OTelTracer struct {
	tracer         trace.Tracer
	tracerProvider *sdktrace.TracerProvider
}

// NewOTelTracer creates a tracer exporting to an OTLP/HTTP collector.
func NewOTelTracer(cfg OTelConfig) (*OTelTracer, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("agenthooks: tracing endpoint is required")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "agenthooks-app"
	}

	// Remove scheme prefix to get just host:port
	endpoint := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
	useInsecure := strings.HasPrefix(cfg.Endpoint, "http://")

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(endpoint),
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(cfg.Headers))
	}
	if useInsecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res := resource.NewSchemaless(
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.Environment),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(
		propagation.NewCompositeTextMapPropagator(
			propagation.TraceContext{},
			propagation.Baggage{},
		),
	)

	return &OTelTracer{
		tracer:         tp.Tracer(tracerName),
		tracerProvider: tp,
	}, nil
}

// NewTracerFromProvider wraps an existing provider. Useful when the host
// application already configured OpenTelemetry, and in tests.
func NewTracerFromProvider(tp *sdktrace.TracerProvider) *OTelTracer {
	return &OTelTracer{
		tracer:         tp.Tracer(tracerName),
		tracerProvider: tp,
	}
}

// StartSpan opens a span and sets the given attributes on it.
func (t *OTelTracer) StartSpan(ctx context.Context, name string, attributes map[string]any) (context.Context, func()) {
	spanCtx, span := t.tracer.Start(ctx, name,
		trace.WithTimestamp(time.Now()),
	)
	for k, v := range attributes {
		span.SetAttributes(spanAttribute(k, v))
	}
	return spanCtx, func() { span.End() }
}

// Flush ensures all pending spans are sent.
func (t *OTelTracer) Flush(ctx context.Context) error {
	return t.tracerProvider.ForceFlush(ctx)
}

// Shutdown gracefully shuts down the tracer.
func (t *OTelTracer) Shutdown(ctx context.Context) error {
	return t.tracerProvider.Shutdown(ctx)
}

// spanAttribute converts a value to an OTel attribute, serializing
// structured values to JSON strings.
func spanAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case bool:
		return attribute.Bool(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return attribute.String(key, fmt.Sprintf("%v", v))
		}
		return attribute.String(key, string(data))
	}
}
