package tracing

import (
	"context"
	"os"
	"strings"
	"sync"
	"time"

	"nanobanana-go/internal/version"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const defaultServiceName = "nanobanana-go"

// Options controls the OTLP exporter. Empty fields fall back to the standard
// OTEL_EXPORTER_OTLP_* environment variables.
type Options struct {
	ServiceName string
	Endpoint    string
	Insecure    *bool
}

var (
	mu             sync.Mutex
	tracerProvider *sdktrace.TracerProvider
	serviceName    = defaultServiceName
)

func noopShutdown(context.Context) error { return nil }

// Init configures OpenTelemetry tracing when an OTLP endpoint is known.
// Without one the global no-op provider stays in place. The returned
// function flushes and stops the exporter.
func Init(ctx context.Context, opts ...Options) (func(context.Context) error, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	endpoint := strings.TrimSpace(o.Endpoint)
	if endpoint == "" {
		endpoint = strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	}
	if endpoint == "" {
		return noopShutdown, nil
	}

	mu.Lock()
	defer mu.Unlock()
	if tracerProvider != nil {
		return tracerProvider.Shutdown, nil
	}
	if name := strings.TrimSpace(o.ServiceName); name != "" {
		serviceName = name
	}

	exporterOpts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if insecure(o.Insecure) {
		exporterOpts = append(exporterOpts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, exporterOpts...)
	if err != nil {
		return noopShutdown, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", version.Version),
			attribute.String("service.instance.id", hostname()),
		),
		resource.WithProcess(),
		resource.WithTelemetrySDK(),
		resource.WithFromEnv(),
	)
	if err != nil {
		return noopShutdown, err
	}

	tracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	return tracerProvider.Shutdown, nil
}

func insecure(flag *bool) bool {
	if flag != nil {
		return *flag
	}
	v := strings.TrimSpace(os.Getenv("OTEL_EXPORTER_OTLP_INSECURE"))
	return v == "" || strings.EqualFold(v, "true") || v == "1"
}

// Tracer returns a named tracer from the global provider.
func Tracer(component string) trace.Tracer {
	mu.Lock()
	name := serviceName
	mu.Unlock()
	if c := strings.TrimSpace(component); c != "" {
		name = name + "/" + c
	}
	return otel.Tracer(name)
}

// StartSpan is a convenience wrapper around Tracer(component).Start.
func StartSpan(ctx context.Context, component, spanName string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer(component).Start(ctx, spanName, opts...)
}

func hostname() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "unknown"
}
