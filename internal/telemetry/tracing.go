package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ServiceName identifies spans emitted by this program
const ServiceName = "connectn"

// InstrumentationName is the tracer name used by the game driver
const InstrumentationName = "github.com/mcoot/connectn-go"

// Shutdown flushes and stops a tracer provider
type Shutdown func(context.Context) error

// InitTracing installs a tracer provider that writes finished spans as JSON
// to w. A nil writer installs a no-op provider.
func InitTracing(w io.Writer, version string) (trace.Tracer, Shutdown, error) {
	if w == nil {
		return noop.NewTracerProvider().Tracer(InstrumentationName), func(context.Context) error { return nil }, nil
	}

	res, err := newResource(resource.Default(), version)
	if err != nil {
		return nil, nil, err
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Tracer(InstrumentationName), tp.Shutdown, nil
}

// newResource describes this service on top of base. When base uses another
// semconv schema the two cannot be merged and the service attributes alone
// are kept.
func newResource(base *resource.Resource, version string) (*resource.Resource, error) {
	service := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(version),
	)

	res, err := resource.Merge(base, service)
	if errors.Is(err, resource.ErrSchemaURLConflict) {
		return service, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}
