// pkg/telemetry/telemetry.go

// Package telemetry records command spans locally. It is off unless
// GLIMPSE_TELEMETRY is set; spans are then appended as JSON lines to a file
// under the user's state directory and never leave the machine.
package telemetry

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/CodeMonkeyCybersecurity/glimpse/pkg/xdg"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	EnvToggle   = "GLIMPSE_TELEMETRY"
	serviceName = "glimpse"
)

var (
	mu       sync.RWMutex
	tracer   trace.Tracer
	shutdown func(context.Context) error
)

// Init configures OpenTelemetry; call this early in main().
func Init(service string) error {
	if !IsEnabled() {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		setTracer(tp.Tracer(service), nil)
		return nil
	}

	path := xdg.XDGStatePath(serviceName, "telemetry.jsonl")
	if err := xdg.EnsureDir(path); err != nil {
		return cerr.Wrap(err, "failed to create telemetry directory")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, xdg.FilePermOwnerReadWrite)
	if err != nil {
		return cerr.Wrap(err, "failed to open telemetry file")
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		_ = file.Close()
		return cerr.Wrap(err, "failed to create file exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", service),
			attribute.String("glimpse.anon_id", AnonTelemetryID()),
		)),
	)
	otel.SetTracerProvider(tp)
	setTracer(tp.Tracer(service), func(ctx context.Context) error {
		err := tp.Shutdown(ctx)
		_ = file.Close()
		return err
	})
	return nil
}

// Shutdown flushes pending spans. Safe to call when telemetry is off.
func Shutdown(ctx context.Context) error {
	mu.RLock()
	fn := shutdown
	mu.RUnlock()
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	mu.RLock()
	t := tracer
	mu.RUnlock()
	if t == nil {
		t = otel.Tracer(serviceName)
	}
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

// IsEnabled reports whether GLIMPSE_TELEMETRY opts in.
func IsEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(EnvToggle))) {
	case "1", "on", "true", "yes":
		return true
	default:
		return false
	}
}

// AnonTelemetryID returns a stable random id stored next to the span file.
func AnonTelemetryID() string {
	path := xdg.XDGStatePath(serviceName, "telemetry_id")

	if data, err := os.ReadFile(path); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}

	id := "anon-" + uuid.New().String()
	if err := xdg.EnsureDir(path); err == nil {
		_ = os.WriteFile(path, []byte(id), xdg.FilePermOwnerReadWrite)
	}
	return id
}

func setTracer(t trace.Tracer, fn func(context.Context) error) {
	mu.Lock()
	defer mu.Unlock()
	tracer = t
	shutdown = fn
}
