package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"hdicli/internal/config"
)

const (
	ServiceName = "hdi-report"
	TracerName  = "hdicli"
)

// Tracing holds the tracer used for pipeline stage spans.
// With no trace file configured it hands out a no-op tracer.
type Tracing struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
	file     *os.File
}

// InitializeTracing sets up span export to cfg.TraceFile as pretty-printed JSON
func InitializeTracing(ctx context.Context, cfg config.ObservabilityConfig, logger *slog.Logger) (*Tracing, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.TraceFile == "" {
		return &Tracing{tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.TraceFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}
	file, err := os.Create(cfg.TraceFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(file),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
	)

	// A batch run is short; export spans as they end
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)

	logger.InfoContext(ctx, "Tracing initialized",
		slog.String("trace_file", cfg.TraceFile))

	return &Tracing{
		provider: tp,
		tracer:   tp.Tracer(TracerName, trace.WithInstrumentationVersion(config.AppVersion)),
		file:     file,
	}, nil
}

// StartStage opens a span for a pipeline stage
func (t *Tracing) StartStage(ctx context.Context, stage string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("stage", stage))
	if traceID := GetTraceID(ctx); traceID != "" {
		attrs = append(attrs, attribute.String("run.id", traceID))
	}
	return t.tracer.Start(ctx, stage, trace.WithAttributes(attrs...))
}

// EndStage records err on span, if any, and ends it
func EndStage(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Shutdown flushes spans and closes the trace file
func (t *Tracing) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	err := t.provider.Shutdown(ctx)
	if cerr := t.file.Close(); err == nil {
		err = cerr
	}
	return err
}
