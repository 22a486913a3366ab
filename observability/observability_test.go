package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("reactived")

	if cfg.ServiceName != "reactived" {
		t.Errorf("expected ServiceName 'reactived', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if !cfg.Insecure {
		t.Error("expected Insecure to be true")
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("reactived")

	if cfg.ServiceName != "reactived" {
		t.Errorf("expected ServiceName 'reactived', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func TestNewMetrics(t *testing.T) {
	meter := noop.NewMeterProvider().Meter("test")
	metrics, err := NewMetrics(meter)
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}
	if metrics == nil {
		t.Fatal("expected non-nil metrics")
	}

	ctx := context.Background()
	metrics.RecordRequestStart(ctx)
	metrics.RecordRequestEnd(ctx, "reactived", "PUT /v1/cells/:name", "ok", 100*time.Millisecond)
	metrics.RecordStreamClient(ctx, 1)
	metrics.RecordBroadcast(ctx, "search", 3)
	metrics.RecordStreamClient(ctx, -1)
	metrics.RecordError(ctx, "validation", "handler")
}

func TestStartSpanRecordsWithExporter(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	ctx, span := StartSpan(context.Background(), SpanCellWrite)
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 exported span, got %d", len(spans))
	}
	if spans[0].Name != SpanCellWrite {
		t.Errorf("expected span name %q, got %q", SpanCellWrite, spans[0].Name)
	}
	if len(spans[0].Events) == 0 {
		t.Error("expected recorded error event on span")
	}
}

func TestSetSpanErrorWithoutSpanIsNoop(t *testing.T) {
	// Must not panic when the context carries no span.
	SetSpanError(context.Background(), errors.New("boom"))
}

func TestSpanFromContext(t *testing.T) {
	span := SpanFromContext(context.Background())
	if span == nil {
		t.Fatal("expected a non-nil (noop) span")
	}
	if span.IsRecording() {
		t.Error("expected non-recording span from empty context")
	}
}
