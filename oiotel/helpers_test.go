package oiotel_test

import (
	"context"
	"sync"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// recordingExporter keeps every batch it is given exactly as given.
type recordingExporter struct {
	lock      sync.Mutex
	batches   [][]sdktrace.ReadOnlySpan
	err       error
	shutdowns int
	flushes   int
}

func (r *recordingExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.batches = append(r.batches, spans)
	return r.err
}

func (r *recordingExporter) Shutdown(context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.shutdowns++
	return r.err
}

func (r *recordingExporter) ForceFlush(context.Context) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.flushes++
	return r.err
}

func (r *recordingExporter) Spans() []sdktrace.ReadOnlySpan {
	r.lock.Lock()
	defer r.lock.Unlock()
	var all []sdktrace.ReadOnlySpan
	for _, batch := range r.batches {
		all = append(all, batch...)
	}
	return all
}

// exportOnly has no ForceFlush.
type exportOnly struct {
	sdktrace.SpanExporter
}

// makeSpans records one ended span per attribute list using a real SDK
// provider.
func makeSpans(t *testing.T, attrs ...[]attribute.KeyValue) []sdktrace.ReadOnlySpan {
	recorder := tracetest.NewSpanRecorder()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	defer func() {
		_ = tracerProvider.Shutdown(context.Background())
	}()
	tracer := tracerProvider.Tracer("oiotel-test")
	for i, a := range attrs {
		_, span := tracer.Start(context.Background(), spanName(i))
		span.SetAttributes(a...)
		span.AddEvent("an-event")
		span.End()
	}
	return recorder.Ended()
}

func spanName(i int) string {
	return "span-" + string(rune('a'+i))
}

func attributeMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(kvs))
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}
