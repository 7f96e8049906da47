package oiotel

import (
	"context"

	"github.com/muir/list"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

var _ sdktrace.SpanExporter = &Exporter{}

// Exporter translates spans and hands them to another SpanExporter. It keeps
// no state between calls.
type Exporter struct {
	next   sdktrace.SpanExporter
	logger *zap.Logger
}

type flusher interface {
	ForceFlush(context.Context) error
}

// NewExporter wraps next so that GenAI spans reach it with OpenInference
// attributes added.
func NewExporter(next sdktrace.SpanExporter, opts ...Option) *Exporter {
	c := newConfig(opts)
	return &Exporter{
		next:   next,
		logger: c.logger,
	}
}

// ExportSpans forwards one batch, the same length and order as spans, to the
// wrapped exporter and returns its error unchanged. The caller's slice is not
// modified.
func (e *Exporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	n := list.Copy(spans)
	for i, span := range n {
		n[i] = translateSpan(span)
	}
	if err := e.next.ExportSpans(ctx, n); err != nil {
		return err
	}
	for _, span := range n {
		e.logger.Info("exported span",
			zap.String("name", span.Name()),
			zap.Stringer("trace_id", span.SpanContext().TraceID()))
	}
	return nil
}

func (e *Exporter) Shutdown(ctx context.Context) error {
	return e.next.Shutdown(ctx)
}

// ForceFlush flushes the wrapped exporter if it can be flushed. Exporter
// itself never holds spans.
func (e *Exporter) ForceFlush(ctx context.Context) error {
	if f, ok := e.next.(flusher); ok {
		return f.ForceFlush(ctx)
	}
	return nil
}
