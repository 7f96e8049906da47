package oiotel

import (
	"context"
	"fmt"
	"strings"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// DeliveryMode picks when spans are exported.
type DeliveryMode string

const (
	// Immediate exports every span synchronously from OnEnd.
	Immediate DeliveryMode = "immediate"
	// Buffered queues spans and exports them in batches from a background
	// goroutine.
	Buffered DeliveryMode = "buffered"
)

func ParseDeliveryMode(s string) (DeliveryMode, error) {
	switch DeliveryMode(strings.ToLower(strings.TrimSpace(s))) {
	case Immediate, "simple":
		return Immediate, nil
	case Buffered, "batch":
		return Buffered, nil
	default:
		return "", fmt.Errorf("unknown delivery mode '%s'", s)
	}
}

func (m DeliveryMode) String() string { return string(m) }

func (m DeliveryMode) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

func (m *DeliveryMode) UnmarshalText(b []byte) error {
	mode, err := ParseDeliveryMode(string(b))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

// Set and Type let a DeliveryMode be used as a command line flag.
func (m *DeliveryMode) Set(s string) error { return m.UnmarshalText([]byte(s)) }
func (m *DeliveryMode) Type() string       { return "mode" }

var _ sdktrace.SpanProcessor = &Processor{}

// Processor is a SimpleSpanProcessor or a BatchSpanProcessor whose exporter
// is wrapped with NewExporter. All calls go straight to that processor.
type Processor struct {
	mode      DeliveryMode
	exporter  *Exporter
	processor sdktrace.SpanProcessor
}

// NewProcessor wraps exporter with NewExporter and then builds the delivery
// policy around the wrapped exporter. Any mode other than Buffered is
// Immediate.
func NewProcessor(exporter sdktrace.SpanExporter, mode DeliveryMode, opts ...Option) *Processor {
	c := newConfig(opts)
	p := &Processor{
		exporter: NewExporter(exporter, WithLogger(c.logger)),
	}
	if mode == Buffered {
		p.mode = Buffered
		p.processor = sdktrace.NewBatchSpanProcessor(p.exporter, c.batchOptions...)
	} else {
		p.mode = Immediate
		p.processor = sdktrace.NewSimpleSpanProcessor(p.exporter)
	}
	return p
}

func (p *Processor) Mode() DeliveryMode { return p.mode }

func (p *Processor) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	p.processor.OnStart(parent, s)
}

func (p *Processor) OnEnd(s sdktrace.ReadOnlySpan) {
	p.processor.OnEnd(s)
}

// Shutdown drains any queued spans and shuts down the wrapped exporter.
func (p *Processor) Shutdown(ctx context.Context) error {
	return p.processor.Shutdown(ctx)
}

// ForceFlush exports queued spans. The deadline on ctx bounds the wait; a
// nil return means everything pending was exported.
func (p *Processor) ForceFlush(ctx context.Context) error {
	return p.processor.ForceFlush(ctx)
}
