package oiotel

import (
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type Option func(*config)

type config struct {
	logger       *zap.Logger
	batchOptions []sdktrace.BatchSpanProcessorOption
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = zap.L()
	}
	return c
}

// WithLogger sets where the Exporter reports exported spans. The default is
// zap.L() at the time of construction.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithBatchOptions are passed through to sdktrace.NewBatchSpanProcessor
// when the Processor is Buffered. They are ignored for Immediate.
func WithBatchOptions(opts ...sdktrace.BatchSpanProcessorOption) Option {
	return func(c *config) {
		c.batchOptions = append(c.batchOptions, opts...)
	}
}
