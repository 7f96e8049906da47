package oisetup

import (
	"github.com/mohae/deepcopy"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type Option func(*options)

type options struct {
	config   Config
	exporter sdktrace.SpanExporter
	logger   *zap.Logger
}

func newOptions(endpoint string, opts []Option) options {
	o := options{
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if endpoint != "" {
		o.config.Endpoint = endpoint
	}
	if o.logger == nil {
		o.logger = zap.L()
	}
	return o
}

// WithConfig replaces the whole configuration. The config is copied so later
// changes to its Headers map have no effect.
func WithConfig(config Config) Option {
	return func(o *options) {
		o.config = deepcopy.Copy(config).(Config)
	}
}

func WithConfigChanges(mods ...func(*Config)) Option {
	return func(o *options) {
		for _, mod := range mods {
			mod(&o.config)
		}
	}
}

// WithExporter replaces the OTLP exporter that would otherwise be built from
// the configuration. Endpoint and headers are still validated and logged
// but not used.
func WithExporter(exporter sdktrace.SpanExporter) Option {
	return func(o *options) {
		o.exporter = exporter
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}
