package oisetup

import (
	"context"

	"github.com/xoplog/oitrace/oiconst"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"google.golang.org/grpc"
)

const userAgent = "oitrace"

// newSink builds the network exporter. Retries and timeouts are the
// exporter's own.
func newSink(ctx context.Context, config Config, headers map[string]string) (sdktrace.SpanExporter, error) {
	switch config.Protocol {
	case ProtocolGRPC:
		opts := []otlptracegrpc.Option{
			otlptracegrpc.WithEndpointURL(config.Endpoint),
			otlptracegrpc.WithDialOption(grpc.WithUserAgent(userAgent)),
		}
		if len(headers) != 0 {
			opts = append(opts, otlptracegrpc.WithHeaders(headers))
		}
		if config.Insecure {
			opts = append(opts, otlptracegrpc.WithInsecure())
		}
		exporter, err := otlptracegrpc.New(ctx, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "create otlp grpc exporter")
		}
		return exporter, nil
	default:
		opts := []otlptracehttp.Option{
			otlptracehttp.WithEndpointURL(config.Endpoint),
		}
		if len(headers) != 0 {
			opts = append(opts, otlptracehttp.WithHeaders(headers))
		}
		if config.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "create otlp http exporter")
		}
		return exporter, nil
	}
}

func (o options) sink(ctx context.Context, headers map[string]string) (sdktrace.SpanExporter, error) {
	if o.exporter != nil {
		return o.exporter, nil
	}
	return newSink(ctx, o.config, headers)
}

// projectHeaders copies the configured headers and sets the project header.
func projectHeaders(config Config, project string) map[string]string {
	headers := make(map[string]string, len(config.Headers)+1)
	for k, v := range config.Headers {
		headers[k] = v
	}
	headers[oiconst.ProjectHeader] = project
	return headers
}

// NewSink validates config and builds the OTLP exporter it describes,
// with the project header set when config has a ProjectName. Nothing is
// installed globally.
func NewSink(ctx context.Context, config Config) (sdktrace.SpanExporter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	headers := config.Headers
	if config.ProjectName != "" {
		headers = projectHeaders(config, config.ProjectName)
	}
	return newSink(ctx, config, headers)
}
