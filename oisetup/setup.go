package oisetup

import (
	"context"
	"sync"

	"github.com/xoplog/oitrace/oiconst"
	"github.com/xoplog/oitrace/oiotel"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	ScopeName = "agentscope"
	Version   = "0.1.0"
)

// setupLock serializes installs of the global TracerProvider.
var setupLock sync.Mutex

// Setup sends traces, untranslated, to endpoint. If the global
// TracerProvider is already an SDK TracerProvider, a BatchSpanProcessor is
// added to it. Otherwise a new TracerProvider is created and installed.
// The TracerProvider that was used is returned.
func Setup(ctx context.Context, endpoint string, opts ...Option) (*sdktrace.TracerProvider, error) {
	o := newOptions(endpoint, opts)
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	exporter, err := o.sink(ctx, o.config.Headers)
	if err != nil {
		return nil, err
	}
	processor := sdktrace.NewBatchSpanProcessor(exporter, o.config.Batch.options()...)

	setupLock.Lock()
	defer setupLock.Unlock()
	if tracerProvider, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); ok {
		tracerProvider.RegisterSpanProcessor(processor)
		o.logger.Info("added span processor to installed tracer provider",
			zap.String("endpoint", o.config.Endpoint))
		return tracerProvider, nil
	}
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(processor))
	otel.SetTracerProvider(tracerProvider)
	o.logger.Info("installed tracer provider", zap.String("endpoint", o.config.Endpoint))
	return tracerProvider, nil
}

// SetupPhoenix sends traces to an Arize Phoenix collector with GenAI
// attributes translated to OpenInference. An empty projectName means the
// configured ProjectName, or "agentscope". The project name becomes the
// service.name resource attribute and the phoenix-project-name header.
//
// A new TracerProvider is always created and installed. Whatever provider
// was installed before, including one from an earlier SetupPhoenix or Setup,
// is replaced without being shut down; its spans no longer reach any
// exporter configured here. Call this once per process.
func SetupPhoenix(ctx context.Context, endpoint string, projectName string, opts ...Option) (*sdktrace.TracerProvider, error) {
	o := newOptions(endpoint, opts)
	if projectName != "" {
		o.config.ProjectName = projectName
	}
	if o.config.ProjectName == "" {
		o.config.ProjectName = oiconst.DefaultProjectName
	}
	if err := o.config.Validate(); err != nil {
		return nil, err
	}
	project := o.config.ProjectName

	res, err := resource.New(ctx,
		resource.WithSchemaURL(semconv.SchemaURL),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(semconv.ServiceName(project)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create resource")
	}
	exporter, err := o.sink(ctx, projectHeaders(o.config, project))
	if err != nil {
		return nil, err
	}
	processor := oiotel.NewProcessor(exporter, o.config.Mode,
		oiotel.WithLogger(o.logger),
		oiotel.WithBatchOptions(o.config.Batch.options()...))
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSpanProcessor(processor),
	)

	setupLock.Lock()
	defer setupLock.Unlock()
	if _, ok := otel.GetTracerProvider().(*sdktrace.TracerProvider); ok {
		o.logger.Warn("replacing installed tracer provider",
			zap.String("project", project))
	}
	otel.SetTracerProvider(tracerProvider)
	o.logger.Info("installed phoenix tracer provider",
		zap.String("endpoint", o.config.Endpoint),
		zap.String("project", project),
		zap.Stringer("mode", processor.Mode()))
	return tracerProvider, nil
}

// Tracer returns the tracer that agent instrumentation uses, from whatever
// TracerProvider is installed when it is called.
func Tracer() oteltrace.Tracer {
	return otel.Tracer(ScopeName, oteltrace.WithInstrumentationVersion(Version))
}
