/*
Package oiotel rewrites GenAI spans into OpenInference spans on their way out
of the OpenTelemetry SDK.

Nothing about a span changes except its attributes, and those are only
added to: the recorded span is left alone and a thin view with the merged
attributes is handed to the real exporter instead.

# Exporter

NewExporter wraps any SpanExporter. Each batch is translated span by span
(order and length are kept) and then forwarded in a single call. The
wrapped exporter's error is returned as is.

# Processor

Translation has to happen before spans are queued or sent so NewProcessor
builds the delivery policy around the translating Exporter rather than
around the raw one:

	processor := oiotel.NewProcessor(otlpExporter, oiotel.Buffered,
		oiotel.WithBatchOptions(sdktrace.WithMaxExportBatchSize(256)))
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(processor))

Immediate exports each span from OnEnd using a SimpleSpanProcessor.
Buffered queues spans in a BatchSpanProcessor and exports them from its
background goroutine.
*/
package oiotel
