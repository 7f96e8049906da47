package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/xoplog/oitrace/oiconst"
	"github.com/xoplog/oitrace/oiotel/oioteltest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

// dumpSpans records two spans and returns them as stdouttrace writes them.
func dumpSpans(t *testing.T) []byte {
	var buf bytes.Buffer
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(&buf))
	require.NoError(t, err)
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	tracer := tracerProvider.Tracer("dump")

	_, span := tracer.Start(context.Background(), "chat")
	span.SetAttributes(
		oiconst.GenAIOperationName.String("chat"),
		oiconst.GenAIRequestModel.String("gpt-4o"),
		oiconst.GenAIInputTokens.Int(10),
		oiconst.GenAIOutputTokens.Int(4),
	)
	span.End()
	_, span = tracer.Start(context.Background(), "plain")
	span.SetAttributes(attribute.String("http.method", "GET"))
	span.End()

	require.NoError(t, tracerProvider.Shutdown(context.Background()))
	return buf.Bytes()
}

func attributeMap(kvs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range kvs {
		m[kv.Key] = kv.Value
	}
	return m
}

func checkTranslated(t *testing.T, out []byte) {
	stubs, err := oioteltest.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Len(t, stubs, 2)

	chat := attributeMap(stubs[0].Attributes)
	assert.Equal(t, "chat", stubs[0].Name)
	assert.Equal(t, "LLM", chat[oiconst.SpanKindKey].AsString())
	assert.Equal(t, int64(14), chat[oiconst.TokenCountTotal].AsInt64())
	assert.Equal(t, "gpt-4o", chat[oiconst.MetadataModel].AsString())
	assert.Equal(t, "gpt-4o", chat[oiconst.GenAIRequestModel].AsString())

	plain := attributeMap(stubs[1].Attributes)
	assert.NotContains(t, plain, oiconst.SpanKindKey)
	assert.Equal(t, "GET", plain["http.method"].AsString())
}

func TestTranslate(t *testing.T) {
	var out bytes.Buffer
	sink, err := stdouttrace.New(stdouttrace.WithWriter(&out))
	require.NoError(t, err)
	require.NoError(t, translate(context.Background(), bytes.NewReader(dumpSpans(t)), sink, zap.NewNop()))
	checkTranslated(t, out.Bytes())
}

func TestTranslateEmpty(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	assert.NoError(t, translate(context.Background(), bytes.NewReader(nil), exporter, zap.NewNop()))
	assert.Empty(t, exporter.GetSpans())
}

func TestTranslateBadInput(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	assert.Error(t, translate(context.Background(), bytes.NewBufferString("{"), exporter, zap.NewNop()))
}

func TestTranslateCommandStdin(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetIn(bytes.NewReader(dumpSpans(t)))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"translate", "--pretty"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "\n\t")
	checkTranslated(t, out.Bytes())
}

func TestTranslateCommandFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spans.json")
	require.NoError(t, os.WriteFile(path, dumpSpans(t), 0o600))
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"translate", path})
	require.NoError(t, cmd.Execute())
	checkTranslated(t, out.Bytes())

	cmd = newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"translate", filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, cmd.Execute())
}
