/*
Package oitranslate derives OpenInference attributes from GenAI attributes.

Translate is pure: it reads a fixed set of keys, never fails, and returns
only the attributes to add. An empty result means the span needs no
translation.
*/
package oitranslate

import (
	"github.com/xoplog/oitrace/oiconst"

	"go.opentelemetry.io/otel/attribute"
)

var sourceKeys = []attribute.Key{
	oiconst.GenAIOperationName,
	oiconst.GenAIInputTokens,
	oiconst.GenAIOutputTokens,
	oiconst.FunctionInput,
	oiconst.FunctionOutput,
	oiconst.GenAIRequestModel,
	oiconst.GenAIProviderName,
	oiconst.GenAIAgentName,
	oiconst.GenAIToolName,
	oiconst.GenAIConversationID,
}

var metadataKeys = []struct {
	from attribute.Key
	to   attribute.Key
}{
	{oiconst.GenAIRequestModel, oiconst.MetadataModel},
	{oiconst.GenAIProviderName, oiconst.MetadataProvider},
	{oiconst.GenAIAgentName, oiconst.MetadataAgentName},
	{oiconst.GenAIToolName, oiconst.MetadataToolName},
	{oiconst.GenAIConversationID, oiconst.MetadataConversationID},
}

// SourceKeys lists every key that Translate reads. Nothing else in the input
// is looked at.
func SourceKeys() []attribute.Key {
	keys := make([]attribute.Key, len(sourceKeys))
	copy(keys, sourceKeys)
	return keys
}

// Translate returns the OpenInference attributes implied by attrs. The
// result is in a fixed order: span kind, token counts, input, output,
// metadata. Keys that are absent in attrs produce nothing; no defaults are
// invented.
func Translate(attrs []attribute.KeyValue) []attribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	src := make(map[attribute.Key]attribute.Value, len(sourceKeys))
	for _, kv := range attrs {
		switch kv.Key {
		case oiconst.GenAIOperationName, oiconst.GenAIInputTokens, oiconst.GenAIOutputTokens,
			oiconst.FunctionInput, oiconst.FunctionOutput, oiconst.GenAIRequestModel,
			oiconst.GenAIProviderName, oiconst.GenAIAgentName, oiconst.GenAIToolName,
			oiconst.GenAIConversationID:
			src[kv.Key] = kv.Value
		}
	}
	if len(src) == 0 {
		return nil
	}

	var out []attribute.KeyValue

	if op, ok := src[oiconst.GenAIOperationName]; ok && !isEmpty(op) {
		out = append(out, oiconst.KindForOperation(asString(op)).Attribute())
	}

	// zero is a real token count so only a missing value is skipped here
	input, hasInput := src[oiconst.GenAIInputTokens]
	hasInput = hasInput && input.Type() != attribute.INVALID
	output, hasOutput := src[oiconst.GenAIOutputTokens]
	hasOutput = hasOutput && output.Type() != attribute.INVALID
	if hasInput {
		out = append(out, attribute.KeyValue{Key: oiconst.TokenCountPrompt, Value: input})
	}
	if hasOutput {
		out = append(out, attribute.KeyValue{Key: oiconst.TokenCountCompletion, Value: output})
	}
	if hasInput && hasOutput {
		if total, ok := sum(input, output); ok {
			out = append(out, attribute.KeyValue{Key: oiconst.TokenCountTotal, Value: total})
		}
	}

	if v, ok := src[oiconst.FunctionInput]; ok && !isEmpty(v) {
		out = append(out,
			attribute.KeyValue{Key: oiconst.InputValue, Value: v},
			oiconst.InputMIMEType.String(oiconst.MIMEJSON))
	}
	if v, ok := src[oiconst.FunctionOutput]; ok && !isEmpty(v) {
		out = append(out,
			attribute.KeyValue{Key: oiconst.OutputValue, Value: v},
			oiconst.OutputMIMEType.String(oiconst.MIMEJSON))
	}

	for _, m := range metadataKeys {
		if v, ok := src[m.from]; ok && !isEmpty(v) {
			out = append(out, attribute.KeyValue{Key: m.to, Value: v})
		}
	}
	return out
}

// Merge overlays extra onto original. When a key is in both, the value from
// extra wins and the original entry is dropped so that each key appears
// once. original is not modified.
func Merge(original []attribute.KeyValue, extra []attribute.KeyValue) []attribute.KeyValue {
	if len(extra) == 0 {
		return original
	}
	override := make(map[attribute.Key]struct{}, len(extra))
	for _, kv := range extra {
		override[kv.Key] = struct{}{}
	}
	merged := make([]attribute.KeyValue, 0, len(original)+len(extra))
	for _, kv := range original {
		if _, ok := override[kv.Key]; ok {
			continue
		}
		merged = append(merged, kv)
	}
	return append(merged, extra...)
}
