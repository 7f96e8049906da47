package oitranslate_test

import (
	"testing"

	"github.com/xoplog/oitrace/oiconst"
	"github.com/xoplog/oitrace/oitranslate"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func asMap(kvs []attribute.KeyValue) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value.AsInterface()
	}
	return m
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		name  string
		input []attribute.KeyValue
		want  map[string]interface{}
	}{
		{
			name: "tool-call",
			input: []attribute.KeyValue{
				oiconst.GenAIOperationName.String("execute_tool"),
				oiconst.GenAIToolName.String("search"),
				oiconst.GenAIInputTokens.Int(12),
				oiconst.GenAIOutputTokens.Int(5),
			},
			want: map[string]interface{}{
				"openinference.span.kind":    "TOOL",
				"llm.token_count.prompt":     int64(12),
				"llm.token_count.completion": int64(5),
				"llm.token_count.total":      int64(17),
				"metadata.tool_name":         "search",
			},
		},
		{
			name: "function-input-only",
			input: []attribute.KeyValue{
				oiconst.FunctionInput.String(`{"x":1}`),
			},
			want: map[string]interface{}{
				"input.value":     `{"x":1}`,
				"input.mime_type": "application/json",
			},
		},
		{
			name: "function-output-only",
			input: []attribute.KeyValue{
				oiconst.FunctionOutput.String(`["done"]`),
			},
			want: map[string]interface{}{
				"output.value":     `["done"]`,
				"output.mime_type": "application/json",
			},
		},
		{
			name: "chat",
			input: []attribute.KeyValue{
				oiconst.GenAIOperationName.String("chat"),
				oiconst.GenAIRequestModel.String("qwen-max"),
				oiconst.GenAIProviderName.String("dashscope"),
			},
			want: map[string]interface{}{
				"openinference.span.kind": "LLM",
				"metadata.model":          "qwen-max",
				"metadata.provider":       "dashscope",
			},
		},
		{
			name: "agent",
			input: []attribute.KeyValue{
				oiconst.GenAIOperationName.String("invoke_agent"),
				oiconst.GenAIAgentName.String("Friday"),
				oiconst.GenAIConversationID.String("c-1"),
			},
			want: map[string]interface{}{
				"openinference.span.kind":  "AGENT",
				"metadata.agent_name":      "Friday",
				"metadata.conversation_id": "c-1",
			},
		},
		{
			name: "unknown-operation",
			input: []attribute.KeyValue{
				oiconst.GenAIOperationName.String("summarize"),
			},
			want: map[string]interface{}{
				"openinference.span.kind": "CHAIN",
			},
		},
		{
			name: "input-tokens-only",
			input: []attribute.KeyValue{
				oiconst.GenAIInputTokens.Int(3),
			},
			want: map[string]interface{}{
				"llm.token_count.prompt": int64(3),
			},
		},
		{
			name: "output-tokens-only",
			input: []attribute.KeyValue{
				oiconst.GenAIOutputTokens.Int(4),
			},
			want: map[string]interface{}{
				"llm.token_count.completion": int64(4),
			},
		},
		{
			name: "zero-tokens-count",
			input: []attribute.KeyValue{
				oiconst.GenAIInputTokens.Int(0),
				oiconst.GenAIOutputTokens.Int(0),
			},
			want: map[string]interface{}{
				"llm.token_count.prompt":     int64(0),
				"llm.token_count.completion": int64(0),
				"llm.token_count.total":      int64(0),
			},
		},
		{
			name: "mixed-number-tokens",
			input: []attribute.KeyValue{
				oiconst.GenAIInputTokens.Float64(1.5),
				oiconst.GenAIOutputTokens.Int(2),
			},
			want: map[string]interface{}{
				"llm.token_count.prompt":     1.5,
				"llm.token_count.completion": int64(2),
				"llm.token_count.total":      3.5,
			},
		},
		{
			name: "non-numeric-tokens-have-no-total",
			input: []attribute.KeyValue{
				oiconst.GenAIInputTokens.String("many"),
				oiconst.GenAIOutputTokens.Int(2),
			},
			want: map[string]interface{}{
				"llm.token_count.prompt":     "many",
				"llm.token_count.completion": int64(2),
			},
		},
		{
			name: "empty-strings-are-absent",
			input: []attribute.KeyValue{
				oiconst.GenAIOperationName.String(""),
				oiconst.FunctionInput.String(""),
				oiconst.GenAIToolName.String(""),
			},
			want: map[string]interface{}{},
		},
		{
			name: "payload-passes-through-opaque",
			input: []attribute.KeyValue{
				oiconst.FunctionInput.StringSlice([]string{"a", "b"}),
				oiconst.FunctionOutput.Int(7),
			},
			want: map[string]interface{}{
				"input.value":      []string{"a", "b"},
				"input.mime_type":  "application/json",
				"output.value":     int64(7),
				"output.mime_type": "application/json",
			},
		},
		{
			name: "unrelated-keys-ignored",
			input: []attribute.KeyValue{
				attribute.String("http.method", "GET"),
				attribute.String("metadata.model", "user-set"),
			},
			want: map[string]interface{}{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := oitranslate.Translate(tc.input)
			if diff := cmp.Diff(tc.want, asMap(got)); diff != "" {
				t.Errorf("translate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTranslateEmpty(t *testing.T) {
	assert.Nil(t, oitranslate.Translate(nil))
	assert.Nil(t, oitranslate.Translate([]attribute.KeyValue{}))
	assert.Empty(t, oitranslate.Translate([]attribute.KeyValue{attribute.Int("retries", 2)}))
}

func TestTranslateNoSpanKindWithoutOperation(t *testing.T) {
	got := oitranslate.Translate([]attribute.KeyValue{
		oiconst.GenAIInputTokens.Int(1),
		oiconst.GenAIToolName.String("calc"),
	})
	for _, kv := range got {
		assert.NotEqual(t, oiconst.SpanKindKey, kv.Key)
	}
}

func TestTranslateTotal(t *testing.T) {
	for _, pair := range [][2]int64{{0, 0}, {1, 2}, {1000, 1}, {-3, 3}, {1 << 40, 1 << 40}} {
		got := asMap(oitranslate.Translate([]attribute.KeyValue{
			oiconst.GenAIInputTokens.Int64(pair[0]),
			oiconst.GenAIOutputTokens.Int64(pair[1]),
		}))
		assert.Equal(t, pair[0]+pair[1], got["llm.token_count.total"], "%v", pair)
	}
}

func TestTranslateDeterministic(t *testing.T) {
	input := []attribute.KeyValue{
		oiconst.GenAIConversationID.String("c"),
		oiconst.GenAIOperationName.String("chat"),
		oiconst.FunctionOutput.String("{}"),
		oiconst.GenAIOutputTokens.Int(9),
		oiconst.GenAIInputTokens.Int(1),
	}
	first := oitranslate.Translate(input)
	second := oitranslate.Translate(input)
	assert.Equal(t, first, second)
	keys := make([]attribute.Key, len(first))
	for i, kv := range first {
		keys[i] = kv.Key
	}
	assert.Equal(t, []attribute.Key{
		oiconst.SpanKindKey,
		oiconst.TokenCountPrompt,
		oiconst.TokenCountCompletion,
		oiconst.TokenCountTotal,
		oiconst.OutputValue,
		oiconst.OutputMIMEType,
		oiconst.MetadataConversationID,
	}, keys)
}

func TestTranslateStableOnMergedAttributes(t *testing.T) {
	input := []attribute.KeyValue{
		oiconst.GenAIOperationName.String("chat"),
		oiconst.GenAIInputTokens.Int(10),
		oiconst.GenAIOutputTokens.Int(20),
		oiconst.FunctionInput.String(`{"q":"hi"}`),
		oiconst.GenAIRequestModel.String("m"),
		attribute.String("other", "x"),
	}
	once := oitranslate.Translate(input)
	merged := oitranslate.Merge(input, once)
	twice := oitranslate.Translate(merged)
	if diff := cmp.Diff(asMap(once), asMap(twice)); diff != "" {
		t.Errorf("re-translation changed (-once +twice):\n%s", diff)
	}
}

func TestOutputKeysAreNotSourceKeys(t *testing.T) {
	source := make(map[attribute.Key]bool)
	for _, k := range oitranslate.SourceKeys() {
		source[k] = true
	}
	all := oitranslate.Translate([]attribute.KeyValue{
		oiconst.GenAIOperationName.String("chat"),
		oiconst.GenAIInputTokens.Int(1),
		oiconst.GenAIOutputTokens.Int(1),
		oiconst.FunctionInput.String("i"),
		oiconst.FunctionOutput.String("o"),
		oiconst.GenAIRequestModel.String("m"),
		oiconst.GenAIProviderName.String("p"),
		oiconst.GenAIAgentName.String("a"),
		oiconst.GenAIToolName.String("t"),
		oiconst.GenAIConversationID.String("c"),
	})
	require.Len(t, all, 13)
	for _, kv := range all {
		assert.False(t, source[kv.Key], "%s", kv.Key)
	}
}

func TestMerge(t *testing.T) {
	original := []attribute.KeyValue{
		attribute.String("a", "1"),
		oiconst.SpanKindKey.String("USER"),
		attribute.String("b", "2"),
	}
	before := append([]attribute.KeyValue(nil), original...)
	extra := []attribute.KeyValue{
		oiconst.SpanKindKey.String("LLM"),
		oiconst.MetadataModel.String("m"),
	}
	merged := oitranslate.Merge(original, extra)
	assert.Equal(t, []attribute.KeyValue{
		attribute.String("a", "1"),
		attribute.String("b", "2"),
		oiconst.SpanKindKey.String("LLM"),
		oiconst.MetadataModel.String("m"),
	}, merged)
	assert.Equal(t, before, original, "original must not change")

	assert.Equal(t, original, oitranslate.Merge(original, nil))
}
