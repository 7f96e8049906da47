package oiconst

import "go.opentelemetry.io/otel/attribute"

// SpanKind is the value of openinference.span.kind. It is unrelated to the
// OTEL trace.SpanKind which stays untouched on translated spans.
type SpanKind string

const (
	SpanKindLLM       SpanKind = "LLM"
	SpanKindAgent     SpanKind = "AGENT"
	SpanKindTool      SpanKind = "TOOL"
	SpanKindEmbedding SpanKind = "EMBEDDING"
	SpanKindChain     SpanKind = "CHAIN"
	SpanKindRetriever SpanKind = "RETRIEVER"
	SpanKindReranker  SpanKind = "RERANKER"
	SpanKindGuardrail SpanKind = "GUARDRAIL"
	SpanKindEvaluator SpanKind = "EVALUATOR"
)

// FallbackSpanKind is used for operation names that are not in the table.
const FallbackSpanKind = SpanKindChain

var operationKinds = map[string]SpanKind{
	OperationChat:            SpanKindLLM,
	OperationInvokeAgent:     SpanKindAgent,
	OperationExecuteTool:     SpanKindTool,
	OperationEmbeddings:      SpanKindEmbedding,
	OperationFormat:          SpanKindChain,
	OperationGenericFunction: SpanKindChain,
}

// KindForOperation maps a gen_ai.operation.name value to a span kind. It never
// fails: unknown operations are FallbackSpanKind.
func KindForOperation(operation string) SpanKind {
	if kind, ok := operationKinds[operation]; ok {
		return kind
	}
	return FallbackSpanKind
}

func (k SpanKind) String() string { return string(k) }

// Attribute returns the openinference.span.kind attribute for k.
func (k SpanKind) Attribute() attribute.KeyValue { return SpanKindKey.String(string(k)) }
