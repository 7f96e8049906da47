package oiconst

import "go.opentelemetry.io/otel/attribute"

// The GenAI keys come from the OpenTelemetry GenAI semantic conventions
// https://opentelemetry.io/docs/specs/semconv/gen-ai/
// and are what instrumented agent code records.
const (
	GenAIOperationName  = attribute.Key("gen_ai.operation.name")
	GenAIInputTokens    = attribute.Key("gen_ai.usage.input_tokens")
	GenAIOutputTokens   = attribute.Key("gen_ai.usage.output_tokens")
	GenAIRequestModel   = attribute.Key("gen_ai.request.model")
	GenAIProviderName   = attribute.Key("gen_ai.system")
	GenAIAgentName      = attribute.Key("gen_ai.agent.name")
	GenAIToolName       = attribute.Key("gen_ai.tool.name")
	GenAIConversationID = attribute.Key("gen_ai.conversation.id")
)

// AgentScope records the structured arguments and return value of a traced
// function under these keys. The values are usually JSON text.
const (
	FunctionInput  = attribute.Key("agentscope.function.input")
	FunctionOutput = attribute.Key("agentscope.function.output")
)

// Operation names used with GenAIOperationName.
const (
	OperationChat            = "chat"
	OperationInvokeAgent     = "invoke_agent"
	OperationExecuteTool     = "execute_tool"
	OperationEmbeddings      = "embeddings"
	OperationFormat          = "format"
	OperationGenericFunction = "invoke_generic_function"
)
