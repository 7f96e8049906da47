package oiconst

import "go.opentelemetry.io/otel/attribute"

// OpenInference keys, as read by Arize Phoenix. These names are the contract
// with the backend and must not change.
// https://github.com/Arize-ai/openinference/blob/main/spec/semantic_conventions.md
const (
	SpanKindKey = attribute.Key("openinference.span.kind")

	InputValue     = attribute.Key("input.value")
	InputMIMEType  = attribute.Key("input.mime_type")
	OutputValue    = attribute.Key("output.value")
	OutputMIMEType = attribute.Key("output.mime_type")

	TokenCountPrompt     = attribute.Key("llm.token_count.prompt")
	TokenCountCompletion = attribute.Key("llm.token_count.completion")
	TokenCountTotal      = attribute.Key("llm.token_count.total")

	MetadataModel          = attribute.Key("metadata.model")
	MetadataProvider       = attribute.Key("metadata.provider")
	MetadataAgentName      = attribute.Key("metadata.agent_name")
	MetadataToolName       = attribute.Key("metadata.tool_name")
	MetadataConversationID = attribute.Key("metadata.conversation_id")
)

// MIMEJSON is attached to input.value and output.value. The payload itself is
// passed through as recorded.
const MIMEJSON = "application/json"

// Phoenix reads the project a span belongs to from this transport header.
const (
	ProjectHeader      = "phoenix-project-name"
	DefaultProjectName = "agentscope"
)
