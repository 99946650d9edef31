package domain

import "encoding/json"

// ToolSpec describes a single tool exposed to the MCP host.
// Specs are defined once at startup and never change afterwards.
type ToolSpec struct {
	// Name MUST be unique within the server.
	Name string `json:"name"`

	// Description is the natural language explanation shown to the LLM.
	Description string `json:"description"`

	// InputSchema is the JSON Schema the tool's arguments must satisfy.
	// Kept as raw JSON so it can be handed verbatim to the MCP layer and
	// to the schema compiler.
	InputSchema json.RawMessage `json:"inputSchema"`
}

// Warning records a degraded best-effort resolution (unknown priority,
// unmatched component name, unreachable transition). Warnings ride along
// with the result instead of failing the call.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ToolResult is the successful outcome of one tool invocation.
type ToolResult struct {
	// Payload is the JSON-serializable value returned to the caller.
	Payload any

	// Warnings lists best-effort resolutions that did not succeed.
	Warnings []Warning
}

// NewToolResult wraps a payload with optional warnings.
func NewToolResult(payload any, warnings ...Warning) *ToolResult {
	return &ToolResult{Payload: payload, Warnings: warnings}
}
