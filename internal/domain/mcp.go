package domain

// ToolDefinition describes one tool in the advertised catalogue. The
// catalogue is static: name, description and input schema never change
// after startup, and tools/list returns it verbatim.
type ToolDefinition struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	InputSchema JSONSchema `json:"inputSchema"`
}

// ToolRequest is a tools/call invocation: a tool name and an untyped
// argument bag as decoded from JSON.
type ToolRequest struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// ToolResponse is the result of a tool execution. Failures inside the
// dispatch path set IsError and carry the message as text content;
// they are not JSON-RPC errors.
type ToolResponse struct {
	Content []ContentBlock `json:"content"`
	IsError bool           `json:"isError,omitempty"`
}

// ContentBlock is one piece of response content. Every successful tool
// result is a single "text" block holding pretty-printed JSON.
type ContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// JSONSchema describes the accepted argument structure of a tool. The
// Required list is the single source of truth for required-field
// validation; binders derive their checks from it.
type JSONSchema struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Required   []string               `json:"required,omitempty"`
}
