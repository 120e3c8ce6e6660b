package domain

import (
	"context"
)

// ToolHandler processes tool calls for a family of tools. The handler
// owns argument binding, external API access and flattening; any
// failure other than an unknown tool name must come back as an
// error-flagged ToolResponse, not as an error.
type ToolHandler interface {
	// Handle executes a tool call. The returned error is non-nil only
	// for unknown tool names, which the server reports through the
	// JSON-RPC error channel.
	Handle(ctx context.Context, req *ToolRequest) (*ToolResponse, error)

	// ListTools returns this handler's tool descriptors in catalogue
	// order.
	ListTools() []ToolDefinition
}
