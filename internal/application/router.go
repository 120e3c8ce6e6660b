package application

import (
	"context"

	"linear-mcp-server/internal/domain"
)

// RequestRouter dispatches tool calls to the handler owning each tool
// name. The catalogue is flat, so routing is an exact-name lookup
// built from each handler's advertised tools at construction time.
type RequestRouter struct {
	tools   map[string]domain.ToolHandler
	ordered []domain.ToolDefinition
}

// NewRequestRouter creates a RequestRouter over the provided handlers.
// Tool order in tools/list follows handler registration order.
func NewRequestRouter(handlers ...domain.ToolHandler) *RequestRouter {
	router := &RequestRouter{
		tools: make(map[string]domain.ToolHandler),
	}

	for _, handler := range handlers {
		for _, def := range handler.ListTools() {
			router.tools[def.Name] = handler
			router.ordered = append(router.ordered, def)
		}
	}

	return router
}

// Route dispatches a tool request by exact tool name. An unknown name
// is the single routing failure and surfaces as an error; everything
// else comes back as a ToolResponse from the handler.
func (r *RequestRouter) Route(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	handler, exists := r.tools[req.Name]
	if !exists {
		return nil, domain.NewUnknownToolError(req.Name)
	}

	return handler.Handle(ctx, req)
}

// ListAllTools returns every registered tool descriptor in catalogue
// order, for tools/list.
func (r *RequestRouter) ListAllTools() []domain.ToolDefinition {
	return r.ordered
}

// GetHandler returns the handler registered for a tool name. Used by
// tests.
func (r *RequestRouter) GetHandler(toolName string) (domain.ToolHandler, bool) {
	handler, exists := r.tools[toolName]
	return handler, exists
}
