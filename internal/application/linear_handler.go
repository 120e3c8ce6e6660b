package application

import (
	"context"

	"linear-mcp-server/internal/domain"
	"linear-mcp-server/internal/infrastructure"
)

// LinearHandler implements ToolHandler for the whole Linear tool
// catalogue. It binds arguments, runs each tool's resolution plan
// against the Linear client and flattens the results.
//
// Handle is also the error-normalization boundary: every failure from
// binding, the API or flattening is converted into an error-flagged
// content response here. The single exception is an unknown tool
// name, which is returned as an error so the server can report it
// through the JSON-RPC error channel.
type LinearHandler struct {
	client   *infrastructure.LinearClient
	mapper   domain.ResponseMapper
	pageSize int

	definitions map[string]*domain.ToolDefinition
	dispatch    map[string]toolFunc
}

// toolFunc executes one tool's body and returns the flattened record.
type toolFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// NewLinearHandler creates a LinearHandler. pageSize is the list size
// used when a caller does not supply "first".
func NewLinearHandler(client *infrastructure.LinearClient, mapper domain.ResponseMapper, pageSize int) *LinearHandler {
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	h := &LinearHandler{
		client:      client,
		mapper:      mapper,
		pageSize:    pageSize,
		definitions: make(map[string]*domain.ToolDefinition, len(toolCatalogue)),
	}

	for i := range toolCatalogue {
		def := &toolCatalogue[i]
		h.definitions[def.Name] = def
	}

	h.dispatch = map[string]toolFunc{
		ToolCreateIssue:         h.handleCreateIssue,
		ToolListIssues:          h.handleListIssues,
		ToolUpdateIssue:         h.handleUpdateIssue,
		ToolListTeamsAndStates:  h.handleListTeamsAndStates,
		ToolListProjects:        h.handleListProjects,
		ToolSearchIssues:        h.handleSearchIssues,
		ToolGetIssue:            h.handleGetIssue,
		ToolListLabels:          h.handleListLabels,
		ToolCreateLabel:         h.handleCreateLabel,
		ToolUpdateLabel:         h.handleUpdateLabel,
		ToolListTeamMembers:     h.handleListTeamMembers,
		ToolListProjectStates:   h.handleListProjectStates,
		ToolGetProject:          h.handleGetProject,
		ToolCreateProject:       h.handleCreateProject,
		ToolUpdateProject:       h.handleUpdateProject,
		ToolListProjectStatuses: h.handleListProjectStatuses,
	}

	return h
}

// ListTools returns the static tool catalogue in declaration order.
func (h *LinearHandler) ListTools() []domain.ToolDefinition {
	return toolCatalogue
}

// Handle executes a tool call. The returned error is non-nil only for
// unknown tool names.
func (h *LinearHandler) Handle(ctx context.Context, req *domain.ToolRequest) (*domain.ToolResponse, error) {
	def, ok := h.definitions[req.Name]
	if !ok {
		return nil, domain.NewUnknownToolError(req.Name)
	}

	args := req.Arguments
	if args == nil {
		args = map[string]interface{}{}
	}

	// Required-field presence is checked against the catalogue entry
	// itself, so the advertised schema and the enforcement can never
	// drift apart. This runs before any external call.
	if err := checkRequired(args, def.InputSchema.Required); err != nil {
		return h.mapper.MapErrorResponse(err), nil
	}

	result, err := h.dispatch[req.Name](ctx, args)
	if err != nil {
		return h.mapper.MapErrorResponse(err), nil
	}

	resp, err := h.mapper.MapToToolResponse(result)
	if err != nil {
		return h.mapper.MapErrorResponse(err), nil
	}
	return resp, nil
}

// checkRequired reports every required field that is absent or null,
// all in one error.
func checkRequired(args map[string]interface{}, required []string) error {
	var missing []string
	for _, name := range required {
		if value, exists := args[name]; !exists || value == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domain.NewMissingFieldError(missing...)
	}
	return nil
}

// firstParam reads the "first" argument, falling back to the
// configured page size.
func (h *LinearHandler) firstParam(args map[string]interface{}) (int, error) {
	first, set, err := getIntParam(args, "first", false)
	if err != nil {
		return 0, err
	}
	if !set || first <= 0 {
		return h.pageSize, nil
	}
	return first, nil
}
