package domain

import (
	"encoding/json"
	"fmt"
)

// DefaultResponseMapper is the default implementation of
// ResponseMapper. Successful results become a single text block of
// pretty-printed JSON; list results get a trailing pagination hint
// block.
type DefaultResponseMapper struct{}

// NewResponseMapper creates a new DefaultResponseMapper.
func NewResponseMapper() ResponseMapper {
	return &DefaultResponseMapper{}
}

// MapToToolResponse serializes a flattened record as MCP text content.
func (m *DefaultResponseMapper) MapToToolResponse(result interface{}) (*ToolResponse, error) {
	if result == nil {
		return &ToolResponse{
			Content: []ContentBlock{{Type: "text", Text: "{}"}},
		}, nil
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal tool result: %w", err)
	}

	content := []ContentBlock{{Type: "text", Text: string(jsonBytes)}}

	if hint := paginationHint(result); hint != "" {
		content = append(content, ContentBlock{Type: "text", Text: hint})
	}

	return &ToolResponse{Content: content}, nil
}

// Page wraps a list result with the page size that produced it, so
// the response can carry a pagination hint.
type Page struct {
	Items     interface{} `json:"items"`
	Requested int         `json:"-"`
	Count     int         `json:"-"`
}

// paginationHint describes a page when the result is one.
func paginationHint(result interface{}) string {
	page, ok := result.(*Page)
	if !ok {
		return ""
	}
	if page.Count < page.Requested {
		return fmt.Sprintf("\nShowing all %d results", page.Count)
	}
	return fmt.Sprintf("\nShowing first %d results; pass a larger \"first\" to retrieve more", page.Count)
}

// MapErrorResponse renders a failure as an error-flagged content
// response. Every failure kind except UnknownTool is reported this
// way so the calling agent always receives parseable content.
func (m *DefaultResponseMapper) MapErrorResponse(err error) *ToolResponse {
	te := AsToolError(err)
	return &ToolResponse{
		Content: []ContentBlock{{Type: "text", Text: te.Error()}},
		IsError: true,
	}
}

// MapError translates a failure to a JSON-RPC error object. Only
// protocol-level failures reach this path.
func (m *DefaultResponseMapper) MapError(err error) *Error {
	if err == nil {
		return nil
	}

	if rpcErr, ok := err.(*Error); ok {
		return rpcErr
	}

	te := AsToolError(err)
	code := InternalError
	switch te.Kind {
	case UnknownTool:
		code = MethodNotFound
	case MissingRequiredField:
		code = InvalidParams
	case EntityNotFound, ExternalAPIFailure:
		code = APIError
	}

	return &Error{
		Code:    code,
		Message: te.Error(),
		Data:    map[string]interface{}{"kind": te.Kind.String()},
	}
}
