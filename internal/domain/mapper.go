package domain

// ResponseMapper converts flattened records and failures into MCP tool
// responses. It is the single boundary where errors are rendered: the
// dispatch path hands every failure here and never lets one escape to
// the transport.
type ResponseMapper interface {
	// MapToToolResponse serializes a flattened record as a single
	// pretty-printed JSON text content block.
	MapToToolResponse(result interface{}) (*ToolResponse, error)

	// MapErrorResponse renders a failure as an error-flagged content
	// response carrying the "<source> error: <message>" text.
	MapErrorResponse(err error) *ToolResponse

	// MapError translates a failure to a JSON-RPC error object. Used
	// only for protocol-level failures (unknown tool).
	MapError(err error) *Error
}
