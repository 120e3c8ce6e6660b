package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies every failure the dispatch path can produce.
// The set is closed: anything the Linear client returns that is not a
// recognized lookup miss is an ExternalAPIFailure.
type ErrorKind int

const (
	// MissingRequiredField means local argument validation failed
	// before any external call was issued.
	MissingRequiredField ErrorKind = iota
	// EntityNotFound means a lookup for a caller-supplied identifier
	// returned nothing.
	EntityNotFound
	// UnknownTool means the tool name matched no catalogue entry.
	// This is the only kind reported through the JSON-RPC error
	// channel instead of an error-flagged content response.
	UnknownTool
	// ExternalAPIFailure covers every other fault from the Linear
	// API, including network and authorization errors.
	ExternalAPIFailure
)

// String returns the kind's name for logging.
func (k ErrorKind) String() string {
	switch k {
	case MissingRequiredField:
		return "missing_required_field"
	case EntityNotFound:
		return "entity_not_found"
	case UnknownTool:
		return "unknown_tool"
	case ExternalAPIFailure:
		return "external_api_failure"
	default:
		return "unknown"
	}
}

// ToolError is the single error type flowing out of binding, relation
// resolution and flattening. Source names the failing layer
// ("validation", "linear", "dispatch") and is rendered into the
// message the calling agent sees.
type ToolError struct {
	Kind    ErrorKind
	Source  string
	Message string
	Err     error
}

// Error renders the uniform "<source> error: <message>" form.
func (e *ToolError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Source, e.Message)
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *ToolError) Unwrap() error {
	return e.Err
}

// NewMissingFieldError reports absent required arguments by name.
func NewMissingFieldError(fields ...string) *ToolError {
	noun := "parameter"
	if len(fields) > 1 {
		noun = "parameters"
	}
	return &ToolError{
		Kind:    MissingRequiredField,
		Source:  "validation",
		Message: fmt.Sprintf("missing required %s: %s", noun, strings.Join(fields, ", ")),
	}
}

// NewInvalidFieldError reports a present argument with the wrong type.
func NewInvalidFieldError(field, expected string) *ToolError {
	return &ToolError{
		Kind:    MissingRequiredField,
		Source:  "validation",
		Message: fmt.Sprintf("parameter %s must be %s", field, expected),
	}
}

// NewNotFoundError reports a lookup miss for a supplied identifier.
// The identifier is always part of the message so the caller can see
// which reference was rejected.
func NewNotFoundError(entity, id string) *ToolError {
	return &ToolError{
		Kind:    EntityNotFound,
		Source:  "linear",
		Message: fmt.Sprintf("%s not found: %s", entity, id),
	}
}

// NewUnknownToolError reports a tool name with no catalogue entry.
func NewUnknownToolError(name string) *ToolError {
	return &ToolError{
		Kind:    UnknownTool,
		Source:  "dispatch",
		Message: fmt.Sprintf("unknown tool: %s", name),
	}
}

// NewAPIError wraps any other failure from the Linear API.
func NewAPIError(err error) *ToolError {
	return &ToolError{
		Kind:    ExternalAPIFailure,
		Source:  "linear",
		Message: err.Error(),
		Err:     err,
	}
}

// KindOf extracts the error kind from an error chain, defaulting to
// ExternalAPIFailure for foreign errors.
func KindOf(err error) ErrorKind {
	var te *ToolError
	if errors.As(err, &te) {
		return te.Kind
	}
	return ExternalAPIFailure
}

// AsToolError normalizes any error into a ToolError. Foreign errors
// become ExternalAPIFailure attributed to the Linear client, since the
// API boundary is the only place unclassified errors can originate.
func AsToolError(err error) *ToolError {
	var te *ToolError
	if errors.As(err, &te) {
		return te
	}
	return NewAPIError(err)
}
