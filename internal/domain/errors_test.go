package domain

import (
	"errors"
	"fmt"
	"testing"
)

// TestToolError_MessageFormat tests that every error renders the
// uniform "<source> error: <message>" form.
func TestToolError_MessageFormat(t *testing.T) {
	testCases := []struct {
		name     string
		err      *ToolError
		expected string
	}{
		{
			name:     "missing single field",
			err:      NewMissingFieldError("team_id"),
			expected: "validation error: missing required parameter: team_id",
		},
		{
			name:     "missing multiple fields",
			err:      NewMissingFieldError("team_id", "title"),
			expected: "validation error: missing required parameters: team_id, title",
		},
		{
			name:     "invalid field type",
			err:      NewInvalidFieldError("first", "an integer"),
			expected: "validation error: parameter first must be an integer",
		},
		{
			name:     "entity not found",
			err:      NewNotFoundError("issue", "LIN-404"),
			expected: "linear error: issue not found: LIN-404",
		},
		{
			name:     "unknown tool",
			err:      NewUnknownToolError("delete_workspace"),
			expected: "dispatch error: unknown tool: delete_workspace",
		},
		{
			name:     "API failure",
			err:      NewAPIError(fmt.Errorf("connection refused")),
			expected: "linear error: connection refused",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.err.Error(); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

// TestToolError_Kinds tests that constructors assign the right kind.
func TestToolError_Kinds(t *testing.T) {
	if k := NewMissingFieldError("id").Kind; k != MissingRequiredField {
		t.Errorf("expected MissingRequiredField, got %v", k)
	}
	if k := NewInvalidFieldError("id", "a string").Kind; k != MissingRequiredField {
		t.Errorf("expected MissingRequiredField, got %v", k)
	}
	if k := NewNotFoundError("team", "t1").Kind; k != EntityNotFound {
		t.Errorf("expected EntityNotFound, got %v", k)
	}
	if k := NewUnknownToolError("x").Kind; k != UnknownTool {
		t.Errorf("expected UnknownTool, got %v", k)
	}
	if k := NewAPIError(errors.New("boom")).Kind; k != ExternalAPIFailure {
		t.Errorf("expected ExternalAPIFailure, got %v", k)
	}
}

// TestNotFoundError_CarriesIdentifier tests that the rejected
// identifier always appears in the message.
func TestNotFoundError_CarriesIdentifier(t *testing.T) {
	err := NewNotFoundError("workflow state", "Shipped")
	if got := err.Error(); got != "linear error: workflow state not found: Shipped" {
		t.Errorf("identifier missing from message: %q", got)
	}
}

// TestKindOf tests kind extraction through wrapping.
func TestKindOf(t *testing.T) {
	base := NewNotFoundError("project", "p1")
	wrapped := fmt.Errorf("while resolving lead: %w", base)

	if k := KindOf(base); k != EntityNotFound {
		t.Errorf("expected EntityNotFound, got %v", k)
	}
	if k := KindOf(wrapped); k != EntityNotFound {
		t.Errorf("expected EntityNotFound through wrapping, got %v", k)
	}
	if k := KindOf(errors.New("plain")); k != ExternalAPIFailure {
		t.Errorf("expected ExternalAPIFailure for foreign error, got %v", k)
	}
}

// TestAsToolError tests normalization of foreign errors.
func TestAsToolError(t *testing.T) {
	te := AsToolError(errors.New("dial tcp: timeout"))
	if te.Kind != ExternalAPIFailure {
		t.Errorf("expected ExternalAPIFailure, got %v", te.Kind)
	}
	if te.Source != "linear" {
		t.Errorf("expected source 'linear', got %q", te.Source)
	}

	original := NewUnknownToolError("nope")
	if got := AsToolError(original); got != original {
		t.Error("existing ToolError should pass through unchanged")
	}
}

// TestToolError_Unwrap tests that the cause survives for errors.Is.
func TestToolError_Unwrap(t *testing.T) {
	cause := errors.New("status 500")
	te := NewAPIError(cause)
	if !errors.Is(te, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

// TestErrorKind_String tests the log names of each kind.
func TestErrorKind_String(t *testing.T) {
	expected := map[ErrorKind]string{
		MissingRequiredField: "missing_required_field",
		EntityNotFound:       "entity_not_found",
		UnknownTool:          "unknown_tool",
		ExternalAPIFailure:   "external_api_failure",
	}
	for kind, name := range expected {
		if kind.String() != name {
			t.Errorf("expected %q, got %q", name, kind.String())
		}
	}
}
