package application

import (
	"linear-mcp-server/internal/domain"
)

// Argument extraction helpers. Arguments arrive as an untyped bag
// decoded from JSON; these narrow individual fields with type checks
// at the boundary. Required-field presence is enforced separately,
// against the catalogue's required list, before any of these run.

// getStringParam extracts a string parameter. A present non-string
// value is rejected even when the parameter is optional.
func getStringParam(args map[string]interface{}, name string, required bool) (string, error) {
	value, exists := args[name]
	if !exists || value == nil {
		if required {
			return "", domain.NewMissingFieldError(name)
		}
		return "", nil
	}

	strValue, ok := value.(string)
	if !ok {
		return "", domain.NewInvalidFieldError(name, "a string")
	}

	return strValue, nil
}

// getIntParam extracts an integer parameter. JSON numbers decode as
// float64; integral values are accepted, anything else rejected.
func getIntParam(args map[string]interface{}, name string, required bool) (int, bool, error) {
	value, exists := args[name]
	if !exists || value == nil {
		if required {
			return 0, false, domain.NewMissingFieldError(name)
		}
		return 0, false, nil
	}

	switch v := value.(type) {
	case float64:
		if v != float64(int(v)) {
			return 0, false, domain.NewInvalidFieldError(name, "an integer")
		}
		return int(v), true, nil
	case int:
		return v, true, nil
	default:
		return 0, false, domain.NewInvalidFieldError(name, "an integer")
	}
}

// getFloatParam extracts a numeric parameter.
func getFloatParam(args map[string]interface{}, name string) (float64, bool, error) {
	value, exists := args[name]
	if !exists || value == nil {
		return 0, false, nil
	}

	switch v := value.(type) {
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	default:
		return 0, false, domain.NewInvalidFieldError(name, "a number")
	}
}

// getStringSliceParam extracts an array-of-strings parameter.
func getStringSliceParam(args map[string]interface{}, name string, required bool) ([]string, error) {
	value, exists := args[name]
	if !exists || value == nil {
		if required {
			return nil, domain.NewMissingFieldError(name)
		}
		return nil, nil
	}

	raw, ok := value.([]interface{})
	if !ok {
		return nil, domain.NewInvalidFieldError(name, "an array of strings")
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, domain.NewInvalidFieldError(name, "an array of strings")
		}
		out = append(out, s)
	}
	return out, nil
}

// optionalString extracts an optional string parameter, preserving
// the distinction between "key absent" and "key present with a null
// value". Identity defaulting depends on that distinction.
type optionalString struct {
	Present bool   // key appeared in the argument bag
	Null    bool   // key appeared with an explicit null
	Value   string // valid only when Present && !Null
}

// getOptionalString extracts a tri-state optional string.
func getOptionalString(args map[string]interface{}, name string) (optionalString, error) {
	value, exists := args[name]
	if !exists {
		return optionalString{}, nil
	}
	if value == nil {
		return optionalString{Present: true, Null: true}, nil
	}

	strValue, ok := value.(string)
	if !ok {
		return optionalString{}, domain.NewInvalidFieldError(name, "a string or null")
	}
	return optionalString{Present: true, Value: strValue}, nil
}

// stringPtr returns a pointer for an optionally-set string field,
// nil when the argument was absent.
func stringPtr(args map[string]interface{}, name string) (*string, error) {
	value, err := getStringParam(args, name, false)
	if err != nil {
		return nil, err
	}
	if _, exists := args[name]; !exists || args[name] == nil {
		return nil, nil
	}
	return &value, nil
}
