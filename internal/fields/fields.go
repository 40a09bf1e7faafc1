// Package fields provides string rendering and membership tests for record
// field values, which may be strings, numbers, booleans, or small arrays.
package fields

import (
	"strconv"
	"strings"
)

// String renders a field value for text matching and display. Numeric values
// use their shortest decimal representation, arrays join their elements with
// a single space, and nil renders as the empty string.
func String(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case []string:
		return strings.Join(val, " ")
	case []any:
		parts := make([]string, 0, len(val))
		for _, elem := range val {
			parts = append(parts, String(elem))
		}
		return strings.Join(parts, " ")
	default:
		return ""
	}
}

// Matches reports whether a field value satisfies a discrete filter value.
// Scalar fields match by exact string representation; array fields match by
// membership, not by string equality of the whole array.
func Matches(v any, want string) bool {
	switch val := v.(type) {
	case []string:
		for _, elem := range val {
			if elem == want {
				return true
			}
		}
		return false
	case []any:
		for _, elem := range val {
			if String(elem) == want {
				return true
			}
		}
		return false
	default:
		return String(v) == want
	}
}
