// Package convert provides scalar conversion helpers for decoded JSON
// values. The To* functions are lenient and fall back to zero values;
// the *E variants report unconvertible input as an error.
package convert

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ToFloat64 converts various numeric types to float64.
// Returns 0 for unsupported types or parse failures.
func ToFloat64(v any) float64 {
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case int32:
		return float64(t)
	case uint64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f
	default:
		return 0
	}
}

// ToInt64 converts various numeric types to int64, truncating toward
// zero. Returns 0 for unsupported types or parse failures.
func ToInt64(v any) int64 {
	n, err := Int64E(v)
	if err != nil {
		return 0
	}
	return n
}

// ToBool reports truthiness for bools, numbers and boolean strings.
// Returns false for anything else.
func ToBool(v any) bool {
	b, err := BoolE(v)
	if err != nil {
		return false
	}
	return b
}

// ToString formats a scalar value as a string. Numbers are rendered
// without an exponent where possible.
func ToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.FormatInt(int64(t), 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case json.Number:
		return t.String()
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// ToTime converts a time.Time or an ISO-8601 string to time.Time.
// Returns the zero time for anything else.
func ToTime(v any) time.Time {
	t, err := TimeE(v)
	if err != nil {
		return time.Time{}
	}
	return t
}
