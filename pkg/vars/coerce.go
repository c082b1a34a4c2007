package vars

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Shared primitive-coercion rules. Step records accept either native typed
// values or their string encodings; these helpers are the single place
// that mapping is defined.

// CoerceBool applies the fixed boolean table: true | "true" | 1 | "1" |
// "yes" (case-insensitive) coerce to true, anything else to false.
// Callers handle absent fields with their own documented default.
func CoerceBool(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case int:
		return t == 1
	case int64:
		return t == 1
	case float64:
		return t == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "1", "yes":
			return true
		}
	}
	return false
}

// CoerceInt accepts a native integer, a float with no fractional part,
// or a decimal string.
func CoerceInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case int:
		return t, nil
	case int64:
		return int(t), nil
	case float64:
		if t == float64(int(t)) {
			return int(t), nil
		}
		return 0, fmt.Errorf("value %v is not an integer", t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0, fmt.Errorf("value %q is not an integer", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not an integer", v, v)
	}
}

// CoerceFloat accepts native numerics or a decimal string.
func CoerceFloat(v interface{}) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a number", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value %v (%T) is not a number", v, v)
	}
}

// CoerceSeconds converts a duration field expressed in whole seconds into
// a time.Duration.
func CoerceSeconds(v interface{}) (time.Duration, error) {
	n, err := CoerceInt(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("duration %d must not be negative", n)
	}
	return time.Duration(n) * time.Second, nil
}

// CoerceString renders any primitive record value as a string.
func CoerceString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return Stringify(v)
}
