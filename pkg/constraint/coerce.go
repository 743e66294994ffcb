package constraint

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Type identifies the coercion applied to a field value before its rules run.
type Type string

const (
	// TypeAny performs no coercion. Fields of this type accept any value,
	// and only string-shaped rules apply when the value happens to be a
	// string.
	TypeAny Type = ""

	// TypeString coerces to string.
	TypeString Type = "string"

	// TypeInt coerces to int64. Decimal strings and integral floats are
	// accepted.
	TypeInt Type = "int"

	// TypeFloat coerces to float64.
	TypeFloat Type = "float"

	// TypeBool coerces to bool. Accepted string forms: true/false, t/f,
	// 1/0, yes/no, y/n, on/off (case-insensitive).
	TypeBool Type = "bool"

	// TypeDuration coerces to time.Duration from Go duration strings such
	// as "30s" or "1h30m".
	TypeDuration Type = "duration"
)

// ParseType maps a manifest type name to a Type. The empty string maps to
// TypeAny.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return TypeAny, nil
	case "string", "str":
		return TypeString, nil
	case "int", "integer":
		return TypeInt, nil
	case "float", "number":
		return TypeFloat, nil
	case "bool", "boolean":
		return TypeBool, nil
	case "duration":
		return TypeDuration, nil
	default:
		return TypeAny, fmt.Errorf("unknown type %q", s)
	}
}

// Coerce converts candidate to t's canonical Go representation:
// TypeString→string, TypeInt→int64, TypeFloat→float64, TypeBool→bool,
// TypeDuration→time.Duration. TypeAny returns candidate untouched. A nil
// candidate stays nil for every type.
func Coerce(t Type, candidate any) (any, error) {
	if candidate == nil {
		return nil, nil
	}
	switch t {
	case TypeAny:
		return candidate, nil
	case TypeString:
		return ToString(candidate)
	case TypeInt:
		return ToInt64(candidate)
	case TypeFloat:
		return ToFloat64(candidate)
	case TypeBool:
		return ToBool(candidate)
	case TypeDuration:
		return ToDuration(candidate)
	default:
		return nil, fmt.Errorf("unknown type %q", string(t))
	}
}

// ToString coerces scalar values to their string form.
func ToString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case bool:
		return strconv.FormatBool(x), nil
	case int:
		return strconv.Itoa(x), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), nil
	case time.Duration:
		return x.String(), nil
	default:
		return "", fmt.Errorf("value %v is not a valid string", v)
	}
}

// ToInt64 coerces decimal strings, ints and integral floats to int64.
func ToInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("value %v is not a valid integer", v)
		}
		return int64(x), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a valid integer", x)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("value %v is not a valid integer", v)
	}
}

// ToFloat64 coerces numeric strings, ints and floats to float64.
func ToFloat64(v any) (float64, error) {
	switch x := v.(type) {
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case float64:
		return x, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not a valid float", x)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("value %v is not a valid float", v)
	}
}

// ToBool coerces common boolean spellings to bool.
func ToBool(v any) (bool, error) {
	switch x := v.(type) {
	case bool:
		return x, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "1", "t", "true", "yes", "y", "on":
			return true, nil
		case "0", "f", "false", "no", "n", "off":
			return false, nil
		default:
			return false, fmt.Errorf("value %q is not a valid boolean", x)
		}
	default:
		return false, fmt.Errorf("value %v is not a valid boolean", v)
	}
}

// ToDuration coerces Go duration strings to time.Duration.
func ToDuration(v any) (time.Duration, error) {
	switch x := v.(type) {
	case time.Duration:
		return x, nil
	case string:
		d, err := time.ParseDuration(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("value %q is not a valid duration", x)
		}
		return d, nil
	default:
		return 0, fmt.Errorf("value %v is not a valid duration", v)
	}
}

// FormatValue renders a resolved value the way an env file would carry it.
// Nil renders as the empty string.
func FormatValue(v any) string {
	if v == nil {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Duration:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
