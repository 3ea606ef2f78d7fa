package layer

import (
	"fmt"
	"math"
	"strconv"
)

// Value is the outcome of a property lookup.
type Value struct {
	// Raw is the value as stored by the defining scope.
	Raw any

	// Scope names the scope that defined the value.
	Scope string

	// Defined is false when no scope in the stack defines the key.
	Defined bool
}

// Undefined is the result of resolving a key that no scope defines.
// It is distinct from a defined false or zero value.
var Undefined = Value{}

// IsUndefined reports whether no scope defined the key.
func (v Value) IsUndefined() bool {
	return !v.Defined
}

// Bool returns the value as a bool. ok is false when the value is
// undefined or not a boolean.
func (v Value) Bool() (b bool, ok bool) {
	if !v.Defined {
		return false, false
	}
	switch t := v.Raw.(type) {
	case bool:
		return t, true
	case string:
		parsed, err := strconv.ParseBool(t)
		if err != nil {
			return false, false
		}
		return parsed, true
	default:
		return false, false
	}
}

// Enabled reports whether the value is a defined boolean true.
// Undefined keys and defined false both read as disabled.
func (v Value) Enabled() bool {
	b, ok := v.Bool()
	return ok && b
}

// Int returns the value as an int, or def if it is undefined or not numeric.
func (v Value) Int(def int) int {
	if !v.Defined {
		return def
	}
	switch t := v.Raw.(type) {
	case int:
		return t
	case int32:
		return int(t)
	case int64:
		return int(t)
	case uint64:
		if t > math.MaxInt {
			return def
		}
		return int(t)
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(t)
		if err != nil {
			return def
		}
		return n
	default:
		return def
	}
}

// Str returns the value as a string. ok is false for undefined or
// non-string values.
func (v Value) Str() (s string, ok bool) {
	if !v.Defined {
		return "", false
	}
	s, ok = v.Raw.(string)
	return s, ok
}

// String formats the value for diagnostics.
func (v Value) String() string {
	if !v.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%v (from %s)", v.Raw, v.Scope)
}
