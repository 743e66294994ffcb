package env

import (
	"time"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/constraint"
)

// cell holds the mutable resolution state of a single field.
type cell struct {
	spec     *FieldSpec
	value    any
	source   Source
	resolved bool
}

// String resolves the named field and coerces it to a string. A nil value
// resolves to "".
func (e *Env) String(name string) (string, error) {
	v, err := e.Get(name)
	if err != nil || v == nil {
		return "", err
	}
	s, cerr := constraint.ToString(v)
	if cerr != nil {
		return "", e.coercionError(name, cerr)
	}
	return s, nil
}

// Int64 resolves the named field and coerces it to an int64. A nil value
// resolves to 0.
func (e *Env) Int64(name string) (int64, error) {
	v, err := e.Get(name)
	if err != nil || v == nil {
		return 0, err
	}
	n, cerr := constraint.ToInt64(v)
	if cerr != nil {
		return 0, e.coercionError(name, cerr)
	}
	return n, nil
}

// Float64 resolves the named field and coerces it to a float64. A nil value
// resolves to 0.
func (e *Env) Float64(name string) (float64, error) {
	v, err := e.Get(name)
	if err != nil || v == nil {
		return 0, err
	}
	f, cerr := constraint.ToFloat64(v)
	if cerr != nil {
		return 0, e.coercionError(name, cerr)
	}
	return f, nil
}

// Bool resolves the named field and coerces it to a bool. A nil value
// resolves to false.
func (e *Env) Bool(name string) (bool, error) {
	v, err := e.Get(name)
	if err != nil || v == nil {
		return false, err
	}
	b, cerr := constraint.ToBool(v)
	if cerr != nil {
		return false, e.coercionError(name, cerr)
	}
	return b, nil
}

// Duration resolves the named field and coerces it to a time.Duration. A
// nil value resolves to 0.
func (e *Env) Duration(name string) (time.Duration, error) {
	v, err := e.Get(name)
	if err != nil || v == nil {
		return 0, err
	}
	d, cerr := constraint.ToDuration(v)
	if cerr != nil {
		return 0, e.coercionError(name, cerr)
	}
	return d, nil
}

// coercionError wraps a typed-accessor coercion failure as a single-field
// validation error.
func (e *Env) coercionError(name string, err error) error {
	return singleFieldViolation(e.name, name, []constraint.Violation{{
		Rule:    constraint.RuleType,
		Message: err.Error(),
	}})
}
