package constraint

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Rule identifiers carried by violations.
const (
	RuleRequired   = "required"
	RuleType       = "type"
	RuleMinLength  = "min_length"
	RuleMaxLength  = "max_length"
	RuleGT         = "gt"
	RuleGE         = "ge"
	RuleLT         = "lt"
	RuleLE         = "le"
	RuleMultipleOf = "multiple_of"
	RulePattern    = "pattern"
	RuleEnum       = "enum"
)

// Rules is the declarative constraint set for a single field. The zero value
// declares nothing and validates any value.
type Rules struct {
	// Required fails validation when no value resolves for the field.
	// A required field must also declare an explicit Type; see the demotion
	// rule documented on the env package.
	Required bool

	// Type selects the coercion applied to the candidate value before any
	// other rule runs. TypeAny skips coercion entirely.
	Type Type

	// MinLen and MaxLen bound the character length of string values.
	MinLen *int
	MaxLen *int

	// GT, GE, LT and LE bound values coerced via TypeInt or TypeFloat.
	GT *float64
	GE *float64
	LT *float64
	LE *float64

	// MultipleOf requires a value coerced via TypeInt or TypeFloat to be an
	// exact multiple of the given number.
	MultipleOf *float64

	// Pattern is an RE2 regular expression that string values must match.
	Pattern string

	// Enum lists the only values the field may take. It applies to string
	// and int values; other kinds skip it.
	Enum []string
}

// RuleSet is the compiled, immutable form of Rules. Compiling up front means
// a malformed rule declaration fails at schema construction rather than on
// first field access.
type RuleSet struct {
	Rules
	pattern *regexp.Regexp
}

// Compile checks the rule declaration itself and precompiles the pattern.
func (r Rules) Compile() (*RuleSet, error) {
	rs := &RuleSet{Rules: r}
	if r.Pattern != "" {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", r.Pattern, err)
		}
		rs.pattern = re
	}
	return rs, nil
}

// Violation describes a single violated rule.
type Violation struct {
	// Rule is the machine-readable identifier of the violated rule.
	Rule string `json:"rule"`

	// Message is the human-readable description of the violation.
	Message string `json:"message"`
}

// Engine evaluates compiled rule sets against candidate values. Coercion and
// the relational rules are delegated to go-playground/validator tag-style
// variable validation; patterns are matched with the precompiled expression.
type Engine struct {
	validate *validator.Validate
}

// NewEngine creates a rule engine with the multipleof extension registered.
func NewEngine() *Engine {
	v := validator.New()
	v.RegisterValidation("multipleof", validateMultipleOf)
	return &Engine{validate: v}
}

// Validate coerces candidate according to the rule set's declared type, then
// evaluates every rule in a fixed order: required, type, string length,
// numeric bounds, multiple-of, enum, pattern. It returns the coerced value
// together with every violation found; it never stops at the first failure
// and never returns an error itself. The caller decides whether violations
// are fatal.
//
// A nil rule set, or a nil candidate on a non-required field, validates
// trivially. A nil candidate on a required field reports only the required
// violation.
func (e *Engine) Validate(rs *RuleSet, candidate any) (any, []Violation) {
	if rs == nil {
		return candidate, nil
	}
	if candidate == nil {
		if rs.Required {
			return nil, []Violation{{Rule: RuleRequired, Message: "field required"}}
		}
		return nil, nil
	}

	coerced, err := Coerce(rs.Type, candidate)
	if err != nil {
		// Nothing else can be checked against an uncoercible value.
		return candidate, []Violation{{Rule: RuleType, Message: err.Error()}}
	}

	var violations []Violation
	for _, check := range varChecks(rs, coerced) {
		if verr := e.validate.Var(check.value, check.tag); verr != nil {
			var fieldErrs validator.ValidationErrors
			if errors.As(verr, &fieldErrs) {
				for _, fe := range fieldErrs {
					violations = append(violations, violationFor(fe))
				}
			} else {
				violations = append(violations, Violation{Rule: RuleType, Message: verr.Error()})
			}
		}
	}
	if rs.pattern != nil {
		if s, ok := coerced.(string); ok && !rs.pattern.MatchString(s) {
			violations = append(violations, Violation{
				Rule:    RulePattern,
				Message: fmt.Sprintf("must match pattern %q", rs.Pattern),
			})
		}
	}
	return coerced, violations
}

// varCheck is a single validator invocation: one tag against one value.
// Running rules one at a time means every violated rule is reported, where
// a combined tag would stop at the first failure.
type varCheck struct {
	tag   string
	value any
}

// varChecks assembles the validator invocations for the coerced value.
// Length and enum rules apply to strings, relational bounds and multiple-of
// to ints and floats, enum additionally to ints; rules that do not match
// the value's kind are skipped rather than misapplied. Integer values run
// their bound checks against a float64 shadow so fractional bounds such as
// gt=0.5 compare cleanly.
func varChecks(rs *RuleSet, v any) []varCheck {
	var checks []varCheck
	switch x := v.(type) {
	case string:
		if rs.MinLen != nil {
			checks = append(checks, varCheck{"min=" + strconv.Itoa(*rs.MinLen), x})
		}
		if rs.MaxLen != nil {
			checks = append(checks, varCheck{"max=" + strconv.Itoa(*rs.MaxLen), x})
		}
		if len(rs.Enum) > 0 {
			checks = append(checks, varCheck{"oneof=" + strings.Join(rs.Enum, " "), x})
		}
	case int64:
		checks = append(checks, boundChecks(rs, float64(x))...)
		if len(rs.Enum) > 0 {
			checks = append(checks, varCheck{"oneof=" + strings.Join(rs.Enum, " "), x})
		}
	case float64:
		checks = append(checks, boundChecks(rs, x)...)
	}
	return checks
}

func boundChecks(rs *RuleSet, num float64) []varCheck {
	var checks []varCheck
	if rs.GT != nil {
		checks = append(checks, varCheck{"gt=" + formatBound(*rs.GT), num})
	}
	if rs.GE != nil {
		checks = append(checks, varCheck{"gte=" + formatBound(*rs.GE), num})
	}
	if rs.LT != nil {
		checks = append(checks, varCheck{"lt=" + formatBound(*rs.LT), num})
	}
	if rs.LE != nil {
		checks = append(checks, varCheck{"lte=" + formatBound(*rs.LE), num})
	}
	if rs.MultipleOf != nil {
		checks = append(checks, varCheck{"multipleof=" + formatBound(*rs.MultipleOf), num})
	}
	return checks
}

// violationFor translates a validator field error into a Violation with a
// stable rule identifier and message.
func violationFor(fe validator.FieldError) Violation {
	switch fe.Tag() {
	case "min":
		return Violation{Rule: RuleMinLength, Message: fmt.Sprintf("must have at least %s characters", fe.Param())}
	case "max":
		return Violation{Rule: RuleMaxLength, Message: fmt.Sprintf("must have at most %s characters", fe.Param())}
	case "gt":
		return Violation{Rule: RuleGT, Message: "must be greater than " + fe.Param()}
	case "gte":
		return Violation{Rule: RuleGE, Message: "must be greater than or equal to " + fe.Param()}
	case "lt":
		return Violation{Rule: RuleLT, Message: "must be less than " + fe.Param()}
	case "lte":
		return Violation{Rule: RuleLE, Message: "must be less than or equal to " + fe.Param()}
	case "multipleof":
		return Violation{Rule: RuleMultipleOf, Message: "must be a multiple of " + fe.Param()}
	case "oneof":
		return Violation{Rule: RuleEnum, Message: "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")}
	default:
		return Violation{Rule: fe.Tag(), Message: "failed " + fe.Tag() + " validation"}
	}
}

// multipleOfTolerance absorbs floating point noise in the modulo check, so
// 0.3 counts as a multiple of 0.1.
const multipleOfTolerance = 1e-9

// validateMultipleOf implements the multipleof tag for ints and floats.
// validator has no built-in multiple-of rule, so it is registered as a
// custom validation on every Engine.
func validateMultipleOf(fl validator.FieldLevel) bool {
	m, err := strconv.ParseFloat(fl.Param(), 64)
	if err != nil || m == 0 {
		return false
	}
	var v float64
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v = float64(fl.Field().Int())
	case reflect.Float32, reflect.Float64:
		v = fl.Field().Float()
	default:
		return false
	}
	mod := math.Abs(math.Mod(v, m))
	return mod <= multipleOfTolerance || math.Abs(m)-mod <= multipleOfTolerance
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
