// Package constraint implements the declarative validation rules applied to
// environment-backed configuration fields.
//
// A field declares a Rules value: an optional coercion Type plus any number
// of constraints (required, string length, numeric bounds, multiple-of,
// pattern, enum). Rules compile once into an immutable RuleSet, and an
// Engine evaluates rule sets against candidate values.
//
// # Evaluation Order
//
// Rules run in a fixed order and every violated rule is reported, not just
// the first:
//
//  1. required - a nil candidate on a required field
//  2. type - coercion to the declared type
//  3. min_length, max_length - string length
//  4. gt, ge, lt, le - numeric bounds
//  5. multiple_of - numeric divisibility
//  6. enum - membership in the allowed value list
//  7. pattern - regular expression match on strings
//
// # Validator Integration
//
// Relational rules are delegated to go-playground/validator variable
// validation: the Engine runs one tag per rule, such as Var(value, "min=5")
// or Var(value, "oneof=a b"), and translates each field error into a
// Violation. multiple_of has no validator built-in and is registered as
// the custom "multipleof" validation; patterns are precompiled RE2
// expressions matched directly.
//
// # Usage
//
//	min := 5
//	rules := constraint.Rules{
//	    Required: true,
//	    Type:     constraint.TypeString,
//	    MinLen:   &min,
//	}
//	rs, err := rules.Compile()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	engine := constraint.NewEngine()
//	value, violations := engine.Validate(rs, "wow")
//	for _, v := range violations {
//	    fmt.Printf("%s: %s\n", v.Rule, v.Message)
//	}
//
// Validate never returns an error: callers decide whether a non-empty
// violation list is fatal (eager schema validation) or deferred (lazy
// per-field access).
package constraint
