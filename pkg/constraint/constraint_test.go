package constraint

import (
	"strings"
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func mustCompile(t *testing.T, r Rules) *RuleSet {
	t.Helper()
	rs, err := r.Compile()
	if err != nil {
		t.Fatalf("failed to compile rules: %v", err)
	}
	return rs
}

func TestRulesCompile(t *testing.T) {
	tests := []struct {
		name    string
		rules   Rules
		wantErr bool
	}{
		{
			name:    "zero rules",
			rules:   Rules{},
			wantErr: false,
		},
		{
			name:    "valid pattern",
			rules:   Rules{Pattern: `^[a-z]+$`},
			wantErr: false,
		},
		{
			name:    "invalid pattern",
			rules:   Rules{Pattern: `[unclosed`},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.rules.Compile()

			if tt.wantErr {
				if err == nil {
					t.Error("expected compile error, got none")
				}
			} else {
				if err != nil {
					t.Errorf("unexpected compile error: %v", err)
				}
			}
		})
	}
}

func TestEngineValidate_NilRuleSet(t *testing.T) {
	e := NewEngine()

	value, violations := e.Validate(nil, "anything")
	if value != "anything" {
		t.Errorf("expected value passthrough, got %v", value)
	}
	if len(violations) != 0 {
		t.Errorf("expected no violations, got %v", violations)
	}
}

func TestEngineValidate_Required(t *testing.T) {
	e := NewEngine()

	required := mustCompile(t, Rules{Required: true, Type: TypeString})
	value, violations := e.Validate(required, nil)
	if value != nil {
		t.Errorf("expected nil value, got %v", value)
	}
	if len(violations) != 1 {
		t.Fatalf("expected 1 violation, got %d", len(violations))
	}
	if violations[0].Rule != RuleRequired {
		t.Errorf("expected %s violation, got %s", RuleRequired, violations[0].Rule)
	}
	if violations[0].Message != "field required" {
		t.Errorf("unexpected message: %s", violations[0].Message)
	}

	optional := mustCompile(t, Rules{Type: TypeString})
	if _, violations := e.Validate(optional, nil); len(violations) != 0 {
		t.Errorf("optional nil value should pass, got %v", violations)
	}
}

func TestEngineValidate_Coercion(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name      string
		rules     Rules
		candidate any
		want      any
		wantRule  string
	}{
		{
			name:      "int from string",
			rules:     Rules{Type: TypeInt},
			candidate: "8080",
			want:      int64(8080),
		},
		{
			name:      "int from garbage",
			rules:     Rules{Type: TypeInt},
			candidate: "abc",
			wantRule:  RuleType,
		},
		{
			name:      "float from string",
			rules:     Rules{Type: TypeFloat},
			candidate: "3.14",
			want:      3.14,
		},
		{
			name:      "bool from yes",
			rules:     Rules{Type: TypeBool},
			candidate: "yes",
			want:      true,
		},
		{
			name:      "bool from off",
			rules:     Rules{Type: TypeBool},
			candidate: "off",
			want:      false,
		},
		{
			name:      "duration from string",
			rules:     Rules{Type: TypeDuration},
			candidate: "30s",
			want:      30 * time.Second,
		},
		{
			name:      "string from int",
			rules:     Rules{Type: TypeString},
			candidate: 8080,
			want:      "8080",
		},
		{
			name:      "any passes through",
			rules:     Rules{},
			candidate: "raw",
			want:      "raw",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := mustCompile(t, tt.rules)
			value, violations := e.Validate(rs, tt.candidate)

			if tt.wantRule != "" {
				if len(violations) != 1 {
					t.Fatalf("expected 1 violation, got %v", violations)
				}
				if violations[0].Rule != tt.wantRule {
					t.Errorf("expected %s violation, got %s", tt.wantRule, violations[0].Rule)
				}
				return
			}

			if len(violations) != 0 {
				t.Fatalf("unexpected violations: %v", violations)
			}
			if value != tt.want {
				t.Errorf("expected %v (%T), got %v (%T)", tt.want, tt.want, value, value)
			}
		})
	}
}

func TestEngineValidate_StringRules(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name      string
		rules     Rules
		candidate string
		wantRule  string
	}{
		{
			name:      "min length satisfied",
			rules:     Rules{Type: TypeString, MinLen: ptr(3)},
			candidate: "abc",
		},
		{
			name:      "min length violated",
			rules:     Rules{Type: TypeString, MinLen: ptr(5)},
			candidate: "abc",
			wantRule:  RuleMinLength,
		},
		{
			name:      "max length violated",
			rules:     Rules{Type: TypeString, MaxLen: ptr(2)},
			candidate: "abc",
			wantRule:  RuleMaxLength,
		},
		{
			name:      "pattern satisfied",
			rules:     Rules{Type: TypeString, Pattern: `^[a-z]+$`},
			candidate: "abc",
		},
		{
			name:      "pattern violated",
			rules:     Rules{Type: TypeString, Pattern: `^[0-9]+$`},
			candidate: "abc",
			wantRule:  RulePattern,
		},
		{
			name:      "enum satisfied",
			rules:     Rules{Type: TypeString, Enum: []string{"dev", "prd"}},
			candidate: "dev",
		},
		{
			name:      "enum violated",
			rules:     Rules{Type: TypeString, Enum: []string{"dev", "prd"}},
			candidate: "test",
			wantRule:  RuleEnum,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := mustCompile(t, tt.rules)
			_, violations := e.Validate(rs, tt.candidate)

			if tt.wantRule == "" {
				if len(violations) != 0 {
					t.Errorf("unexpected violations: %v", violations)
				}
				return
			}
			if len(violations) != 1 {
				t.Fatalf("expected 1 violation, got %v", violations)
			}
			if violations[0].Rule != tt.wantRule {
				t.Errorf("expected %s violation, got %s", tt.wantRule, violations[0].Rule)
			}
		})
	}
}

func TestEngineValidate_NumericRules(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name      string
		rules     Rules
		candidate string
		wantRule  string
	}{
		{
			name:      "gt satisfied",
			rules:     Rules{Type: TypeInt, GT: ptr(3.0)},
			candidate: "10",
		},
		{
			name:      "gt violated on boundary",
			rules:     Rules{Type: TypeInt, GT: ptr(3.0)},
			candidate: "3",
			wantRule:  RuleGT,
		},
		{
			name:      "ge violated",
			rules:     Rules{Type: TypeInt, GE: ptr(5.0)},
			candidate: "4",
			wantRule:  RuleGE,
		},
		{
			name:      "ge satisfied on boundary",
			rules:     Rules{Type: TypeInt, GE: ptr(5.0)},
			candidate: "5",
		},
		{
			name:      "lt violated on boundary",
			rules:     Rules{Type: TypeInt, LT: ptr(5.0)},
			candidate: "5",
			wantRule:  RuleLT,
		},
		{
			name:      "le violated",
			rules:     Rules{Type: TypeInt, LE: ptr(5.0)},
			candidate: "6",
			wantRule:  RuleLE,
		},
		{
			name:      "multiple of satisfied",
			rules:     Rules{Type: TypeInt, MultipleOf: ptr(2.0)},
			candidate: "10",
		},
		{
			name:      "multiple of violated",
			rules:     Rules{Type: TypeInt, MultipleOf: ptr(2.0)},
			candidate: "7",
			wantRule:  RuleMultipleOf,
		},
		{
			name:      "fractional bound on int",
			rules:     Rules{Type: TypeInt, GT: ptr(0.5)},
			candidate: "1",
		},
		{
			name:      "fractional multiple of float",
			rules:     Rules{Type: TypeFloat, MultipleOf: ptr(0.1)},
			candidate: "0.3",
		},
		{
			name:      "float bound violated",
			rules:     Rules{Type: TypeFloat, LT: ptr(1.5)},
			candidate: "2.5",
			wantRule:  RuleLT,
		},
		{
			name:      "int enum violated",
			rules:     Rules{Type: TypeInt, Enum: []string{"80", "443"}},
			candidate: "8080",
			wantRule:  RuleEnum,
		},
		{
			name:      "int enum satisfied",
			rules:     Rules{Type: TypeInt, Enum: []string{"80", "443"}},
			candidate: "443",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := mustCompile(t, tt.rules)
			_, violations := e.Validate(rs, tt.candidate)

			if tt.wantRule == "" {
				if len(violations) != 0 {
					t.Errorf("unexpected violations: %v", violations)
				}
				return
			}
			if len(violations) != 1 {
				t.Fatalf("expected 1 violation, got %v", violations)
			}
			if violations[0].Rule != tt.wantRule {
				t.Errorf("expected %s violation, got %s", tt.wantRule, violations[0].Rule)
			}
		})
	}
}

func TestEngineValidate_AllViolationsReported(t *testing.T) {
	e := NewEngine()

	rs := mustCompile(t, Rules{Type: TypeInt, GT: ptr(5.0), MultipleOf: ptr(2.0)})
	_, violations := e.Validate(rs, "3")
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", violations)
	}
	if violations[0].Rule != RuleGT || violations[1].Rule != RuleMultipleOf {
		t.Errorf("unexpected violation order: %v", violations)
	}

	rs = mustCompile(t, Rules{Type: TypeString, MinLen: ptr(5), Pattern: `^[0-9]+$`})
	_, violations = e.Validate(rs, "ab")
	if len(violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", violations)
	}
	if violations[0].Rule != RuleMinLength || violations[1].Rule != RulePattern {
		t.Errorf("unexpected violation order: %v", violations)
	}
}

func TestEngineValidate_Messages(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name      string
		rules     Rules
		candidate any
		want      string
	}{
		{
			name:      "min length",
			rules:     Rules{Type: TypeString, MinLen: ptr(5)},
			candidate: "wow",
			want:      "must have at least 5 characters",
		},
		{
			name:      "greater than",
			rules:     Rules{Type: TypeInt, GT: ptr(3.0)},
			candidate: "2",
			want:      "must be greater than 3",
		},
		{
			name:      "less than or equal",
			rules:     Rules{Type: TypeFloat, LE: ptr(1.5)},
			candidate: "2",
			want:      "must be less than or equal to 1.5",
		},
		{
			name:      "enum",
			rules:     Rules{Type: TypeString, Enum: []string{"dev", "prd"}},
			candidate: "qa",
			want:      "must be one of: dev, prd",
		},
		{
			name:      "pattern",
			rules:     Rules{Type: TypeString, Pattern: `^[0-9]+$`},
			candidate: "abc",
			want:      `must match pattern "^[0-9]+$"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := mustCompile(t, tt.rules)
			_, violations := e.Validate(rs, tt.candidate)

			if len(violations) != 1 {
				t.Fatalf("expected 1 violation, got %v", violations)
			}
			if violations[0].Message != tt.want {
				t.Errorf("expected message %q, got %q", tt.want, violations[0].Message)
			}
		})
	}
}

func TestEngineValidate_RulesSkippedByKind(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name      string
		rules     Rules
		candidate any
	}{
		{
			name:      "length rules skip ints",
			rules:     Rules{Type: TypeInt, MinLen: ptr(10)},
			candidate: "42",
		},
		{
			name:      "bounds skip strings",
			rules:     Rules{Type: TypeString, GT: ptr(100.0)},
			candidate: "42",
		},
		{
			name:      "bounds skip durations",
			rules:     Rules{Type: TypeDuration, GT: ptr(100.0)},
			candidate: "30s",
		},
		{
			name:      "enum skips floats",
			rules:     Rules{Type: TypeFloat, Enum: []string{"0.5"}},
			candidate: "0.7",
		},
		{
			name:      "pattern skips bools",
			rules:     Rules{Type: TypeBool, Pattern: `^[0-9]+$`},
			candidate: "true",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := mustCompile(t, tt.rules)
			_, violations := e.Validate(rs, tt.candidate)
			if len(violations) != 0 {
				t.Errorf("expected rule to be skipped, got %v", violations)
			}
		})
	}
}

func TestEngineValidate_TypeViolationStopsOtherRules(t *testing.T) {
	e := NewEngine()

	rs := mustCompile(t, Rules{Type: TypeInt, GT: ptr(5.0), MultipleOf: ptr(2.0)})
	value, violations := e.Validate(rs, "not-a-number")

	if len(violations) != 1 {
		t.Fatalf("expected only the type violation, got %v", violations)
	}
	if violations[0].Rule != RuleType {
		t.Errorf("expected %s violation, got %s", RuleType, violations[0].Rule)
	}
	if !strings.Contains(violations[0].Message, "not a valid integer") {
		t.Errorf("unexpected message: %s", violations[0].Message)
	}
	if value != "not-a-number" {
		t.Errorf("expected original candidate back, got %v", value)
	}
}
