package env

import (
	"github.com/rs/zerolog"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/constraint"
)

// Source identifies where a resolved field value came from.
type Source string

const (
	// SourceNone marks a field that resolved to no value at all.
	SourceNone Source = "none"

	// SourceOverride marks a value assigned explicitly via Set.
	SourceOverride Source = "override"

	// SourceContained marks a value taken from the contained map.
	SourceContained Source = "contained"

	// SourceEnviron marks a value read from the process environment.
	SourceEnviron Source = "environ"

	// SourceDefault marks the declared default value.
	SourceDefault Source = "default"
)

// Required is the sentinel default that marks a declaration as required.
// Assign it as a Decl default: Decl{Name: "API_KEY", Default: Required}.
var Required = requiredMarker{}

type requiredMarker struct{}

func (requiredMarker) String() string { return "<required>" }

// Decl declares a single field: its environment variable name and an
// optional default used when no other source yields a value.
type Decl struct {
	Name    string
	Default any
}

// Config declares the configuration surface of an Env.
type Config struct {
	// Name identifies the schema in error messages and log lines.
	// Empty defaults to "Env".
	Name string

	// Envs is the ordered field declaration list. Accepted forms: []string,
	// []Decl, or []any mixing strings, Decls, [2]string pairs and
	// two-element []string pairs. Anything else, a bare string included,
	// fails construction with a type-kind error.
	Envs any

	// DotEnvPath is an optional env file consumed at construction. Empty
	// skips file loading entirely.
	DotEnvPath string

	// Contained keeps values loaded from DotEnvPath inside this Env
	// instead of exporting them to the process environment.
	Contained bool

	// Rules maps field names to their constraint rules. Fields without an
	// entry validate trivially.
	Rules map[string]constraint.Rules

	// EagerValidate resolves and validates every declared field at
	// construction, aggregating all violations into one error.
	EagerValidate bool

	// Logger receives lifecycle warnings and debug output. The zero value
	// is silent.
	Logger zerolog.Logger
}

// FieldSpec is the immutable description of one declared field.
type FieldSpec struct {
	// Name is the environment variable name.
	Name string

	// Default is the declared default, nil when absent. Required fields
	// report a nil Default.
	Default any

	// Required reports whether the field must resolve to a value.
	Required bool

	// Rules is the compiled constraint set, nil when the field has none.
	Rules *constraint.RuleSet
}
