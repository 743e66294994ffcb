package env

import (
	"errors"
	"fmt"
	"strings"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/constraint"
)

// Kind classifies configuration errors.
type Kind string

const (
	// KindType indicates a malformed declaration set: not an ordered
	// collection, an unsupported element, a duplicate name, or rules that
	// do not compile.
	KindType Kind = "type"

	// KindFileNotFound indicates a declared env file path missing on disk.
	KindFileNotFound Kind = "file_not_found"

	// KindValidation indicates one or more constraint violations.
	KindValidation Kind = "validation"

	// KindUnknownField indicates access to a field that was never declared.
	KindUnknownField Kind = "unknown_field"
)

// Error represents a classified configuration error with context.
type Error struct {
	// Kind is the error classification.
	Kind Kind

	// Message is the human-readable error message.
	Message string

	// Schema is the configuration schema name, if known.
	Schema string

	// Field is the field name that caused the error, if applicable.
	Field string

	// Path is the env file path involved, if applicable.
	Path string

	// Err is the underlying error that caused this error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Schema != "" && e.Field != "":
		return fmt.Sprintf("[%s] %s (schema=%s, field=%s)%s",
			e.Kind, e.Message, e.Schema, e.Field, e.suffix())
	case e.Path != "":
		return fmt.Sprintf("[%s] %s (path=%s)%s", e.Kind, e.Message, e.Path, e.suffix())
	case e.Schema != "":
		return fmt.Sprintf("[%s] %s (schema=%s)%s", e.Kind, e.Message, e.Schema, e.suffix())
	default:
		return fmt.Sprintf("[%s] %s%s", e.Kind, e.Message, e.suffix())
	}
}

// Unwrap returns the underlying error for error chain inspection.
func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) suffix() string {
	if e.Err != nil {
		return ": " + e.Err.Error()
	}
	return ""
}

// Is implements error equality checking for errors.Is. Two Errors match
// when they share a Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// WithSchema adds schema context to an error.
func (e *Error) WithSchema(schema string) *Error {
	e.Schema = schema
	return e
}

// WithField adds field context to an error.
func (e *Error) WithField(field string) *Error {
	e.Field = field
	return e
}

// NewTypeError creates a new type-kind error.
func NewTypeError(message string) *Error {
	return &Error{Kind: KindType, Message: message}
}

// NewFileNotFoundError creates a new file-not-found error for path.
func NewFileNotFoundError(path string, err error) *Error {
	return &Error{
		Kind:    KindFileNotFound,
		Message: "env file missing",
		Path:    path,
		Err:     err,
	}
}

// NewUnknownFieldError creates a new unknown-field error.
func NewUnknownFieldError(schema, field string) *Error {
	return &Error{
		Kind:    KindUnknownField,
		Message: "field not declared",
		Schema:  schema,
		Field:   field,
	}
}

// FieldViolations groups the violated rules of a single field.
type FieldViolations struct {
	// Field is the violating field name.
	Field string `json:"field"`

	// Violations lists every violated rule in evaluation order.
	Violations []constraint.Violation `json:"violations"`
}

// ValidationError aggregates constraint violations. Eager validation
// collects every offending field; lazy resolution and assignment carry a
// single field.
type ValidationError struct {
	// Schema is the configuration schema name.
	Schema string

	// Fields lists offending fields in declaration order.
	Fields []FieldViolations
}

// Error implements the error interface. The message lists every violated
// field on its own line, with its rule descriptions joined together.
func (e *ValidationError) Error() string {
	n := 0
	for _, f := range e.Fields {
		n += len(f.Violations)
	}
	noun := "errors"
	if n == 1 {
		noun = "error"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d validation %s for %s", n, noun, e.Schema)
	for _, f := range e.Fields {
		msgs := make([]string, len(f.Violations))
		for i, v := range f.Violations {
			msgs[i] = v.Message
		}
		fmt.Fprintf(&b, "\n%s: %s", f.Field, strings.Join(msgs, ", "))
	}
	return b.String()
}

// FieldNames returns the offending field names in declaration order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return names
}

// KindOf reports the classification of err, or the empty Kind when err
// carries none.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsType returns true if the error is classified as a type error.
func IsType(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindType
}

// IsFileNotFound returns true if the error reports a missing env file.
func IsFileNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindFileNotFound
}

// IsUnknownField returns true if the error reports an undeclared field.
func IsUnknownField(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindUnknownField
}

// IsValidation returns true if the error carries constraint violations.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func singleFieldViolation(schema, field string, violations []constraint.Violation) *ValidationError {
	return &ValidationError{
		Schema: schema,
		Fields: []FieldViolations{{Field: field, Violations: violations}},
	}
}
