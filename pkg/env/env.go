package env

import (
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/constraint"
	"github.com/satyamsoni2211/lazy-env-configurator/pkg/envfile"
)

// Env is a declared configuration schema with lazily resolved fields. Each
// field resolves on first access, in priority order: an explicit override,
// the contained map, the process environment, then the declared default.
// The resolved value is validated and cached; later reads return the cache
// without consulting the environment again.
//
// First access is not goroutine-safe: resolve fields (or construct with
// EagerValidate) before sharing an Env across goroutines. After resolution,
// concurrent reads are safe.
type Env struct {
	name        string
	logger      zerolog.Logger
	engine      *constraint.Engine
	contained   map[string]string
	isContained bool
	names       []string
	cells       map[string]*cell
}

// New constructs an Env from cfg. Declarations are normalized and their
// rules compiled, the declared env file (if any) is loaded, and, when
// EagerValidate is set, every field is resolved and validated up front.
func New(cfg Config) (*Env, error) {
	name := cfg.Name
	if name == "" {
		name = "Env"
	}
	logger := cfg.Logger.With().
		Str("component", "env").
		Str("schema", name).
		Logger()

	specs, err := buildSpecs(cfg, logger)
	if err != nil {
		var cerr *Error
		if errors.As(err, &cerr) && cerr.Schema == "" {
			cerr.Schema = name
		}
		return nil, err
	}

	e := &Env{
		name:        name,
		logger:      logger,
		engine:      constraint.NewEngine(),
		isContained: cfg.Contained,
		names:       make([]string, 0, len(specs)),
		cells:       make(map[string]*cell, len(specs)),
	}
	for _, spec := range specs {
		e.names = append(e.names, spec.Name)
		e.cells[spec.Name] = &cell{spec: spec, source: SourceNone}
	}

	if cfg.DotEnvPath != "" {
		if err := e.loadFile(cfg.DotEnvPath); err != nil {
			return nil, err
		}
	}

	logger.Debug().
		Int("fields", len(e.names)).
		Bool("contained", e.isContained).
		Msg("Configuration schema constructed")

	if cfg.EagerValidate {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}

	return e, nil
}

// loadFile consumes the declared env file. Contained mode keeps the values
// on the Env; otherwise they are exported to the process environment
// without overriding variables that are already set. A missing file is
// fatal except in contained mode, where it leaves the map empty with a
// warning.
func (e *Env) loadFile(path string) error {
	if e.isContained {
		values, err := envfile.Read(path)
		if err != nil {
			if errors.Is(err, envfile.ErrNotFound) {
				e.logger.Warn().
					Str("path", path).
					Msg("Env file not found, contained values empty")
				return nil
			}
			return err
		}
		if len(values) == 0 {
			e.logger.Warn().
				Str("path", path).
				Msg("No contained values loaded")
		}
		e.contained = values
		return nil
	}

	if err := envfile.Load(path); err != nil {
		if errors.Is(err, envfile.ErrNotFound) {
			return NewFileNotFoundError(path, err).WithSchema(e.name)
		}
		return err
	}
	return nil
}

// Get resolves the named field and returns its value. The first successful
// resolution is cached; a failed validation leaves the field unresolved so
// the next access re-evaluates it.
func (e *Env) Get(name string) (any, error) {
	c, ok := e.cells[name]
	if !ok {
		return nil, NewUnknownFieldError(e.name, name)
	}
	if c.resolved {
		return c.value, nil
	}

	raw, source := e.lookup(c.spec)
	value, violations := e.engine.Validate(c.spec.Rules, raw)
	if len(violations) > 0 {
		return nil, singleFieldViolation(e.name, name, violations)
	}

	c.value = value
	c.source = source
	c.resolved = true
	return value, nil
}

// lookup resolves a candidate value from the contained map, the process
// environment, then the declared default. Empty strings count as unset at
// every tier.
func (e *Env) lookup(spec *FieldSpec) (any, Source) {
	if v, ok := e.contained[spec.Name]; ok && v != "" {
		return v, SourceContained
	}
	if v := os.Getenv(spec.Name); v != "" {
		return v, SourceEnviron
	}
	if spec.Default != nil {
		return spec.Default, SourceDefault
	}
	return nil, SourceNone
}

// Set validates value and overwrites the cached entry for the named field.
// A nil or empty value clears the override and re-resolves from the usual
// sources. A failed validation leaves the cached state untouched.
func (e *Env) Set(name string, value any) error {
	c, ok := e.cells[name]
	if !ok {
		return NewUnknownFieldError(e.name, name)
	}

	raw, source := value, SourceOverride
	if value == nil || value == "" {
		raw, source = e.lookup(c.spec)
	}

	coerced, violations := e.engine.Validate(c.spec.Rules, raw)
	if len(violations) > 0 {
		return singleFieldViolation(e.name, name, violations)
	}

	c.value = coerced
	c.source = source
	c.resolved = true
	return nil
}

// Validate resolves every unresolved field and aggregates the violations of
// all offending fields into a single error. Fields that pass are cached;
// offending fields stay unresolved and fail again on access.
func (e *Env) Validate() error {
	var fields []FieldViolations
	for _, name := range e.names {
		c := e.cells[name]
		if c.resolved {
			continue
		}
		raw, source := e.lookup(c.spec)
		value, violations := e.engine.Validate(c.spec.Rules, raw)
		if len(violations) > 0 {
			fields = append(fields, FieldViolations{Field: name, Violations: violations})
			continue
		}
		c.value = value
		c.source = source
		c.resolved = true
	}

	if len(fields) > 0 {
		e.logger.Debug().
			Int("fields", len(fields)).
			Msg("Validation failed")
		return &ValidationError{Schema: e.name, Fields: fields}
	}
	return nil
}

// Name returns the schema name used in errors and log lines.
func (e *Env) Name() string {
	return e.name
}

// Names returns the declared field names in declaration order.
func (e *Env) Names() []string {
	names := make([]string, len(e.names))
	copy(names, e.names)
	return names
}

// Spec returns the declaration of the named field.
func (e *Env) Spec(name string) (FieldSpec, bool) {
	c, ok := e.cells[name]
	if !ok {
		return FieldSpec{}, false
	}
	return *c.spec, true
}

// Source resolves the named field and reports where its value came from.
func (e *Env) Source(name string) (Source, error) {
	if _, err := e.Get(name); err != nil {
		return SourceNone, err
	}
	return e.cells[name].source, nil
}

// Contained reports whether env file values are isolated from the process
// environment.
func (e *Env) Contained() bool {
	return e.isContained
}

// Environ resolves every field and renders NAME=VALUE pairs in declaration
// order. Fields that resolve to nil are skipped.
func (e *Env) Environ() ([]string, error) {
	pairs := make([]string, 0, len(e.names))
	for _, name := range e.names {
		v, err := e.Get(name)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		pairs = append(pairs, name+"="+constraint.FormatValue(v))
	}
	return pairs, nil
}
