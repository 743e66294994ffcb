package env

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/constraint"
)

const iterableMessage = "envs should be an iterable of field declarations"

// buildSpecs turns the declared Envs value into ordered field specs. Rules
// are merged from Config.Rules and the Required sentinel, compiled, and the
// required-without-type demotion applied.
func buildSpecs(cfg Config, logger zerolog.Logger) ([]*FieldSpec, error) {
	decls, err := normalizeDecls(cfg.Envs)
	if err != nil {
		return nil, err
	}

	specs := make([]*FieldSpec, 0, len(decls))
	seen := make(map[string]struct{}, len(decls))
	for _, d := range decls {
		if d.Name == "" {
			return nil, NewTypeError("declaration with empty name")
		}
		if _, dup := seen[d.Name]; dup {
			return nil, NewTypeError("duplicate declaration").WithField(d.Name)
		}
		seen[d.Name] = struct{}{}

		spec, err := buildSpec(cfg, d, logger)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// normalizeDecls accepts the declaration forms listed on Config.Envs and
// rejects everything else with a type-kind error.
func normalizeDecls(envs any) ([]Decl, error) {
	switch v := envs.(type) {
	case nil:
		return nil, nil
	case []Decl:
		decls := make([]Decl, len(v))
		copy(decls, v)
		return decls, nil
	case []string:
		decls := make([]Decl, len(v))
		for i, name := range v {
			decls[i] = Decl{Name: name}
		}
		return decls, nil
	case []any:
		decls := make([]Decl, 0, len(v))
		for i, elem := range v {
			d, err := declFrom(elem)
			if err != nil {
				return nil, NewTypeError(fmt.Sprintf("%s: element %d: %v", iterableMessage, i, err))
			}
			decls = append(decls, d)
		}
		return decls, nil
	case string:
		return nil, NewTypeError(fmt.Sprintf("%s, got bare string %q", iterableMessage, v))
	default:
		return nil, NewTypeError(fmt.Sprintf("%s, got %T", iterableMessage, envs))
	}
}

// declFrom converts a single mixed-form declaration element into a Decl.
func declFrom(elem any) (Decl, error) {
	switch x := elem.(type) {
	case string:
		return Decl{Name: x}, nil
	case Decl:
		return x, nil
	case [2]string:
		return Decl{Name: x[0], Default: x[1]}, nil
	case []string:
		if len(x) != 2 {
			return Decl{}, fmt.Errorf("name/default pair needs exactly 2 entries, got %d", len(x))
		}
		return Decl{Name: x[0], Default: x[1]}, nil
	default:
		return Decl{}, fmt.Errorf("unsupported declaration type %T", elem)
	}
}

// buildSpec merges a declaration with its rules and compiles them. A field
// declared required without an explicit type is demoted to optional with a
// warning: required-ness is checked after coercion, so it needs a type to
// check against.
func buildSpec(cfg Config, d Decl, logger zerolog.Logger) (*FieldSpec, error) {
	def := d.Default
	required := false
	if _, ok := def.(requiredMarker); ok {
		def = nil
		required = true
	}

	rules, declared := cfg.Rules[d.Name]
	if required {
		rules.Required = true
		declared = true
	}

	if rules.Required && rules.Type == constraint.TypeAny {
		rules.Required = false
		logger.Warn().
			Str("field", d.Name).
			Msg("Required field without explicit type treated as optional")
	}

	var rs *constraint.RuleSet
	if declared {
		compiled, err := rules.Compile()
		if err != nil {
			return nil, &Error{Kind: KindType, Message: "invalid rules", Field: d.Name, Err: err}
		}
		rs = compiled
	}

	return &FieldSpec{
		Name:     d.Name,
		Default:  def,
		Required: rules.Required,
		Rules:    rs,
	}, nil
}
