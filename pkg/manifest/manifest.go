package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/constraint"
	"github.com/satyamsoni2211/lazy-env-configurator/pkg/env"
)

// Manifest is a declarative description of an env schema.
type Manifest struct {
	// Name identifies the schema in logs and error messages.
	Name string `yaml:"name"`

	// DotEnv is the env file path, resolved relative to the manifest.
	DotEnv string `yaml:"dotenv"`

	// Contained keeps env file values out of the process environment.
	Contained bool `yaml:"contained"`

	// Eager validates every field at construction instead of first read.
	Eager bool `yaml:"eager"`

	// Envs are the declared fields.
	Envs []Entry `yaml:"envs"`

	// Path is the file path the manifest was loaded from.
	Path string `yaml:"-"`
}

// Entry declares a single field together with its validation rules.
type Entry struct {
	// Name is the field name resolved against the environment.
	Name string `yaml:"name"`

	// Default is the fallback value when no source provides one.
	Default any `yaml:"default"`

	// Required marks the field as mandatory during validation.
	Required bool `yaml:"required"`

	// Type is the canonical type the field coerces to. Accepts the
	// names understood by constraint.ParseType.
	Type string `yaml:"type"`

	// MinLen and MaxLen bound the rune length of string values.
	MinLen *int `yaml:"min_len"`
	MaxLen *int `yaml:"max_len"`

	// GT, GE, LT and LE bound numeric values.
	GT *float64 `yaml:"gt"`
	GE *float64 `yaml:"ge"`
	LT *float64 `yaml:"lt"`
	LE *float64 `yaml:"le"`

	// MultipleOf constrains numeric values to multiples of the step.
	MultipleOf *float64 `yaml:"multiple_of"`

	// Pattern is a regular expression string values must match.
	Pattern string `yaml:"pattern"`

	// Enum lists the allowed values for string and int fields.
	Enum []string `yaml:"enum"`
}

// UnmarshalYAML accepts either a bare field name or a mapping with
// declaration and rule keys.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		*e = Entry{Name: name}
		return nil
	case yaml.MappingNode:
		type plain Entry
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*e = Entry(p)
		return nil
	default:
		return fmt.Errorf("line %d: env entry must be a name or a mapping", node.Line)
	}
}

// Load reads and parses a manifest from a YAML file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.Path = path
	return m, nil
}

// Parse parses a manifest from raw YAML bytes.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest YAML: %w", err)
	}

	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest: %w", err)
	}
	return &m, nil
}

// validate checks the basic structure of a manifest.
func (m *Manifest) validate() error {
	if len(m.Envs) == 0 {
		return fmt.Errorf("at least one env entry is required")
	}

	for i, e := range m.Envs {
		if e.Name == "" {
			return fmt.Errorf("env entry %d: name is required", i)
		}
		if e.Required && e.Default != nil {
			return fmt.Errorf("env entry %s: required and default are mutually exclusive", e.Name)
		}
		if e.Type != "" {
			if _, err := constraint.ParseType(e.Type); err != nil {
				return fmt.Errorf("env entry %s: %w", e.Name, err)
			}
		}
	}
	return nil
}

// Config converts the manifest into a schema configuration ready for
// env.New. Relative dotenv paths resolve against the manifest directory.
func (m *Manifest) Config() (env.Config, error) {
	decls := make([]env.Decl, 0, len(m.Envs))
	rules := make(map[string]constraint.Rules)

	for _, entry := range m.Envs {
		decl := env.Decl{Name: entry.Name, Default: entry.Default}
		if entry.Required {
			decl.Default = env.Required
		}
		decls = append(decls, decl)

		if !entry.constrained() {
			continue
		}
		r := constraint.Rules{
			Required:   entry.Required,
			MinLen:     entry.MinLen,
			MaxLen:     entry.MaxLen,
			GT:         entry.GT,
			GE:         entry.GE,
			LT:         entry.LT,
			LE:         entry.LE,
			MultipleOf: entry.MultipleOf,
			Pattern:    entry.Pattern,
			Enum:       entry.Enum,
		}
		if entry.Type != "" {
			t, err := constraint.ParseType(entry.Type)
			if err != nil {
				return env.Config{}, fmt.Errorf("env entry %s: %w", entry.Name, err)
			}
			r.Type = t
		}
		rules[entry.Name] = r
	}

	cfg := env.Config{
		Name:          m.Name,
		Envs:          decls,
		DotEnvPath:    m.dotEnvPath(),
		Contained:     m.Contained,
		EagerValidate: m.Eager,
	}
	if len(rules) > 0 {
		cfg.Rules = rules
	}
	return cfg, nil
}

// WatchPaths returns the files a watcher should observe for this
// manifest: the manifest itself and the resolved env file.
func (m *Manifest) WatchPaths() []string {
	paths := make([]string, 0, 2)
	if m.Path != "" {
		paths = append(paths, m.Path)
	}
	if p := m.dotEnvPath(); p != "" {
		paths = append(paths, p)
	}
	return paths
}

// dotEnvPath resolves the env file path relative to the manifest location.
func (m *Manifest) dotEnvPath() string {
	if m.DotEnv == "" || filepath.IsAbs(m.DotEnv) {
		return m.DotEnv
	}
	if m.Path == "" {
		return m.DotEnv
	}
	return filepath.Join(filepath.Dir(m.Path), m.DotEnv)
}

// constrained reports whether the entry declares any validation rules.
func (e *Entry) constrained() bool {
	return e.Required || e.Type != "" || e.MinLen != nil || e.MaxLen != nil ||
		e.GT != nil || e.GE != nil || e.LT != nil || e.LE != nil ||
		e.MultipleOf != nil || e.Pattern != "" || len(e.Enum) > 0
}
