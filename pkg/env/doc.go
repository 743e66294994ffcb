// Package env provides declarative, lazily resolved, env-backed
// configuration schemas.
//
// # Overview
//
// An Env is built from a Config: an ordered list of field declarations, an
// optional env file, per-field constraint rules, and a contained-mode flag.
// Fields resolve on first access and cache their value; nothing touches the
// environment again until the cache is cleared by an explicit Set.
//
// # Resolution Order
//
// Each field resolves from the first source that yields a value:
//
//  1. an explicit override assigned via Set
//  2. the contained map loaded from the declared env file
//  3. the process environment
//  4. the declared default
//
// Empty strings count as unset at every tier, so FOO= in an env file falls
// through to the process environment and then the default. A field with no
// source at all resolves to nil.
//
// # Contained Mode
//
// By default a declared env file is exported to the process environment
// (existing variables keep their value). Contained mode instead keeps the
// loaded values private to the Env: they win over the process environment
// during resolution but are never visible to os.Getenv or child processes.
//
// # Validation
//
// Constraint rules attach per field and run through the constraint package
// on every resolution and assignment. Lazy mode fails on first access to an
// offending field; EagerValidate resolves everything at construction and
// aggregates every offending field into a single *ValidationError. A failed
// field stays unresolved, so the next access re-evaluates it against the
// then-current environment.
//
// # Usage Example
//
//	zero := 0.0
//	app, err := env.New(env.Config{
//	    Name: "App",
//	    Envs: []env.Decl{
//	        {Name: "DB_HOST", Default: "localhost"},
//	        {Name: "DB_PORT", Default: "5432"},
//	        {Name: "API_KEY", Default: env.Required},
//	    },
//	    DotEnvPath: ".env",
//	    Rules: map[string]constraint.Rules{
//	        "DB_PORT": {Type: constraint.TypeInt, GT: &zero},
//	        "API_KEY": {Required: true, Type: constraint.TypeString},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	host, _ := app.String("DB_HOST")
//	port, _ := app.Int64("DB_PORT")
//
// Define registers the constructed Env under its schema name so unrelated
// packages can share one instance:
//
//	env.MustDefine(cfg)
//	...
//	app, _ := env.Instance("App")
//
// # Error Handling
//
// Construction and access failures are classified: KindType for malformed
// declarations, KindFileNotFound for a missing declared env file,
// KindUnknownField for undeclared names, and *ValidationError for
// constraint violations. Branch with errors.Is/As or the IsType,
// IsFileNotFound, IsUnknownField and IsValidation helpers.
//
// # Thread Safety
//
// The Define/Instance registry is safe for concurrent use. Field resolution
// is not synchronized: resolve fields (or construct with EagerValidate)
// before sharing an Env across goroutines.
package env
