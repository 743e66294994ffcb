// Package manifest loads schema declarations from YAML files.
//
// A manifest describes an env schema declaratively: the schema name, the
// env file to load, whether the schema is contained, and the declared
// fields with their defaults and validation rules. Entries accept two
// shapes, a bare field name or a mapping with declaration and rule keys:
//
//	name: App
//	dotenv: .env
//	contained: true
//	envs:
//	  - DB_HOST
//	  - name: DB_PORT
//	    default: "5432"
//	    type: int
//	    gt: 0
//	  - name: API_KEY
//	    required: true
//	    type: string
//	    min_len: 10
//
// Load parses and validates a manifest file, and Config converts it into
// an env.Config ready to hand to env.New. Relative dotenv paths resolve
// against the manifest's own directory, so a manifest can be invoked from
// anywhere.
package manifest
