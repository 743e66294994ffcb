package commands

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/constraint"
	"github.com/satyamsoni2211/lazy-env-configurator/pkg/env"
)

// resolvedField is one row of resolve output.
type resolvedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve and print every declared field",
		Long: `Resolve every field declared in the manifest and print its value
together with the source it came from (override, contained, environ,
default or none).

Validation runs first; resolution fails if any field violates its
declared rules.`,
		Example: `  # Print the resolved configuration
  lazyenv resolve

  # Machine-readable output
  lazyenv resolve --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("manifest", manifestPath).
				Msg("Resolving environment configuration")

			_, e, err := loadEnv()
			if err != nil {
				return err
			}

			return printResolved(e)
		},
	}

	return cmd
}

// printResolved validates the schema and renders each field with its
// value and source.
func printResolved(e *env.Env) error {
	if err := e.Validate(); err != nil {
		return err
	}

	names := e.Names()
	rows := make([]resolvedField, 0, len(names))
	for _, name := range names {
		value, err := e.Get(name)
		if err != nil {
			return err
		}
		source, err := e.Source(name)
		if err != nil {
			return err
		}
		rows = append(rows, resolvedField{
			Name:   name,
			Value:  constraint.FormatValue(value),
			Source: string(source),
		})
	}

	if jsonOutput {
		out, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		fmt.Println(string(out))
		return nil
	}

	width := len("NAME")
	for _, row := range rows {
		if len(row.Name) > width {
			width = len(row.Name)
		}
	}
	fmt.Printf("%-*s  %-9s  %s\n", width, "NAME", "SOURCE", "VALUE")
	for _, row := range rows {
		fmt.Printf("%-*s  %-9s  %s\n", width, row.Name, row.Source, row.Value)
	}

	return nil
}
