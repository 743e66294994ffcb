package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/env"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every declared field",
		Long: `Validate every field declared in the manifest.

Each field is resolved through the usual chain (override, env file,
process environment, default) and checked against its declared rules.
All violations are reported together rather than stopping at the first.`,
		Example: `  # Validate the manifest in the current directory
  lazyenv validate

  # Validate a specific manifest
  lazyenv validate -f conf/lazyenv.yaml

  # Machine-readable report
  lazyenv validate --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("manifest", manifestPath).
				Msg("Validating environment configuration")

			_, e, err := loadEnv()
			var verr *env.ValidationError
			if err != nil {
				// Eager manifests surface validation failures during
				// construction.
				if !errors.As(err, &verr) {
					return err
				}
			} else if err := e.Validate(); err != nil {
				if !errors.As(err, &verr) {
					return err
				}
			}

			if verr == nil {
				if jsonOutput {
					fmt.Println(`{"valid": true}`)
					return nil
				}
				fmt.Printf("✓ %s: all %d fields valid\n", e.Name(), len(e.Names()))
				return nil
			}

			if jsonOutput {
				out, err := json.MarshalIndent(verr.Fields, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to encode report: %w", err)
				}
				fmt.Println(string(out))
			} else {
				fmt.Printf("%d field(s) failed validation:\n", len(verr.Fields))
				for _, field := range verr.Fields {
					for _, v := range field.Violations {
						fmt.Printf("  %s: %s (%s)\n", field.Field, v.Message, v.Rule)
					}
				}
			}

			return fmt.Errorf("validation failed for %s", verr.Schema)
		},
	}

	return cmd
}
