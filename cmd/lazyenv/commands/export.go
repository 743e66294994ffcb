package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/envfile"
)

func newExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export resolved values as an env file",
		Long: `Resolve every field declared in the manifest and export the result
as KEY=VALUE pairs.

Fields that resolve to nothing are skipped. With --output the pairs are
written as a quoted env file, otherwise they are printed to stdout.`,
		Example: `  # Print pairs to stdout
  lazyenv export

  # Write a generated env file
  lazyenv export --output .env.resolved`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("manifest", manifestPath).
				Str("output", output).
				Msg("Exporting environment configuration")

			_, e, err := loadEnv()
			if err != nil {
				return err
			}
			if err := e.Validate(); err != nil {
				return err
			}

			pairs, err := e.Environ()
			if err != nil {
				return err
			}

			if output == "" {
				for _, pair := range pairs {
					fmt.Println(pair)
				}
				return nil
			}

			values := make(map[string]string, len(pairs))
			for _, pair := range pairs {
				parts := strings.SplitN(pair, "=", 2)
				values[parts[0]] = parts[1]
			}
			if err := envfile.Write(values, output); err != nil {
				return err
			}

			fmt.Printf("✓ Wrote %d values to %s\n", len(values), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write pairs to this env file instead of stdout")

	return cmd
}
