package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/envfile"
)

const starterManifest = `# lazyenv manifest
name: App

# Env file loaded before resolution. Relative paths resolve against
# this manifest.
dotenv: .env

# Contained keeps env file values out of the process environment.
contained: true

# Eager validates every field at construction instead of first read.
eager: false

envs:
  - APP_ENV
  - name: APP_PORT
    default: "8080"
    type: int
    gt: 0
    le: 65535
  - name: APP_SECRET
    required: true
    type: string
    min_len: 16
`

func newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter manifest and env file",
		Long: `Create a starter manifest together with a sample env file.

The manifest is written to the path given with --file and documents the
available declaration and rule keys. The env file lands next to the
manifest, matching the dotenv path the starter declares.`,
		Example: `  # Create lazyenv.yaml and .env in the current directory
  lazyenv init

  # Create under a config directory
  lazyenv init -f conf/lazyenv.yaml

  # Overwrite an existing manifest
  lazyenv init --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("manifest", manifestPath).
				Bool("force", force).
				Msg("Initializing configuration")

			if _, err := os.Stat(manifestPath); err == nil && !force {
				return fmt.Errorf("manifest already exists at %s (use --force to overwrite)", manifestPath)
			}

			dir := filepath.Dir(manifestPath)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}

			if err := os.WriteFile(manifestPath, []byte(starterManifest), 0644); err != nil {
				return fmt.Errorf("failed to write manifest: %w", err)
			}
			fmt.Printf("✓ Created manifest: %s\n", manifestPath)

			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); os.IsNotExist(err) {
				sample := map[string]string{
					"APP_ENV":    "dev",
					"APP_SECRET": "change-me-before-use",
				}
				if err := envfile.Write(sample, envPath); err != nil {
					return fmt.Errorf("failed to write env file: %w", err)
				}
				fmt.Printf("✓ Created env file: %s\n", envPath)
			} else {
				fmt.Printf("✓ Env file already exists: %s\n", envPath)
			}

			fmt.Printf("\n✅ Configuration initialized!\n\n")
			fmt.Printf("Next steps:\n")
			fmt.Printf("  1. Adjust the declared fields in %s\n", manifestPath)
			fmt.Printf("  2. Resolve the configuration:\n")
			fmt.Printf("     lazyenv resolve -f %s\n\n", manifestPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing manifest")

	return cmd
}
