package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/env"
	"github.com/satyamsoni2211/lazy-env-configurator/pkg/manifest"
)

var (
	// Global flags
	manifestPath string
	verbose      bool
	jsonOutput   bool
)

// Execute runs the root command
func Execute(ctx context.Context, version, commit, buildDate string) error {
	rootCmd := newRootCommand(version, commit, buildDate)
	return rootCmd.ExecuteContext(ctx)
}

func newRootCommand(version, commit, buildDate string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lazyenv",
		Short: "lazyenv - Lazy environment configuration loader",
		Long: `lazyenv resolves application configuration from environment variables,
env files and declared defaults, validating every field against the
rules declared in a YAML manifest.

Features:
  - Declarative field manifests
  - Lazy resolution: override > env file > process env > default
  - Contained mode that keeps env file values out of the process
  - Typed coercion and rule validation (length, bounds, pattern, enum)
  - Watch mode that re-resolves when files change`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	// Persistent flags available to all commands
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "file", "f", "lazyenv.yaml", "manifest file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")

	// Add subcommands
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newValidateCommand())
	rootCmd.AddCommand(newResolveCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}

// loadEnv builds the schema declared by the manifest named with --file.
func loadEnv() (*manifest.Manifest, *env.Env, error) {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := m.Config()
	if err != nil {
		return nil, nil, err
	}

	e, err := env.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	return m, e, nil
}
