package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/satyamsoni2211/lazy-env-configurator/pkg/env"
	"github.com/satyamsoni2211/lazy-env-configurator/pkg/envfile"
	"github.com/satyamsoni2211/lazy-env-configurator/pkg/manifest"
)

func newWatchCommand() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-resolve the configuration when files change",
		Long: `Watch the manifest and its env file and print the resolved
configuration every time one of them changes.

Values are resolved in contained mode so each render reads the env file
fresh instead of inheriting earlier process state. Stop with Ctrl+C.`,
		Example: `  # Watch the default manifest
  lazyenv watch

  # Watch with a longer debounce window
  lazyenv watch --debounce 2s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Info().
				Str("manifest", manifestPath).
				Msg("Watching environment configuration")

			m, err := manifest.Load(manifestPath)
			if err != nil {
				return err
			}

			render := func() error {
				m, err := manifest.Load(manifestPath)
				if err != nil {
					return err
				}
				cfg, err := m.Config()
				if err != nil {
					return err
				}
				// Contained mode re-reads the env file on every render.
				cfg.Contained = true
				e, err := env.New(cfg)
				if err != nil {
					return err
				}
				return printResolved(e)
			}

			if err := render(); err != nil {
				log.Error().Err(err).Msg("Initial resolution failed")
			}

			watcher := envfile.NewWatcher(log.Logger, debounce)
			if err := watcher.Watch(cmd.Context(), m.WatchPaths(), render); err != nil {
				return err
			}

			<-cmd.Context().Done()
			fmt.Println("\nStopped watching")
			return nil
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 0, "debounce window for change events (default 500ms)")

	return cmd
}
