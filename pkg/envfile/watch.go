package envfile

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// defaultDebounce batches rapid successive writes into one change event.
const defaultDebounce = 500 * time.Millisecond

// Watcher watches env files on disk and reports settled changes.
type Watcher struct {
	logger   zerolog.Logger
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a file watcher. A non-positive debounce selects the
// 500ms default.
func NewWatcher(logger zerolog.Logger, debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		logger:   logger.With().Str("component", "envfile-watcher").Logger(),
		debounce: debounce,
	}
}

// Watch starts watching paths and invokes onChange once per settled burst of
// writes. Empty paths are skipped; paths that cannot be watched are logged
// and skipped. Watching stops when ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.watcher = watcher

	added := 0
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := watcher.Add(path); err != nil {
			w.logger.Warn().Err(err).Str("path", path).Msg("Failed to watch file")
			continue
		}
		added++
	}

	go w.processEvents(ctx, onChange)

	w.logger.Info().
		Int("paths", added).
		Msg("Started watching env files")

	return nil
}

// processEvents debounces write and create events into onChange calls.
func (w *Watcher) processEvents(ctx context.Context, onChange func() error) {
	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			_ = w.watcher.Close()
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.logger.Debug().
				Str("file", event.Name).
				Str("op", event.Op.String()).
				Msg("Env file changed")

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				if err := onChange(); err != nil {
					w.logger.Error().Err(err).Msg("Failed to apply env file change")
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}

// Close stops watching for file changes.
func (w *Watcher) Close() error {
	if w.watcher != nil {
		return w.watcher.Close()
	}
	return nil
}
