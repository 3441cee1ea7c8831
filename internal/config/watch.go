package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ytget/cloud-drives/internal/logging"
	"github.com/ytget/cloud-drives/internal/platform"
)

// Watch calls onChange whenever the config file is written or replaced by
// someone other than this store. It watches the parent directory so atomic
// renames are seen, and returns once the watcher is running; the watcher
// stops when ctx is cancelled.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(s.path)
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch config directory: %w", err)
	}

	logging.Debug("watching config", zap.String("path", s.path))

	target := filepath.Clean(s.path)
	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if filepath.Clean(event.Name) != target {
					continue
				}

				data, err := os.ReadFile(target)
				if err != nil || s.writtenByUs(data) {
					continue
				}

				logging.Info("config file changed on disk", zap.String("path", target))
				onChange()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("config watcher error", zap.Error(err))
			}
		}
	}()

	return nil
}
