package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/keyclick/keyclick/internal/logging"
)

// reloadDebounce coalesces the event bursts editors produce on save.
const reloadDebounce = 100 * time.Millisecond

// Watch re-loads the config whenever the file at path changes and hands
// each successfully parsed result to onChange. The parent directory is
// watched, not the file, so atomic save-and-rename survives. Runs until
// ctx is done.
func Watch(ctx context.Context, path string, log logging.Logger, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(path)
	var lastReload time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if time.Since(lastReload) < reloadDebounce {
				continue
			}
			lastReload = time.Now()

			cfg, err := Load(path)
			if err != nil {
				log.Warn("config reload failed", logging.String("path", path), logging.Error(err))
				continue
			}
			log.Info("config reloaded", logging.String("path", path))
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watch error", logging.Error(err))
		}
	}
}
