package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"focusbell/internal/core/model"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const watchDebounce = 250 * time.Millisecond

// WatchSettings calls onChange with freshly loaded settings whenever the
// file at path is written, created or replaced. It blocks until ctx is done.
// The parent directory is watched so editors that replace the file are seen.
func WatchSettings(ctx context.Context, path string, logger zerolog.Logger, onChange func(model.Settings)) error {
	dir := filepath.Dir(path)
	target := filepath.Clean(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch settings dir: %w", err)
	}

	var (
		timerMu sync.Mutex
		timer   *time.Timer
	)
	reload := func() {
		settings, err := LoadSettings(path)
		if err != nil {
			logger.Warn().Err(err).Str("path", path).Msg("settings reload failed")
			return
		}
		if ctx.Err() != nil {
			return
		}
		onChange(settings)
	}
	debounce := func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, reload)
	}
	defer func() {
		timerMu.Lock()
		defer timerMu.Unlock()
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Debug().Err(err).Msg("settings watcher error")
		}
	}
}
