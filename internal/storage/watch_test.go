package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"focusbell/internal/core/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchSettingsReloadsOnSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, SaveSettings(path, model.DefaultSettings()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan model.Settings, 4)
	done := make(chan error, 1)
	go func() {
		done <- WatchSettings(ctx, path, zerolog.Nop(), func(settings model.Settings) {
			changes <- settings
		})
	}()

	updated := model.DebugSettings()
	// The watcher registers asynchronously; keep saving, slower than the
	// debounce, until it notices.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(2 * watchDebounce)
	defer ticker.Stop()
	for received := false; !received; {
		select {
		case settings := <-changes:
			assert.Equal(t, updated, settings)
			received = true
		case <-ticker.C:
			require.NoError(t, SaveSettings(path, updated))
		case <-deadline:
			t.Fatal("settings change was not observed")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("WatchSettings did not return after cancel")
	}
}
