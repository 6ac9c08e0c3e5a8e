//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinuxAutostartRoundTrip(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)
	service := NewService()

	enabled, err := service.AutostartEnabled("Focus Bell")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, service.EnableAutostart("Focus Bell", "/opt/focus bell/focusbell"))
	entry, err := os.ReadFile(filepath.Join(configDir, "autostart", "focus-bell.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(entry), `Exec="/opt/focus bell/focusbell"`)
	assert.Contains(t, string(entry), "Name=Focus Bell")

	enabled, err = service.AutostartEnabled("Focus Bell")
	require.NoError(t, err)
	assert.True(t, enabled)

	require.NoError(t, SyncAutostart(service, "Focus Bell", false))
	enabled, err = service.AutostartEnabled("Focus Bell")
	require.NoError(t, err)
	assert.False(t, enabled)

	require.NoError(t, service.DisableAutostart("Focus Bell"))
}

func TestEnableAutostartValidatesArguments(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	service := NewService()

	assert.Error(t, service.EnableAutostart("", "/bin/true"))
	assert.Error(t, service.EnableAutostart("FocusBell", ""))
	assert.Error(t, service.DisableAutostart(""))
}
