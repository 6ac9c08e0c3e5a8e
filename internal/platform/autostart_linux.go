//go:build linux

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}

	entryPath, err := service.desktopEntryPath(appName)
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(entryPath), 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}
	if err := os.WriteFile(entryPath, []byte(buildDesktopEntry(appName, execPath)), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}

	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}

	entryPath, err := service.desktopEntryPath(appName)
	if err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	if err := os.Remove(entryPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}

	return nil
}

func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	entryPath, err := service.desktopEntryPath(appName)
	if err != nil {
		return false, fmt.Errorf("autostart status: %w", err)
	}
	return fileExists(entryPath)
}

func (service *platformService) desktopEntryPath(appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", appSlug(appName)+".desktop"), nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func buildDesktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Comment=Randomized focus reminders
Exec=%s
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		appName,
		execLine,
	)
}
