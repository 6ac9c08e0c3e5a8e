//go:build windows

package platform

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}

	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("enable autostart: open run key: %w", err)
	}
	defer key.Close()

	if err := key.SetStringValue(appName, quoteWindowsPath(execPath)); err != nil {
		return fmt.Errorf("enable autostart: set run value: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}

	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("disable autostart: open run key: %w", err)
	}
	defer key.Close()

	if err := key.DeleteValue(appName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("disable autostart: delete run value: %w", err)
	}
	return nil
}

func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("autostart status: open run key: %w", err)
	}
	defer key.Close()

	if _, _, err := key.GetStringValue(appName); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("autostart status: read run value: %w", err)
	}
	return true, nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func quoteWindowsPath(execPath string) string {
	trimmed := strings.Trim(execPath, `"`)
	return fmt.Sprintf(`"%s"`, trimmed)
}
