package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Service defines OS-specific helpers needed by the application.
type Service interface {
	GetConfigDir() (string, error)
	EnableAutostart(appName, execPath string) error
	DisableAutostart(appName string) error
	AutostartEnabled(appName string) (bool, error)
}

type platformService struct{}

// NewService returns a platform-specific implementation.
func NewService() Service {
	return &platformService{}
}

// GetConfigDir returns the OS-standard configuration directory.
func (service *platformService) GetConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// SyncAutostart registers or removes the running executable as a login
// item so that it matches enabled. It does nothing when already in sync.
func SyncAutostart(service Service, appName string, enabled bool) error {
	current, err := service.AutostartEnabled(appName)
	if err != nil {
		return fmt.Errorf("sync autostart: %w", err)
	}
	if current == enabled {
		return nil
	}
	if !enabled {
		return service.DisableAutostart(appName)
	}

	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("sync autostart: resolve executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return service.EnableAutostart(appName, execPath)
}

func appSlug(appName string) string {
	name := strings.TrimSpace(appName)
	if name == "" {
		name = "focusbell"
	}
	name = strings.ToLower(name)
	return strings.ReplaceAll(name, " ", "-")
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
