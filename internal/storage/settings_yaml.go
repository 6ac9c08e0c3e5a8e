package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"focusbell/internal/core/model"
	"focusbell/internal/platform"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

// Bounds accepted from the settings file; they mirror the preferences form.
const (
	maxFocusMinutes     = 180
	maxIntervalSeconds  = 3600
	maxRestSeconds      = 300
	maxLongBreakSeconds = 2 * 60 * 60
	maxIdleMinutes      = 120
)

type yamlSettings struct {
	FocusMinutes       int    `yaml:"focus_minutes"`
	MinIntervalSeconds int    `yaml:"min_interval_seconds"`
	MaxIntervalSeconds int    `yaml:"max_interval_seconds"`
	RestSeconds        int    `yaml:"rest_seconds"`
	LongBreakSeconds   int    `yaml:"long_break_seconds"`
	AlertSound         string `yaml:"alert_sound"`
	IdlePause          bool   `yaml:"idle_pause"`
	IdlePauseMinutes   int    `yaml:"idle_pause_minutes"`
	LaunchAtLogin      bool   `yaml:"launch_at_login"`
}

// SettingsPath returns the settings file location for appName.
func SettingsPath(appName string) (string, error) {
	configDir, err := platform.NewService().GetConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(path string) (model.Settings, error) {
	settings := model.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings model.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:       int(settings.FocusDuration / time.Minute),
		MinIntervalSeconds: int(settings.MinInterval / time.Second),
		MaxIntervalSeconds: int(settings.MaxInterval / time.Second),
		RestSeconds:        int(settings.RestDuration / time.Second),
		LongBreakSeconds:   int(settings.LongBreakDuration / time.Second),
		AlertSound:         string(settings.AlertSound),
		IdlePause:          settings.IdlePauseEnabled,
		IdlePauseMinutes:   int(settings.IdlePauseAfter / time.Minute),
		LaunchAtLogin:      settings.LaunchAtLogin,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	// Write then rename so a watcher never reads a half-written file.
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *model.Settings, fileData yamlSettings) {
	if inRange(fileData.FocusMinutes, 1, maxFocusMinutes) {
		settings.FocusDuration = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if inRange(fileData.MinIntervalSeconds, 1, maxIntervalSeconds) {
		settings.MinInterval = time.Duration(fileData.MinIntervalSeconds) * time.Second
	}
	if inRange(fileData.MaxIntervalSeconds, 1, maxIntervalSeconds) {
		settings.MaxInterval = time.Duration(fileData.MaxIntervalSeconds) * time.Second
	}
	if settings.MaxInterval < settings.MinInterval {
		settings.MaxInterval = settings.MinInterval
	}
	if inRange(fileData.RestSeconds, 1, maxRestSeconds) {
		settings.RestDuration = time.Duration(fileData.RestSeconds) * time.Second
	}
	if inRange(fileData.LongBreakSeconds, 1, maxLongBreakSeconds) {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakSeconds) * time.Second
	}
	if sound := model.Sound(fileData.AlertSound); sound.Valid() {
		settings.AlertSound = sound
	}
	if inRange(fileData.IdlePauseMinutes, 1, maxIdleMinutes) {
		settings.IdlePauseAfter = time.Duration(fileData.IdlePauseMinutes) * time.Minute
	}

	settings.IdlePauseEnabled = fileData.IdlePause
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}

func inRange(value, min, max int) bool {
	return value >= min && value <= max
}
