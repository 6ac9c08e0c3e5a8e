package model

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched by every ConfigurationError.
var ErrInvalidConfig = errors.New("invalid scheduler config")

// ConfigurationError reports a rejected SchedulerConfig field.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (err *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrInvalidConfig, err.Field, err.Reason)
}

// Is lets errors.Is match ErrInvalidConfig.
func (err *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// SchedulerConfig contains the settings for one focus cycle.
type SchedulerConfig struct {
	FocusDurationMinutes int
	MinIntervalSeconds   int
	MaxIntervalSeconds   int
	RestDurationSeconds  int
}

// DefaultSchedulerConfig returns a 90 minute cycle with 3-5 minute reminders.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		FocusDurationMinutes: 90,
		MinIntervalSeconds:   180,
		MaxIntervalSeconds:   300,
		RestDurationSeconds:  10,
	}
}

// Normalize validates the config. A max interval below the min interval is
// clamped to the min interval; any non-positive value is rejected.
func (config SchedulerConfig) Normalize() (SchedulerConfig, error) {
	if config.FocusDurationMinutes < 1 {
		return config, &ConfigurationError{Field: "focus duration", Reason: "must be at least 1 minute"}
	}
	if config.MinIntervalSeconds < 1 {
		return config, &ConfigurationError{Field: "min interval", Reason: "must be at least 1 second"}
	}
	if config.MaxIntervalSeconds < 1 {
		return config, &ConfigurationError{Field: "max interval", Reason: "must be at least 1 second"}
	}
	if config.RestDurationSeconds < 1 {
		return config, &ConfigurationError{Field: "rest duration", Reason: "must be at least 1 second"}
	}
	if config.MaxIntervalSeconds < config.MinIntervalSeconds {
		config.MaxIntervalSeconds = config.MinIntervalSeconds
	}
	return config, nil
}
