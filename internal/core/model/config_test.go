package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeClampsMaxToMin(t *testing.T) {
	config := SchedulerConfig{FocusDurationMinutes: 1, MinIntervalSeconds: 30, MaxIntervalSeconds: 10, RestDurationSeconds: 5}

	normalized, err := config.Normalize()
	require.NoError(t, err)
	assert.Equal(t, 30, normalized.MinIntervalSeconds)
	assert.Equal(t, 30, normalized.MaxIntervalSeconds)
}

func TestNormalizeRejectsNonPositiveValues(t *testing.T) {
	valid := DefaultSchedulerConfig()
	tests := []struct {
		name   string
		mutate func(*SchedulerConfig)
		field  string
	}{
		{name: "focus", mutate: func(c *SchedulerConfig) { c.FocusDurationMinutes = 0 }, field: "focus duration"},
		{name: "min interval", mutate: func(c *SchedulerConfig) { c.MinIntervalSeconds = 0 }, field: "min interval"},
		{name: "max interval", mutate: func(c *SchedulerConfig) { c.MaxIntervalSeconds = -3 }, field: "max interval"},
		{name: "rest", mutate: func(c *SchedulerConfig) { c.RestDurationSeconds = 0 }, field: "rest duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid
			tt.mutate(&config)

			_, err := config.Normalize()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))

			var configErr *ConfigurationError
			require.True(t, errors.As(err, &configErr))
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestSettingsSchedulerConfig(t *testing.T) {
	config := DebugSettings().SchedulerConfig()

	assert.Equal(t, SchedulerConfig{
		FocusDurationMinutes: 1,
		MinIntervalSeconds:   5,
		MaxIntervalSeconds:   8,
		RestDurationSeconds:  3,
	}, config)
}

func TestDefaultSettingsMatchDefaultConfig(t *testing.T) {
	settings := DefaultSettings()
	assert.Equal(t, DefaultSchedulerConfig(), settings.SchedulerConfig())
	assert.Equal(t, 20*time.Minute, settings.LongBreakDuration)
	assert.True(t, settings.AlertSound.Valid())
	assert.False(t, Sound("chime").Valid())
}
