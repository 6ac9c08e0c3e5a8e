package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"info":    zerolog.InfoLevel,
		"verbose": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for input, want := range tests {
		assert.Equal(t, want, ParseLevel(input), "level %q", input)
	}
}

func TestNewJSONWritesStructuredLines(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(Options{Level: "debug", JSON: true, Out: &buffer})

	logger.Debug().Str("component", "scheduler").Int("interval", 42).Msg("started")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "scheduler", line["component"])
	assert.Equal(t, float64(42), line["interval"])
	assert.Equal(t, "started", line["message"])
	assert.Contains(t, line, "time")
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buffer bytes.Buffer
	logger := New(Options{Level: "warn", Out: &buffer})

	logger.Info().Msg("hidden")
	assert.Zero(t, buffer.Len())

	logger.Warn().Msg("shown")
	assert.Contains(t, buffer.String(), "shown")
}
