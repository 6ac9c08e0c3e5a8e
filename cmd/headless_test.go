package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbell/internal/app"
	"focusbell/internal/core/model"
)

func TestHeadlessSettingsOverridesChangedFlags(t *testing.T) {
	t.Cleanup(func() {
		headlessFocus, headlessMinInterval, headlessMaxInterval, headlessRest = 0, 0, 0, 0
	})
	require.NoError(t, headlessCmd.ParseFlags([]string{"--focus", "25", "--rest", "5"}))

	settings := headlessSettings(headlessCmd, model.DefaultSettings())
	defaults := model.DefaultSettings()

	assert.Equal(t, 25*time.Minute, settings.FocusDuration)
	assert.Equal(t, 5*time.Second, settings.RestDuration)
	assert.Equal(t, defaults.MinInterval, settings.MinInterval)
	assert.Equal(t, defaults.MaxInterval, settings.MaxInterval)
}

func TestWithDebugTimings(t *testing.T) {
	t.Cleanup(func() { debugMode = false })

	settings := model.DefaultSettings()
	settings.AlertSound = model.SoundLong

	debugMode = false
	assert.Equal(t, settings, withDebugTimings(settings))

	debugMode = true
	debug := withDebugTimings(settings)
	assert.Equal(t, time.Minute, debug.FocusDuration)
	assert.Equal(t, 3*time.Second, debug.RestDuration)
	assert.Equal(t, model.SoundLong, debug.AlertSound)
}

func TestLogPresenterRestartsAfterCycle(t *testing.T) {
	var out bytes.Buffer
	presenter := newLogPresenter(zerolog.New(&out))

	decisions := make(chan app.Decision, 1)
	presenter.AskLongBreak(90, func(decision app.Decision) { decisions <- decision })

	select {
	case decision := <-decisions:
		assert.Equal(t, app.DecisionRestart, decision)
	case <-time.After(time.Second):
		t.Fatal("no decision")
	}
	assert.Contains(t, out.String(), "cycle complete; restarting")
}
