package preferences

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"

	"focusbell/internal/core/model"
)

func TestApplyForm(t *testing.T) {
	settings := applyForm(model.DefaultSettings(), form{
		focusMinutes:       "45",
		minIntervalSeconds: "120",
		maxIntervalSeconds: "240",
		restSeconds:        "15",
		longBreakMinutes:   "10",
		idleMinutes:        "3",
	})

	assert.Equal(t, 45*time.Minute, settings.FocusDuration)
	assert.Equal(t, 120*time.Second, settings.MinInterval)
	assert.Equal(t, 240*time.Second, settings.MaxInterval)
	assert.Equal(t, 15*time.Second, settings.RestDuration)
	assert.Equal(t, 10*time.Minute, settings.LongBreakDuration)
	assert.Equal(t, 3*time.Minute, settings.IdlePauseAfter)
}

func TestApplyFormKeepsInvalidEntries(t *testing.T) {
	defaults := model.DefaultSettings()
	settings := applyForm(defaults, form{
		focusMinutes:       "abc",
		minIntervalSeconds: "0",
		maxIntervalSeconds: "-5",
		restSeconds:        "",
	})

	assert.Equal(t, defaults, settings)
}

func TestApplyFormRaisesMaxToMin(t *testing.T) {
	settings := applyForm(model.DefaultSettings(), form{
		minIntervalSeconds: "400",
		maxIntervalSeconds: "200",
	})

	assert.Equal(t, 400*time.Second, settings.MinInterval)
	assert.Equal(t, 400*time.Second, settings.MaxInterval)
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "20", formatMinutes(20*time.Minute))
	assert.Equal(t, "1", formatMinutes(10*time.Second))
	assert.Equal(t, "0", formatMinutes(0))
}

func TestSoundLabels(t *testing.T) {
	for _, sound := range []model.Sound{model.SoundShort, model.SoundLong} {
		assert.Equal(t, sound, soundFromLabel(soundLabel(sound)))
	}
	assert.Equal(t, model.SoundShort, soundFromLabel(""))
}

func TestSetConfigLockedBlocksSave(t *testing.T) {
	fyneApp := test.NewTempApp(t)
	var saved []model.Settings
	prefs := New(fyneApp, "Focus", model.DefaultSettings(), func(settings model.Settings) {
		saved = append(saved, settings)
	}, nil)

	prefs.SetConfigLocked(true)
	assert.True(t, prefs.focus.Disabled())
	assert.True(t, prefs.maxInterval.Disabled())
	assert.True(t, prefs.longBreak.Disabled())
	assert.True(t, prefs.saveButton.Disabled())
	assert.True(t, prefs.Locked())

	prefs.focus.SetText("90")
	prefs.handleSave()
	assert.Empty(t, saved)

	prefs.SetConfigLocked(false)
	assert.False(t, prefs.focus.Disabled())
	assert.False(t, prefs.saveButton.Disabled())

	test.Tap(prefs.saveButton)
	if assert.Len(t, saved, 1) {
		assert.Equal(t, 90*time.Minute, saved[0].FocusDuration)
	}
}
