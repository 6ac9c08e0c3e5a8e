package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"focusbell/internal/core/model"
)

const (
	soundShortLabel = "Short chime"
	soundLongLabel  = "Long chime"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    model.Settings
	onSave      func(model.Settings)
	onTestSound func(model.Sound)
	focus       *widget.Entry
	minInterval *widget.Entry
	maxInterval *widget.Entry
	rest        *widget.Entry
	longBreak   *widget.Entry
	sound       *widget.RadioGroup
	idleCheck   *widget.Check
	idleAfter   *widget.Entry
	autostart   *widget.Check
	saveButton  *widget.Button
}

// form holds the raw text of the numeric entries.
type form struct {
	focusMinutes       string
	minIntervalSeconds string
	maxIntervalSeconds string
	restSeconds        string
	longBreakMinutes   string
	idleMinutes        string
}

// New creates a preferences window. Closing it hides it.
func New(app fyne.App, title string, settings model.Settings, onSave func(model.Settings), onTestSound func(model.Sound)) *Window {
	window := app.NewWindow(title + " Settings")

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		onTestSound: onTestSound,
		focus:       widget.NewEntry(),
		minInterval: widget.NewEntry(),
		maxInterval: widget.NewEntry(),
		rest:        widget.NewEntry(),
		longBreak:   widget.NewEntry(),
		sound:       widget.NewRadioGroup([]string{soundShortLabel, soundLongLabel}, nil),
		idleCheck:   widget.NewCheck("Pause when I'm away", nil),
		idleAfter:   widget.NewEntry(),
		autostart:   widget.NewCheck("Launch at login", nil),
	}
	prefs.sound.Horizontal = true

	testButton := widget.NewButton("Test", func() {
		if prefs.onTestSound != nil {
			prefs.onTestSound(soundFromLabel(prefs.sound.Selected))
		}
	})

	content := container.NewVBox(
		widget.NewLabelWithStyle("Focus", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		row("Focus cycle", prefs.focus, "min"),
		row("Reminder at least every", prefs.minInterval, "sec"),
		row("Reminder at most every", prefs.maxInterval, "sec"),
		row("Rest for", prefs.rest, "sec"),
		row("Long break", prefs.longBreak, "min"),
		widget.NewLabelWithStyle("Sound", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(prefs.sound, testButton),
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(prefs.idleCheck, widget.NewLabel("after"), prefs.idleAfter, widget.NewLabel("min")),
		prefs.autostart,
	)

	prefs.saveButton = widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(prefs.saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, content))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(420, 460))

	prefs.UpdateSettings(settings)
	return prefs
}

func row(label string, entry *widget.Entry, unit string) fyne.CanvasObject {
	return container.NewHBox(widget.NewLabel(label), entry, widget.NewLabel(unit))
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.focus.SetText(strconv.Itoa(int(settings.FocusDuration / time.Minute)))
	prefs.minInterval.SetText(strconv.Itoa(int(settings.MinInterval / time.Second)))
	prefs.maxInterval.SetText(strconv.Itoa(int(settings.MaxInterval / time.Second)))
	prefs.rest.SetText(strconv.Itoa(int(settings.RestDuration / time.Second)))
	prefs.longBreak.SetText(formatMinutes(settings.LongBreakDuration))
	prefs.sound.SetSelected(soundLabel(settings.AlertSound))
	prefs.idleCheck.SetChecked(settings.IdlePauseEnabled)
	prefs.idleAfter.SetText(formatMinutes(settings.IdlePauseAfter))
	prefs.autostart.SetChecked(settings.LaunchAtLogin)
}

// SetConfigLocked disables editing while a focus cycle is in progress.
// Must be called on the fyne goroutine.
func (prefs *Window) SetConfigLocked(locked bool) {
	for _, entry := range []*widget.Entry{prefs.focus, prefs.minInterval, prefs.maxInterval, prefs.rest, prefs.longBreak, prefs.idleAfter} {
		if locked {
			entry.Disable()
		} else {
			entry.Enable()
		}
	}
	if locked {
		prefs.saveButton.Disable()
	} else {
		prefs.saveButton.Enable()
	}
}

// Locked reports whether the form is locked.
func (prefs *Window) Locked() bool {
	return prefs.saveButton.Disabled()
}

func (prefs *Window) handleSave() {
	if prefs.Locked() {
		return
	}
	settings := applyForm(prefs.settings, form{
		focusMinutes:       prefs.focus.Text,
		minIntervalSeconds: prefs.minInterval.Text,
		maxIntervalSeconds: prefs.maxInterval.Text,
		restSeconds:        prefs.rest.Text,
		longBreakMinutes:   prefs.longBreak.Text,
		idleMinutes:        prefs.idleAfter.Text,
	})
	settings.AlertSound = soundFromLabel(prefs.sound.Selected)
	settings.IdlePauseEnabled = prefs.idleCheck.Checked
	settings.LaunchAtLogin = prefs.autostart.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// applyForm overlays the parsed entries on settings. Entries that are not
// positive integers keep their previous value.
func applyForm(settings model.Settings, values form) model.Settings {
	if minutes, ok := parsePositiveInt(values.focusMinutes); ok {
		settings.FocusDuration = time.Duration(minutes) * time.Minute
	}
	if seconds, ok := parsePositiveInt(values.minIntervalSeconds); ok {
		settings.MinInterval = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(values.maxIntervalSeconds); ok {
		settings.MaxInterval = time.Duration(seconds) * time.Second
	}
	if seconds, ok := parsePositiveInt(values.restSeconds); ok {
		settings.RestDuration = time.Duration(seconds) * time.Second
	}
	if minutes, ok := parsePositiveInt(values.longBreakMinutes); ok {
		settings.LongBreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(values.idleMinutes); ok {
		settings.IdlePauseAfter = time.Duration(minutes) * time.Minute
	}
	if settings.MaxInterval < settings.MinInterval {
		settings.MaxInterval = settings.MinInterval
	}
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

// formatMinutes renders whole minutes, rounding sub-minute values up so a
// short debug break never shows as zero.
func formatMinutes(duration time.Duration) string {
	minutes := int((duration + time.Minute - 1) / time.Minute)
	return fmt.Sprintf("%d", minutes)
}

func soundLabel(sound model.Sound) string {
	if sound == model.SoundLong {
		return soundLongLabel
	}
	return soundShortLabel
}

func soundFromLabel(label string) model.Sound {
	if label == soundLongLabel {
		return model.SoundLong
	}
	return model.SoundShort
}
