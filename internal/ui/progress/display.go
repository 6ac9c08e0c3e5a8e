package progress

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Display shows focus, reminder and rest progress as three bars.
type Display struct {
	focusBar      *widget.ProgressBar
	focusLabel    *widget.Label
	reminderBar   *widget.ProgressBar
	reminderLabel *widget.Label
	restBar       *widget.ProgressBar
	restLabel     *widget.Label
	content       fyne.CanvasObject
}

// New creates an empty display.
func New() *Display {
	display := &Display{
		focusBar:      widget.NewProgressBar(),
		focusLabel:    widget.NewLabel(""),
		reminderBar:   widget.NewProgressBar(),
		reminderLabel: widget.NewLabel(""),
		restBar:       widget.NewProgressBar(),
		restLabel:     widget.NewLabel(""),
	}
	for _, bar := range []*widget.ProgressBar{display.focusBar, display.reminderBar, display.restBar} {
		bar.TextFormatter = func() string { return "" }
	}

	display.content = container.NewVBox(
		section("Focus", display.focusBar, display.focusLabel),
		section("Next reminder", display.reminderBar, display.reminderLabel),
		section("Rest", display.restBar, display.restLabel),
	)
	return display
}

func section(title string, bar *widget.ProgressBar, label *widget.Label) fyne.CanvasObject {
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	return container.NewVBox(container.NewBorder(nil, nil, heading, label), bar)
}

// Content returns the widget tree.
func (display *Display) Content() fyne.CanvasObject {
	return display.content
}

// Reset clears all bars for a new cycle.
func (display *Display) Reset(focusMinutes, restSeconds int) {
	display.SetFocus(0, focusMinutes)
	display.SetReminder(0, 0)
	display.SetRest(0, restSeconds)
}

// SetFocus shows elapsed focus minutes.
func (display *Display) SetFocus(elapsedMinutes, totalMinutes int) {
	display.focusBar.SetValue(fraction(elapsedMinutes, totalMinutes))
	display.focusLabel.SetText(FocusRemaining(elapsedMinutes, totalMinutes))
}

// SetReminder shows seconds counted towards the next reminder.
func (display *Display) SetReminder(current, total int) {
	display.reminderBar.SetValue(fraction(current, total))
	display.reminderLabel.SetText(SecondsRemaining(current, total))
}

// SetRest shows seconds of the current rest.
func (display *Display) SetRest(current, total int) {
	display.restBar.SetValue(fraction(current, total))
	display.restLabel.SetText(SecondsRemaining(current, total))
}

func fraction(current, total int) float64 {
	if total <= 0 || current <= 0 {
		return 0
	}
	if current >= total {
		return 1
	}
	return float64(current) / float64(total)
}

// FocusRemaining formats the minutes left in a focus cycle.
func FocusRemaining(elapsedMinutes, totalMinutes int) string {
	remaining := totalMinutes - elapsedMinutes
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("remaining %d min", remaining)
}

// SecondsRemaining formats the seconds left in a countdown as mm:ss.
func SecondsRemaining(current, total int) string {
	remaining := total - current
	if remaining < 0 {
		remaining = 0
	}
	return "remaining " + Clock(time.Duration(remaining)*time.Second)
}

// Clock formats a duration as mm:ss, or h:mm:ss from one hour.
func Clock(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value / time.Second)
	hours := seconds / 3600
	minutes := seconds / 60 % 60
	seconds = seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
