package overlay

import (
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestElapsedFraction(t *testing.T) {
	total := 20 * time.Minute
	assert.Equal(t, 0.0, elapsedFraction(total, total))
	assert.Equal(t, 0.5, elapsedFraction(10*time.Minute, total))
	assert.Equal(t, 1.0, elapsedFraction(0, total))
	assert.Equal(t, 1.0, elapsedFraction(time.Second, 0))
}

func TestWindowCountdown(t *testing.T) {
	app := test.NewTempApp(t)
	overlay := New(app, "FocusBell", Callbacks{})

	overlay.Show(20 * time.Minute)
	assert.Equal(t, "20:00", overlay.timerLabel.Text)
	assert.Equal(t, 0.0, overlay.bar.Value)

	overlay.SetRemaining(5*time.Minute, 20*time.Minute)
	assert.Equal(t, "05:00", overlay.timerLabel.Text)
	assert.Equal(t, 0.75, overlay.bar.Value)

	overlay.Hide()
}

func TestPanelLayoutPlacesButtonsAtBottom(t *testing.T) {
	overlay := New(test.NewTempApp(t), "FocusBell", Callbacks{})
	objects := []fyne.CanvasObject{
		overlay.titleLabel, overlay.subtitleLabel, overlay.timerLabel, overlay.bar, overlay.exitButton,
	}

	size := fyne.NewSize(400, 300)
	(&panelLayout{}).Layout(objects, size)

	assert.Less(t, overlay.titleLabel.Position().Y, overlay.timerLabel.Position().Y)
	assert.Less(t, overlay.timerLabel.Position().Y, overlay.bar.Position().Y)
	assert.Less(t, overlay.bar.Position().Y, overlay.exitButton.Position().Y)
}
