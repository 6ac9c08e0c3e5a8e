package progress

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	cases := []struct {
		value time.Duration
		want  string
	}{
		{-time.Second, "00:00"},
		{0, "00:00"},
		{1500 * time.Millisecond, "00:01"},
		{59 * time.Second, "00:59"},
		{20 * time.Minute, "20:00"},
		{time.Hour + 2*time.Second, "1:00:02"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Clock(tc.value), tc.value.String())
	}
}

func TestRemainingTexts(t *testing.T) {
	assert.Equal(t, "remaining 89 min", FocusRemaining(1, 90))
	assert.Equal(t, "remaining 0 min", FocusRemaining(91, 90))
	assert.Equal(t, "remaining 02:58", SecondsRemaining(2, 180))
	assert.Equal(t, "remaining 00:00", SecondsRemaining(10, 5))
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.0, fraction(1, 0))
	assert.Equal(t, 0.0, fraction(-1, 10))
	assert.Equal(t, 0.5, fraction(5, 10))
	assert.Equal(t, 1.0, fraction(12, 10))
}

func TestDisplayTracksValues(t *testing.T) {
	test.NewTempApp(t)
	display := New()

	display.Reset(90, 10)
	assert.Equal(t, 0.0, display.focusBar.Value)
	assert.Equal(t, "remaining 90 min", display.focusLabel.Text)
	assert.Equal(t, "remaining 00:10", display.restLabel.Text)

	display.SetFocus(45, 90)
	display.SetReminder(30, 120)
	display.SetRest(5, 10)
	assert.Equal(t, 0.5, display.focusBar.Value)
	assert.Equal(t, 0.25, display.reminderBar.Value)
	assert.Equal(t, "remaining 01:30", display.reminderLabel.Text)
	assert.Equal(t, "remaining 00:05", display.restLabel.Text)
	assert.NotNil(t, display.Content())
}
