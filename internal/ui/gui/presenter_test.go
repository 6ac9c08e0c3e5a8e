package gui

import (
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusbell/internal/core/model"
	"focusbell/internal/core/scheduler"
	"focusbell/resources"
)

type fakeActions struct {
	mu     sync.Mutex
	starts int
	stops  int
}

func (actions *fakeActions) Start() {
	actions.mu.Lock()
	defer actions.mu.Unlock()
	actions.starts++
}

func (actions *fakeActions) Stop() {
	actions.mu.Lock()
	defer actions.mu.Unlock()
	actions.stops++
}

func (actions *fakeActions) TogglePause()   {}
func (actions *fakeActions) Restart()       {}
func (actions *fakeActions) SkipLongBreak() {}

func (actions *fakeActions) counts() (int, int) {
	actions.mu.Lock()
	defer actions.mu.Unlock()
	return actions.starts, actions.stops
}

func newTestPresenter(t *testing.T) *Presenter {
	t.Helper()
	return New(test.NewTempApp(t), Options{Title: "Focus", Settings: model.DefaultSettings()})
}

func TestPhaseIcon(t *testing.T) {
	assert.Equal(t, resources.MustLogo(resources.PausedIcon), phaseIcon(scheduler.PhasePaused))
	assert.Equal(t, resources.MustLogo(resources.FocusIcon), phaseIcon(scheduler.PhaseRunning))
	assert.Equal(t, resources.MustLogo(resources.FocusIcon), phaseIcon(scheduler.PhaseStopped))
}

func TestAlertMessage(t *testing.T) {
	assert.Equal(t, "Ding!", alertMessage(model.SoundShort))
	assert.Contains(t, alertMessage(model.SoundLong), "longer pause")
}

func TestApplyPhaseButtons(t *testing.T) {
	presenter := newTestPresenter(t)

	cases := []struct {
		phase      scheduler.Phase
		start      bool
		pause      bool
		stop       bool
		pauseLabel string
	}{
		{phase: scheduler.PhaseIdle, start: true, pauseLabel: "Pause"},
		{phase: scheduler.PhaseRunning, pause: true, stop: true, pauseLabel: "Pause"},
		{phase: scheduler.PhasePaused, pause: true, stop: true, pauseLabel: "Resume"},
		{phase: scheduler.PhaseStopping, pauseLabel: "Pause"},
		{phase: scheduler.PhaseStopped, start: true, pauseLabel: "Pause"},
	}
	for _, tc := range cases {
		t.Run(string(tc.phase), func(t *testing.T) {
			presenter.applyPhase(tc.phase)

			assert.Equal(t, tc.start, !presenter.startButton.Disabled(), "start")
			assert.Equal(t, tc.pause, !presenter.pauseButton.Disabled(), "pause")
			assert.Equal(t, tc.stop, !presenter.stopButton.Disabled(), "stop")
			assert.Equal(t, tc.pauseLabel, presenter.pauseButton.Text)
		})
	}
}

func TestDispatchWaitsForBind(t *testing.T) {
	presenter := newTestPresenter(t)
	actions := &fakeActions{}

	test.Tap(presenter.startButton)
	starts, _ := actions.counts()
	assert.Zero(t, starts)

	presenter.Bind(actions)
	test.Tap(presenter.startButton)
	require.Eventually(t, func() bool {
		starts, _ := actions.counts()
		return starts == 1
	}, time.Second, time.Millisecond)

	presenter.applyPhase(scheduler.PhaseRunning)
	test.Tap(presenter.stopButton)
	require.Eventually(t, func() bool {
		_, stops := actions.counts()
		return stops == 1
	}, time.Second, time.Millisecond)
}

func TestRestPulseFollowsPause(t *testing.T) {
	presenter := newTestPresenter(t)
	t.Cleanup(func() { presenter.pulse.Stop() })

	presenter.SetPhase(scheduler.PhaseRunning)
	presenter.SetResting(true)
	assert.True(t, presenter.pulse.Running())

	presenter.SetPhase(scheduler.PhasePaused)
	assert.False(t, presenter.pulse.Running())

	presenter.SetPhase(scheduler.PhaseRunning)
	assert.True(t, presenter.pulse.Running(), "resuming mid-rest pulses again")

	presenter.SetResting(false)
	assert.False(t, presenter.pulse.Running())

	presenter.SetPhase(scheduler.PhasePaused)
	presenter.SetPhase(scheduler.PhaseRunning)
	assert.False(t, presenter.pulse.Running(), "no pulse outside a rest")
}

func TestRestWhilePausedWaitsForResume(t *testing.T) {
	presenter := newTestPresenter(t)
	t.Cleanup(func() { presenter.pulse.Stop() })

	presenter.SetPhase(scheduler.PhasePaused)
	presenter.SetResting(true)
	assert.False(t, presenter.pulse.Running())

	presenter.SetPhase(scheduler.PhaseRunning)
	assert.True(t, presenter.pulse.Running())
}

func TestSetConfigLockedReachesPreferences(t *testing.T) {
	presenter := newTestPresenter(t)

	presenter.SetConfigLocked(true)
	require.Eventually(t, func() bool {
		var locked bool
		fyne.DoAndWait(func() { locked = presenter.prefs.Locked() })
		return locked
	}, time.Second, time.Millisecond)

	presenter.SetConfigLocked(false)
	require.Eventually(t, func() bool {
		var locked bool
		fyne.DoAndWait(func() { locked = presenter.prefs.Locked() })
		return !locked
	}, time.Second, time.Millisecond)
}
