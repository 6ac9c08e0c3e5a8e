package gui

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"focusbell/internal/app"
	"focusbell/internal/core/model"
	"focusbell/internal/core/scheduler"
	"focusbell/internal/ui/animation"
	"focusbell/internal/ui/overlay"
	"focusbell/internal/ui/preferences"
	"focusbell/internal/ui/progress"
	"focusbell/internal/ui/tray"
	"focusbell/resources"
)

// Actions are the commands the window and tray forward to the controller.
type Actions interface {
	Start()
	TogglePause()
	Stop()
	Restart()
	SkipLongBreak()
}

// Options configures the desktop presenter.
type Options struct {
	Title       string
	Settings    model.Settings
	OnSave      func(model.Settings)
	OnTestSound func(model.Sound)
	OnQuit      func()
}

// Presenter renders controller output with fyne. Every method is safe to
// call from any goroutine.
type Presenter struct {
	app         fyne.App
	title       string
	window      fyne.Window
	status      *widget.Label
	display     *progress.Display
	startButton *widget.Button
	pauseButton *widget.Button
	stopButton  *widget.Button
	prefs       *preferences.Window
	overlay     *overlay.Window
	tray        *tray.Manager
	pulse       *animation.Pulse
	actions     Actions
	phase       scheduler.Phase

	// mu guards resting and paused, which decide whether the tray pulses.
	mu      sync.Mutex
	resting bool
	paused  bool
}

var _ app.Presenter = (*Presenter)(nil)

// New builds the main window, tray menu, preferences and long break window.
// It must be called on the fyne main goroutine before the app runs.
func New(fyneApp fyne.App, options Options) *Presenter {
	presenter := &Presenter{
		app:     fyneApp,
		title:   options.Title,
		window:  fyneApp.NewWindow(options.Title),
		status:  widget.NewLabel("Ready"),
		display: progress.New(),
		phase:   scheduler.PhaseIdle,
	}

	presenter.startButton = widget.NewButton("Start", presenter.dispatch(func(actions Actions) { actions.Start() }))
	presenter.pauseButton = widget.NewButton("Pause", presenter.dispatch(func(actions Actions) { actions.TogglePause() }))
	presenter.stopButton = widget.NewButton("Stop", presenter.dispatch(func(actions Actions) { actions.Stop() }))

	presenter.prefs = preferences.New(fyneApp, options.Title, options.Settings, options.OnSave, options.OnTestSound)
	presenter.overlay = overlay.New(fyneApp, options.Title, overlay.Callbacks{
		OnExit:    presenter.dispatch(func(actions Actions) { actions.SkipLongBreak() }),
		OnRestart: presenter.dispatch(func(actions Actions) { actions.Restart() }),
	})

	settingsButton := widget.NewButton("Preferences", presenter.prefs.Show)
	buttons := container.NewHBox(presenter.startButton, presenter.pauseButton, presenter.stopButton, layout.NewSpacer(), settingsButton)
	presenter.window.SetContent(container.NewBorder(presenter.status, buttons, nil, nil, presenter.display.Content()))
	presenter.window.SetCloseIntercept(presenter.window.Hide)
	presenter.window.Resize(fyne.NewSize(420, 300))

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		presenter.tray = tray.New(desktopApp, options.Title, tray.Callbacks{
			OnStart:       presenter.dispatch(func(actions Actions) { actions.Start() }),
			OnTogglePause: presenter.dispatch(func(actions Actions) { actions.TogglePause() }),
			OnStop:        presenter.dispatch(func(actions Actions) { actions.Stop() }),
			OnSkipBreak:   presenter.dispatch(func(actions Actions) { actions.SkipLongBreak() }),
			OnPreferences: presenter.prefs.Show,
			OnQuit:        options.OnQuit,
		})
		presenter.tray.SetIcon(resources.MustLogo(resources.FocusIcon))
		desktopApp.SetSystemTrayWindow(presenter.window)
	}
	presenter.pulse = animation.New(animation.DefaultConfig(), func(icon fyne.Resource) {
		fyne.Do(func() { presenter.setTrayIcon(icon) })
	})

	presenter.applyPhase(scheduler.PhaseIdle)
	return presenter
}

// Bind connects buttons and menu items to actions.
func (presenter *Presenter) Bind(actions Actions) {
	presenter.actions = actions
}

// ShowMain brings the main window to the front.
func (presenter *Presenter) ShowMain() {
	fyne.Do(func() {
		presenter.window.Show()
		presenter.window.RequestFocus()
	})
}

// UpdateSettings refreshes the preferences form, e.g. after the settings
// file changed on disk.
func (presenter *Presenter) UpdateSettings(settings model.Settings) {
	fyne.Do(func() { presenter.prefs.UpdateSettings(settings) })
}

// dispatch runs an action off the UI goroutine since Stop blocks.
func (presenter *Presenter) dispatch(action func(Actions)) func() {
	return func() {
		if presenter.actions == nil {
			return
		}
		go action(presenter.actions)
	}
}

func (presenter *Presenter) ResetProgress(focusMinutes, restSeconds int) {
	fyne.Do(func() { presenter.display.Reset(focusMinutes, restSeconds) })
}

func (presenter *Presenter) SetFocusProgress(elapsedMinutes, totalMinutes int) {
	fyne.Do(func() { presenter.display.SetFocus(elapsedMinutes, totalMinutes) })
}

func (presenter *Presenter) SetReminderProgress(current, total int) {
	fyne.Do(func() { presenter.display.SetReminder(current, total) })
}

func (presenter *Presenter) SetBreakProgress(current, total int) {
	fyne.Do(func() { presenter.display.SetRest(current, total) })
}

func (presenter *Presenter) SetResting(resting bool) {
	presenter.mu.Lock()
	presenter.resting = resting
	paused := presenter.paused
	presenter.mu.Unlock()

	switch {
	case resting && !paused:
		presenter.startPulse()
	case !resting && presenter.pulse.Running():
		presenter.pulse.Stop(resources.MustLogo(resources.FocusIcon))
	}
}

// SetPhase also freezes the rest pulse while paused and picks it up again
// on resume.
func (presenter *Presenter) SetPhase(phase scheduler.Phase) {
	presenter.mu.Lock()
	presenter.paused = phase == scheduler.PhasePaused
	resting := presenter.resting
	presenter.mu.Unlock()

	switch {
	case phase == scheduler.PhasePaused && presenter.pulse.Running():
		presenter.pulse.Stop(phaseIcon(phase))
	case phase == scheduler.PhaseRunning && resting && !presenter.pulse.Running():
		presenter.startPulse()
	}
	fyne.Do(func() { presenter.applyPhase(phase) })
}

func (presenter *Presenter) startPulse() {
	presenter.pulse.Start(context.Background(),
		resources.MustLogo(resources.RestIcon),
		resources.MustLogo(resources.RestDimIcon))
}

// SetConfigLocked disables the preferences form while a cycle runs.
func (presenter *Presenter) SetConfigLocked(locked bool) {
	fyne.Do(func() { presenter.prefs.SetConfigLocked(locked) })
}

func (presenter *Presenter) SetStatus(status string) {
	fyne.Do(func() {
		presenter.status.SetText(status)
		if presenter.tray != nil {
			presenter.tray.SetStatus(status)
		}
	})
}

// PlayAlert raises a desktop notification in place of a sound.
func (presenter *Presenter) PlayAlert(sound model.Sound) {
	presenter.app.SendNotification(fyne.NewNotification(presenter.title, alertMessage(sound)))
}

func (presenter *Presenter) AskLongBreak(focusMinutes int, decide func(app.Decision)) {
	fyne.Do(func() {
		presenter.window.Show()
		overlay.AskLongBreak(presenter.window, focusMinutes,
			func() { go decide(app.DecisionRest) },
			func() { go decide(app.DecisionRestart) })
	})
}

func (presenter *Presenter) ShowLongBreak(total time.Duration) {
	fyne.Do(func() {
		presenter.overlay.Show(total)
		if presenter.tray != nil {
			presenter.tray.SetInBreak(true)
		}
	})
}

func (presenter *Presenter) SetLongBreakRemaining(remaining, total time.Duration) {
	fyne.Do(func() { presenter.overlay.SetRemaining(remaining, total) })
}

func (presenter *Presenter) HideLongBreak() {
	fyne.Do(func() {
		presenter.overlay.Hide()
		if presenter.tray != nil {
			presenter.tray.SetInBreak(false)
		}
	})
}

func (presenter *Presenter) applyPhase(phase scheduler.Phase) {
	presenter.phase = phase
	active := phase == scheduler.PhaseRunning || phase == scheduler.PhasePaused

	setEnabled(presenter.startButton, !active && phase != scheduler.PhaseStopping)
	setEnabled(presenter.pauseButton, active)
	setEnabled(presenter.stopButton, active)
	if phase == scheduler.PhasePaused {
		presenter.pauseButton.SetText("Resume")
	} else {
		presenter.pauseButton.SetText("Pause")
	}

	if presenter.tray == nil {
		return
	}
	presenter.tray.SetPhase(phase)
	if !presenter.pulse.Running() {
		presenter.setTrayIcon(phaseIcon(phase))
	}
}

func (presenter *Presenter) setTrayIcon(icon fyne.Resource) {
	if presenter.tray != nil {
		presenter.tray.SetIcon(icon)
	}
}

func setEnabled(button *widget.Button, enabled bool) {
	if enabled {
		button.Enable()
		return
	}
	button.Disable()
}

func phaseIcon(phase scheduler.Phase) fyne.Resource {
	if phase == scheduler.PhasePaused {
		return resources.MustLogo(resources.PausedIcon)
	}
	return resources.MustLogo(resources.FocusIcon)
}

func alertMessage(sound model.Sound) string {
	if sound == model.SoundLong {
		return "Ding-dong! Time for a longer pause."
	}
	return "Ding!"
}
