package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"focusbell/internal/core/model"
	"focusbell/internal/core/scheduler"

	"github.com/rs/zerolog"
)

// Options contains runtime options for the Controller.
type Options struct {
	// TickInterval paces the long break countdown; defaults to one second.
	TickInterval time.Duration
	// CycleLimit makes Run return after that many completed focus cycles.
	// Zero means no limit.
	CycleLimit int
	Logger     *zerolog.Logger
}

// Controller connects a FocusScheduler to a Presenter. It forwards host
// commands to the scheduler, translates scheduler events into presenter
// calls, and runs the long break that follows a completed cycle.
type Controller struct {
	mu              sync.Mutex
	scheduler       *scheduler.FocusScheduler
	presenter       Presenter
	settings        model.Settings
	runConfig       model.SchedulerConfig
	options         Options
	completedCycles int
	breakCancel     context.CancelFunc
	limitReached    chan struct{}
	log             zerolog.Logger
}

// New creates a Controller and applies settings to the scheduler.
func New(focus *scheduler.FocusScheduler, presenter Presenter, settings model.Settings, options Options) (*Controller, error) {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	logger := zerolog.Nop()
	if options.Logger != nil {
		logger = *options.Logger
	}

	controller := &Controller{
		scheduler:    focus,
		presenter:    presenter,
		options:      options,
		limitReached: make(chan struct{}),
		log:          logger.With().Str("component", "controller").Logger(),
	}
	if err := controller.ApplySettings(settings); err != nil {
		return nil, err
	}
	controller.runConfig = focus.Config()
	return controller, nil
}

// Settings returns the settings currently applied.
func (controller *Controller) Settings() model.Settings {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.settings
}

// ApplySettings validates settings and hands them to the scheduler. A max
// interval below the min interval is raised to the min interval. Changes
// reach a running cycle only on its next start.
func (controller *Controller) ApplySettings(settings model.Settings) error {
	if settings.MaxInterval < settings.MinInterval {
		settings.MaxInterval = settings.MinInterval
	}
	if !settings.AlertSound.Valid() {
		settings.AlertSound = model.SoundShort
	}
	if err := controller.scheduler.Configure(settings.SchedulerConfig()); err != nil {
		return fmt.Errorf("apply settings: %w", err)
	}

	controller.mu.Lock()
	controller.settings = settings
	controller.mu.Unlock()

	if phase := controller.scheduler.Phase(); phase == scheduler.PhaseRunning || phase == scheduler.PhasePaused {
		controller.log.Info().Msg("settings saved; they apply from the next focus cycle")
	}
	return nil
}

// SetAlertSound selects the reminder alert.
func (controller *Controller) SetAlertSound(sound model.Sound) {
	if !sound.Valid() {
		return
	}
	controller.mu.Lock()
	controller.settings.AlertSound = sound
	controller.mu.Unlock()
}

// TestSound plays sound, or the selected reminder alert when sound is not
// a known alert.
func (controller *Controller) TestSound(sound model.Sound) {
	if !sound.Valid() {
		sound = controller.Settings().AlertSound
	}
	controller.presenter.PlayAlert(sound)
}

// Phase returns the scheduler phase.
func (controller *Controller) Phase() scheduler.Phase {
	return controller.scheduler.Phase()
}

// Start begins a new focus cycle, or resumes a paused one.
func (controller *Controller) Start() {
	phase := controller.scheduler.Phase()
	if phase == scheduler.PhaseRunning || phase == scheduler.PhaseStopping {
		return
	}
	controller.cancelLongBreak()

	resuming := phase == scheduler.PhasePaused
	if !resuming {
		controller.mu.Lock()
		controller.runConfig = controller.scheduler.Config()
		controller.mu.Unlock()
	}

	controller.scheduler.Start()
	controller.presenter.SetPhase(controller.scheduler.Phase())
	if resuming {
		controller.presenter.SetStatus("Resumed")
		return
	}
	controller.presenter.SetConfigLocked(true)
	controller.presenter.SetStatus("Focusing...")
	controller.log.Info().Msg("focus cycle started")
}

// Resume continues a paused cycle.
func (controller *Controller) Resume() {
	if controller.scheduler.Phase() != scheduler.PhasePaused {
		return
	}
	controller.Start()
}

// Pause freezes a running cycle and reports whether this call paused it.
func (controller *Controller) Pause() bool {
	if !controller.scheduler.Pause() {
		return false
	}
	controller.presenter.SetPhase(controller.scheduler.Phase())
	controller.presenter.SetStatus("Paused")
	return true
}

// TogglePause pauses a running cycle or resumes a paused one.
func (controller *Controller) TogglePause() {
	switch controller.scheduler.Phase() {
	case scheduler.PhaseRunning:
		controller.Pause()
	case scheduler.PhasePaused:
		controller.Resume()
	}
}

// Stop ends the current cycle or long break. It blocks until the
// scheduler's tick loop has exited.
func (controller *Controller) Stop() {
	controller.cancelLongBreak()
	controller.presenter.SetStatus("Stopping...")
	controller.scheduler.Stop()
	controller.presenter.SetPhase(controller.scheduler.Phase())
	controller.presenter.SetConfigLocked(false)
	controller.presenter.SetStatus("Stopped")
}

// Restart stops whatever is running and starts a fresh focus cycle.
func (controller *Controller) Restart() {
	controller.cancelLongBreak()
	controller.scheduler.Stop()
	controller.Start()
}

// SkipLongBreak closes the long break without starting a new cycle.
func (controller *Controller) SkipLongBreak() {
	if !controller.cancelLongBreak() {
		return
	}
	controller.presenter.SetPhase(controller.scheduler.Phase())
	controller.presenter.SetStatus("Ready")
}

// CompletedCycles returns the number of focus cycles finished so far.
func (controller *Controller) CompletedCycles() int {
	controller.mu.Lock()
	defer controller.mu.Unlock()
	return controller.completedCycles
}

// Run consumes scheduler events until ctx is done, the event channel is
// closed, or the cycle limit is reached.
func (controller *Controller) Run(ctx context.Context) error {
	events := controller.scheduler.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-controller.limitReached:
			return nil
		case event, ok := <-events:
			if !ok {
				return nil
			}
			controller.handle(event)
		}
	}
}

func (controller *Controller) handle(event scheduler.Event) {
	controller.mu.Lock()
	settings := controller.settings
	runConfig := controller.runConfig
	controller.mu.Unlock()

	switch event.Type {
	case scheduler.EventStateReset:
		controller.presenter.ResetProgress(runConfig.FocusDurationMinutes, runConfig.RestDurationSeconds)
		controller.presenter.SetResting(false)
		// A reset also opens every new run, which keeps the lock.
		if phase := controller.scheduler.Phase(); phase != scheduler.PhaseRunning && phase != scheduler.PhasePaused {
			controller.presenter.SetConfigLocked(false)
		}
	case scheduler.EventFocusProgress:
		controller.presenter.SetFocusProgress(event.ElapsedMinutes, runConfig.FocusDurationMinutes)
	case scheduler.EventReminderProgress:
		controller.presenter.SetReminderProgress(event.Current, event.Total)
	case scheduler.EventBreakProgress:
		controller.presenter.SetBreakProgress(event.Current, event.Total)
	case scheduler.EventPlayReminderSound:
		controller.presenter.PlayAlert(settings.AlertSound)
		controller.presenter.SetResting(true)
		controller.presenter.SetStatus(fmt.Sprintf("Rest for %d seconds!", runConfig.RestDurationSeconds))
	case scheduler.EventPlayRestEndSound:
		controller.presenter.PlayAlert(model.SoundShort)
		controller.presenter.SetResting(false)
		controller.presenter.SetStatus("Rest over, back to focus!")
	case scheduler.EventBreakTimeReached:
		controller.completeCycle(runConfig)
	case scheduler.EventShutdownTimeout:
		controller.log.Warn().Str("reason", event.Message).Msg("scheduler was force-stopped")
		controller.presenter.SetStatus("Timer was force-stopped")
	}
}

func (controller *Controller) completeCycle(runConfig model.SchedulerConfig) {
	controller.mu.Lock()
	controller.completedCycles++
	completed := controller.completedCycles
	limitHit := controller.options.CycleLimit > 0 && completed == controller.options.CycleLimit
	controller.mu.Unlock()

	controller.log.Info().Int("cycles", completed).Msg("focus cycle complete")
	controller.presenter.PlayAlert(model.SoundLong)
	controller.presenter.SetResting(false)
	controller.presenter.SetPhase(controller.scheduler.Phase())
	controller.presenter.SetStatus("Focus cycle complete!")

	if limitHit {
		close(controller.limitReached)
		return
	}
	controller.presenter.AskLongBreak(runConfig.FocusDurationMinutes, controller.decide)
}

func (controller *Controller) decide(decision Decision) {
	controller.log.Debug().Stringer("decision", decision).Msg("long break decision")
	switch decision {
	case DecisionRest:
		controller.startLongBreak()
	case DecisionRestart:
		controller.Restart()
	}
}

func (controller *Controller) startLongBreak() {
	controller.scheduler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	controller.mu.Lock()
	if controller.breakCancel != nil {
		controller.breakCancel()
	}
	controller.breakCancel = cancel
	total := controller.settings.LongBreakDuration
	controller.mu.Unlock()

	controller.presenter.ShowLongBreak(total)
	controller.presenter.SetStatus("Long break")

	countdown := Countdown{
		Total:    total,
		Interval: controller.options.TickInterval,
		OnTick: func(remaining time.Duration) {
			controller.presenter.SetLongBreakRemaining(remaining, total)
		},
		OnDone: func() {
			controller.finishLongBreak(ctx)
		},
	}
	go countdown.Run(ctx)
}

func (controller *Controller) finishLongBreak(ctx context.Context) {
	controller.mu.Lock()
	if ctx.Err() != nil {
		controller.mu.Unlock()
		return
	}
	controller.breakCancel = nil
	controller.mu.Unlock()

	controller.presenter.HideLongBreak()
	controller.presenter.PlayAlert(model.SoundLong)
	controller.presenter.SetPhase(controller.scheduler.Phase())
	controller.presenter.SetConfigLocked(false)
	controller.presenter.SetStatus("Break over, ready for a new focus cycle")
	controller.log.Info().Msg("long break finished")
}

// cancelLongBreak stops a running long break countdown and reports whether
// there was one.
func (controller *Controller) cancelLongBreak() bool {
	controller.mu.Lock()
	cancel := controller.breakCancel
	controller.breakCancel = nil
	controller.mu.Unlock()

	if cancel == nil {
		return false
	}
	cancel()
	controller.presenter.HideLongBreak()
	return true
}
