package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"focusbell/internal/app"
	"focusbell/internal/core/model"
	"focusbell/internal/core/scheduler"
	"focusbell/internal/storage"
)

var (
	headlessFocus       int
	headlessMinInterval int
	headlessMaxInterval int
	headlessRest        int
	headlessCycles      int
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run focus cycles without a window, logging every reminder",
	RunE:  runHeadless,
}

func init() {
	headlessCmd.Flags().IntVar(&headlessFocus, "focus", 0, "focus cycle length in minutes (default from settings)")
	headlessCmd.Flags().IntVar(&headlessMinInterval, "min-interval", 0, "shortest reminder interval in seconds")
	headlessCmd.Flags().IntVar(&headlessMaxInterval, "max-interval", 0, "longest reminder interval in seconds")
	headlessCmd.Flags().IntVar(&headlessRest, "rest", 0, "rest length in seconds")
	headlessCmd.Flags().IntVar(&headlessCycles, "cycles", 1, "focus cycles to run before exiting (0 runs until interrupted)")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	settings := model.DefaultSettings()
	if path, err := storage.SettingsPath(appName); err == nil {
		if loaded, loadErr := storage.LoadSettings(path); loadErr == nil {
			settings = loaded
		} else {
			logger.Warn().Err(loadErr).Msg("using default settings")
		}
	}
	settings = headlessSettings(cmd, withDebugTimings(settings))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	focus := scheduler.New(scheduler.Options{Logger: &logger})
	defer focus.Close()

	controller, err := app.New(focus, newLogPresenter(logger), settings, app.Options{
		Logger:     &logger,
		CycleLimit: headlessCycles,
	})
	if err != nil {
		return err
	}

	logger.Info().
		Dur("focus", settings.FocusDuration).
		Dur("min_interval", settings.MinInterval).
		Dur("max_interval", settings.MaxInterval).
		Dur("rest", settings.RestDuration).
		Int("cycles", headlessCycles).
		Msg("headless run started")

	controller.Start()
	err = controller.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info().Msg("interrupted")
		return nil
	}
	if err == nil {
		logger.Info().Int("cycles", controller.CompletedCycles()).Msg("headless run finished")
	}
	return err
}

// headlessSettings overrides settings with the timing flags that were set.
func headlessSettings(cmd *cobra.Command, settings model.Settings) model.Settings {
	flags := cmd.Flags()
	if flags.Changed("focus") {
		settings.FocusDuration = time.Duration(headlessFocus) * time.Minute
	}
	if flags.Changed("min-interval") {
		settings.MinInterval = time.Duration(headlessMinInterval) * time.Second
	}
	if flags.Changed("max-interval") {
		settings.MaxInterval = time.Duration(headlessMaxInterval) * time.Second
	}
	if flags.Changed("rest") {
		settings.RestDuration = time.Duration(headlessRest) * time.Second
	}
	return settings
}

// logPresenter writes every controller update to the log. It answers the
// long break question with Restart so cycles run back to back.
type logPresenter struct {
	log zerolog.Logger
}

func newLogPresenter(logger zerolog.Logger) *logPresenter {
	return &logPresenter{log: logger.With().Str("component", "presenter").Logger()}
}

func (presenter *logPresenter) ResetProgress(focusMinutes, restSeconds int) {
	presenter.log.Debug().Int("focus_minutes", focusMinutes).Int("rest_seconds", restSeconds).Msg("progress reset")
}

func (presenter *logPresenter) SetFocusProgress(elapsedMinutes, totalMinutes int) {
	presenter.log.Info().Int("elapsed", elapsedMinutes).Int("total", totalMinutes).Msg("focus minutes")
}

func (presenter *logPresenter) SetReminderProgress(current, total int) {
	presenter.log.Trace().Int("current", current).Int("total", total).Msg("reminder progress")
}

func (presenter *logPresenter) SetBreakProgress(current, total int) {
	presenter.log.Debug().Int("current", current).Int("total", total).Msg("rest progress")
}

func (presenter *logPresenter) SetResting(resting bool) {
	presenter.log.Trace().Bool("resting", resting).Msg("resting")
}

func (presenter *logPresenter) SetPhase(phase scheduler.Phase) {
	presenter.log.Debug().Str("phase", string(phase)).Msg("phase")
}

func (presenter *logPresenter) SetStatus(status string) {
	presenter.log.Info().Msg(status)
}

func (presenter *logPresenter) PlayAlert(sound model.Sound) {
	presenter.log.Info().Str("sound", string(sound)).Msg("alert")
}

// SetConfigLocked is a no-op; settings only change through the file.
func (presenter *logPresenter) SetConfigLocked(bool) {}

func (presenter *logPresenter) AskLongBreak(focusMinutes int, decide func(app.Decision)) {
	presenter.log.Info().Int("focus_minutes", focusMinutes).Msg("cycle complete; restarting")
	go decide(app.DecisionRestart)
}

func (presenter *logPresenter) ShowLongBreak(total time.Duration) {
	presenter.log.Info().Dur("total", total).Msg("long break")
}

func (presenter *logPresenter) SetLongBreakRemaining(remaining, total time.Duration) {
	presenter.log.Debug().Dur("remaining", remaining).Msg("long break remaining")
}

func (presenter *logPresenter) HideLongBreak() {
	presenter.log.Debug().Msg("long break closed")
}
