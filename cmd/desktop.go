package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"focusbell/internal/app"
	"focusbell/internal/core/model"
	"focusbell/internal/core/scheduler"
	"focusbell/internal/platform"
	"focusbell/internal/storage"
	"focusbell/internal/ui/gui"
	"focusbell/resources"
)

func runDesktop(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		if activateErr := platform.ActivateRunningInstance(appName); activateErr != nil {
			logger.Warn().Err(activateErr).Msg("could not reach running instance")
		}
		logger.Info().Msg("already running; activated existing window")
		return nil
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	settingsPath, err := storage.SettingsPath(appName)
	if err != nil {
		return err
	}
	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", settingsPath).Msg("using default settings")
		settings = model.DefaultSettings()
	}
	settings = withDebugTimings(settings)

	fyneApp := fyneapp.NewWithID("com.focusbell.app")
	fyneApp.SetIcon(resources.MustLogo(resources.AppIcon))

	focus := scheduler.New(scheduler.Options{Logger: &logger})
	defer focus.Close()

	var (
		controller *app.Controller
		idle       *app.IdleMonitor
		presenter  *gui.Presenter
		applied    = newAppliedSettings(settings)
	)
	applySettings := func(updated model.Settings) {
		if err := controller.ApplySettings(updated); err != nil {
			logger.Warn().Err(err).Msg("rejected settings")
			return
		}
		idle.SetEnabled(updated.IdlePauseEnabled, updated.IdlePauseAfter)
		if err := platform.SyncAutostart(platform.NewService(), appName, updated.LaunchAtLogin); err != nil {
			logger.Warn().Err(err).Msg("could not update launch at login")
		}
	}

	presenter = gui.New(fyneApp, gui.Options{
		Title:    appName,
		Settings: settings,
		OnSave: func(updated model.Settings) {
			applied.Changed(updated)
			applySettings(updated)
			if debugMode {
				logger.Info().Msg("debug mode; settings not written to disk")
				return
			}
			if err := storage.SaveSettings(settingsPath, updated); err != nil {
				logger.Error().Err(err).Str("path", settingsPath).Msg("save settings")
			}
		},
		OnTestSound: func(sound model.Sound) {
			controller.TestSound(sound)
		},
		OnQuit: fyneApp.Quit,
	})

	controller, err = app.New(focus, presenter, settings, app.Options{Logger: &logger})
	if err != nil {
		return err
	}
	presenter.Bind(controller)
	idle = app.NewIdleMonitor(platform.NewIdleProvider(), controller, 0, logger)
	applySettings(settings)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runLogged(logger, "controller", func() error { return controller.Run(ctx) })
	go runLogged(logger, "idle monitor", func() error { return idle.Run(ctx) })
	go runLogged(logger, "instance guard", func() error { return guard.Serve(ctx, presenter.ShowMain) })
	if !debugMode {
		go runLogged(logger, "settings watcher", func() error {
			return storage.WatchSettings(ctx, settingsPath, logger, func(updated model.Settings) {
				// Our own save reads back unchanged.
				if !applied.Changed(updated) {
					return
				}
				applySettings(updated)
				presenter.UpdateSettings(updated)
			})
		})
	}

	logger.Info().
		Str("settings", settingsPath).
		Bool("debug", debugMode).
		Msg("focusbell started")

	presenter.ShowMain()
	fyneApp.Run()

	cancel()
	return nil
}

func runLogged(logger zerolog.Logger, name string, run func() error) {
	if err := run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Str("task", name).Msg("background task failed")
	}
}

// appliedSettings remembers the settings last handed to the controller.
type appliedSettings struct {
	mu      sync.Mutex
	current model.Settings
}

func newAppliedSettings(settings model.Settings) *appliedSettings {
	return &appliedSettings{current: settings}
}

// Changed records settings and reports whether they differ from the
// previous ones.
func (applied *appliedSettings) Changed(settings model.Settings) bool {
	applied.mu.Lock()
	defer applied.mu.Unlock()
	if settings == applied.current {
		return false
	}
	applied.current = settings
	return true
}
