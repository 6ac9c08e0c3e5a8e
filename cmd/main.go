package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"focusbell/internal/core/model"
	"focusbell/internal/logging"
)

const appName = "FocusBell"

var (
	logLevel  string
	logJSON   bool
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:           "focusbell",
	Short:         "Focus timer with randomized rest reminders",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDesktop,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write logs as JSON lines")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "use a one minute focus cycle with short reminders")
	rootCmd.AddCommand(headlessCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := newLogger()
		logger.Error().Err(err).Msg("focusbell failed")
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return logging.New(logging.Options{Level: logLevel, JSON: logJSON})
}

// withDebugTimings replaces the timing fields of settings with the debug
// preset when --debug is set.
func withDebugTimings(settings model.Settings) model.Settings {
	if !debugMode {
		return settings
	}
	preset := model.DebugSettings()
	settings.FocusDuration = preset.FocusDuration
	settings.MinInterval = preset.MinInterval
	settings.MaxInterval = preset.MaxInterval
	settings.RestDuration = preset.RestDuration
	settings.LongBreakDuration = preset.LongBreakDuration
	return settings
}
