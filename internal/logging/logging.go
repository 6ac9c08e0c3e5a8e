package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "15:04:05.000"

// Options configures the application logger.
type Options struct {
	Level string
	JSON  bool
	Out   io.Writer
}

// New creates a zerolog logger. Console output is the default; JSON
// writes one object per line.
func New(options Options) zerolog.Logger {
	out := options.Out
	if out == nil {
		out = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.ErrorFieldName = "err"

	writer := out
	if !options.JSON {
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat}
	}

	return zerolog.New(writer).
		Level(ParseLevel(options.Level)).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level; unknown names fall back
// to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
