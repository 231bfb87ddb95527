// Package telemetry configures structured logging.
package telemetry

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger creates a console logger writing to out at the given level.
// Unknown level names fall back to info. Diagnostics go to stderr in
// practice; stdout is reserved for machine-readable results.
func NewLogger(out io.Writer, level string) zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	return zerolog.New(writer).With().Timestamp().Logger().Level(parseLevel(level))
}

// Discard returns a logger that drops everything, for tests.
func Discard() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
