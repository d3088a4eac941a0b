// +build !logless

// Package logger provides the process-wide structured logger used by
// every rastershift component, from the translation kernel down to the
// CLI entry point.
package logger

import (
	"os"

	"github.com/rs/zerolog"
	logger "github.com/rs/zerolog/log"
)

// Log is the package-level logger. Components that want a named
// sub-logger should call With(component) rather than tagging fields by
// hand on every call site.
var Log = logger.With().Caller().Logger().Output(zerolog.ConsoleWriter{Out: os.Stderr})

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// With returns a child logger tagged with the given component name,
// mirroring the "sirius"/"shift_streamer"/"shifted_input_stream" tags
// used throughout the original translation pipeline's log statements.
func With(component string) zerolog.Logger {
	return Log.With().Str("component", component).Logger()
}
