package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger for timewalk binaries and examples. The
// library itself only ever sees a logr.Logger (wrap this one with
// zerologr).
func New() *zerolog.Logger {
	return NewWithOutput(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "2006-01-02T15:04:05.999Z07:00"})
}

// NewWithOutput builds the logger against an arbitrary writer, which
// tests use to capture output.
func NewWithOutput(output io.Writer) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	logger := zerolog.New(output).With().Timestamp().Logger()
	return &logger
}
