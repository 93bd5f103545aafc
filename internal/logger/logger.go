package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the process-wide logger. Debug mode gets a human-readable
// console writer, everything else logs JSON for log shippers.
func New(ginMode string) zerolog.Logger {
	if ginMode == "release" {
		return zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(writer).With().Timestamp().Logger().Level(zerolog.DebugLevel)
}
