package log

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the shared process logger. Commands tune it at startup.
var Log zerolog.Logger

func SetLevelDebug() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
}

func SetLevelInfo() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

// Console switches the logger to human-readable output for the CLI tools.
func Console() {
	Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	Log = zerolog.New(os.Stderr).With().Timestamp().Logger()
}
