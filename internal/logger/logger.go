package logger

import (
	"os"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// New builds the process logger. The level comes straight from LOG_LEVEL so
// logging works before the config (which itself wants a logger) is loaded.
func New() zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	return zerolog.New(os.Stdout).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(level)
}

var Module = fx.Provide(New)
