package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var global zerolog.Logger

func init() {
	zerolog.TimestampFieldName = "timestamp"
	global = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Init configures the global logger for the given environment. Dev gets a
// human-readable console writer at debug level, everything else structured
// JSON at info level.
func Init(env string) {
	w := io.Writer(os.Stdout)
	level := zerolog.InfoLevel

	if env == "dev" {
		level = zerolog.DebugLevel
		console := zerolog.NewConsoleWriter()
		console.TimeFormat = time.DateTime
		console.Out = os.Stdout
		w = console
	}

	zerolog.SetGlobalLevel(level)
	global = zerolog.New(w).With().Timestamp().Logger()
}

// L returns the global logger.
func L() *zerolog.Logger {
	return &global
}
