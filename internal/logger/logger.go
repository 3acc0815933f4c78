package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New builds the application logger. Production gets plain JSON on stdout;
// everything else gets the console writer and debug level.
func New(env string) zerolog.Logger {
	level := zerolog.InfoLevel
	w := io.Writer(os.Stdout)

	if env != "prod" {
		level = zerolog.DebugLevel
		consoleWriter := zerolog.NewConsoleWriter()
		consoleWriter.Out = os.Stdout
		consoleWriter.TimeFormat = time.DateTime
		w = consoleWriter
	}

	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}
