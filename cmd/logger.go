package cmd

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// logger is the logger of the subcommands, silent until Setup.
var logger = zerolog.Nop()

// NewLogger creates a structured logger writing to w.
func NewLogger(level string, pretty bool, w io.Writer) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
