// Package logger builds the process logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// New returns a logger writing to stderr and installs it as the global
// zerolog logger. format "console" gives human readable output, anything
// else JSON. Unknown levels fall back to info.
func New(level, format string) zerolog.Logger {
	l := To(os.Stderr, level, format)
	zerolog.SetGlobalLevel(l.GetLevel())
	log.Logger = l
	return l
}

// To is New for an arbitrary writer. It leaves the global logger and the
// global level alone.
func To(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	if format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
