// Package logging builds the zerolog logger used across konnektoren.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatAuto    = "auto"
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New returns a logger writing to w at the given level. An unparsable level
// falls back to info. With FormatAuto the console writer is used when w is a
// terminal.
func New(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	out := w
	if useConsole(w, format) {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

// Stderr returns a logger writing to os.Stderr.
func Stderr(level, format string) zerolog.Logger {
	return New(os.Stderr, level, format)
}

func useConsole(w io.Writer, format string) bool {
	switch format {
	case FormatConsole:
		return true
	case FormatJSON:
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
