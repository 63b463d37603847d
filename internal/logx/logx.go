// Package logx builds the console loggers used by the command line tools.
package logx

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// NewConsole returns a human-readable logger writing to out.
// Unknown levels fall back to info.
func NewConsole(out io.Writer, level string) zerolog.Logger {
	lvl, _ := ParseLevel(level)
	cw := zerolog.ConsoleWriter{Out: out, TimeFormat: consoleTimeFormat, NoColor: true}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
}

// ParseLevel maps a case-insensitive level name onto a zerolog level.
// It reports false and returns info for names it does not know.
func ParseLevel(s string) (zerolog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel, true
	case "DEBUG":
		return zerolog.DebugLevel, true
	case "INFO", "":
		return zerolog.InfoLevel, true
	case "WARN", "WARNING":
		return zerolog.WarnLevel, true
	case "ERROR":
		return zerolog.ErrorLevel, true
	case "OFF", "DISABLED":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}
