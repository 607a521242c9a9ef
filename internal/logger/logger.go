// Package logger configures the global zerolog logger for the command line.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel keeps the inventory output free of diagnostics
const DefaultLevel = zerolog.WarnLevel

// Configure points the global logger at w. The level comes from LOG_LEVEL,
// raised by verbosity (1 = debug, 2 or more = trace). LOG_TYPE=json writes
// raw JSON lines instead of the console format.
func Configure(w io.Writer, verbosity int) {
	level := ParseLevel(os.Getenv("LOG_LEVEL"), DefaultLevel)
	switch {
	case verbosity >= 2:
		level = zerolog.TraceLevel
	case verbosity == 1 && level > zerolog.DebugLevel:
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	var out io.Writer
	if strings.ToLower(os.Getenv("LOG_TYPE")) == "json" {
		out = w
	} else {
		out = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = w
			cw.NoColor = !isTerminal(w)
			cw.TimeFormat = "15:04:05.999 |"
		})
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
}

// ParseLevel maps a level name to a zerolog level, fallback when empty or
// unknown.
func ParseLevel(s string, fallback zerolog.Level) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	}
	return fallback
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ConfigureTestLogging keeps test output free of diagnostics. LOG_LEVEL
// still turns them back on. Call it from TestMain.
func ConfigureTestLogging() {
	zerolog.SetGlobalLevel(ParseLevel(os.Getenv("LOG_LEVEL"), zerolog.Disabled))
}
