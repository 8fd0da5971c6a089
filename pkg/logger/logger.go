// Package logger provides the process-wide structured logger backed by
// zerolog. provctl is an interactive tool, so output defaults to the
// console writer on stderr; scripts can request raw JSON.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger behaviour at initialisation time.
type Options struct {
	// Level is the minimum level: trace, debug, info, warn, error.
	// Unrecognised or empty values fall back to "warn"; a CLI should be
	// quiet unless asked otherwise.
	Level string
	// JSON disables the console writer and emits structured JSON.
	JSON bool
	// Output defaults to os.Stderr so log lines never mix with command
	// output on stdout.
	Output io.Writer
}

var (
	instance zerolog.Logger
	once     sync.Once
)

// Init initialises the singleton. Only the first call has any effect.
func Init(opts Options) zerolog.Logger {
	once.Do(func() {
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		if !opts.JSON {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
		}
		instance = zerolog.New(out).
			Level(parseLevel(opts.Level)).
			With().
			Timestamp().
			Logger()
	})
	return instance
}

// Get returns the singleton, initialising it with defaults when Init has
// not run yet.
func Get() zerolog.Logger {
	Init(Options{})
	return instance
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}
