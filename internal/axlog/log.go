// Package axlog provides the structured logging surface used throughout the
// compositor core, built on github.com/rs/zerolog. It replaces ad-hoc
// log.Printf calls with leveled, field-structured events so a host process
// can route them to whatever sink it prefers.
package axlog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps a zerolog.Logger pre-bound to a component name, so call sites
// never repeat component="workspace" on every event.
type Logger struct {
	z zerolog.Logger
}

var base = zerolog.New(defaultWriter()).With().Timestamp().Logger()

func defaultWriter() io.Writer {
	return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
}

// New returns a Logger scoped to the given component name (e.g. "workspace",
// "effects", "protocol").
func New(component string) Logger {
	return Logger{z: base.With().Str("component", component).Logger()}
}

// SetGlobalLevel adjusts the minimum level emitted by every Logger returned
// from New. Typically called once during host startup.
func SetGlobalLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}

// Debug starts a debug-level event.
func (l Logger) Debug() *zerolog.Event { return l.z.Debug() }

// Info starts an info-level event.
func (l Logger) Info() *zerolog.Event { return l.z.Info() }

// Warn starts a warn-level event.
func (l Logger) Warn() *zerolog.Event { return l.z.Warn() }

// Error starts an error-level event, chaining the given cause via .Err.
func (l Logger) Error(err error) *zerolog.Event { return l.z.Error().Err(err) }
