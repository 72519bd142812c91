// Package logging wraps charmbracelet/log into the small set of
// level-keyed helpers the rest of this module calls, per SPEC_FULL.md's
// ambient logging section. Grounded on the teacher's common/log/log.go
// (InitLog/Fatal/Info/Warn/Error/Debug over a package-level *log.Logger),
// generalized to return a handle instead of a package global so multiple
// components (engine, rpc, httpapi) can each carry their own prefixed
// logger rather than sharing one mutable singleton.
package logging

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger is this module's thin facade over charmbracelet/log.
type Logger struct {
	l *log.Logger
}

// New builds a Logger prefixed with component, writing to stderr with
// timestamps, matching the teacher's InitLog convention.
func New(component string) *Logger {
	l := log.New(os.Stderr)
	l.SetPrefix(component)
	l.SetReportTimestamp(true)
	l.SetTimeFormat(time.DateTime)
	return &Logger{l: l}
}

// SetLevel parses "debug"/"info"/"warn"/"error" (any other value leaves
// the level unchanged), matching config.LogConf.Level.
func (lg *Logger) SetLevel(level string) {
	switch level {
	case "debug":
		lg.l.SetLevel(log.DebugLevel)
	case "info":
		lg.l.SetLevel(log.InfoLevel)
	case "warn":
		lg.l.SetLevel(log.WarnLevel)
	case "error":
		lg.l.SetLevel(log.ErrorLevel)
	}
}

func (lg *Logger) Debug(format string, args ...any) { lg.log(lg.l.Debug, format, args) }
func (lg *Logger) Info(format string, args ...any)  { lg.log(lg.l.Info, format, args) }
func (lg *Logger) Warn(format string, args ...any)  { lg.log(lg.l.Warn, format, args) }
func (lg *Logger) Error(format string, args ...any) { lg.log(lg.l.Error, format, args) }
func (lg *Logger) Fatal(format string, args ...any) { lg.log(lg.l.Fatal, format, args) }

func (lg *Logger) log(fn func(any, ...any), format string, args []any) {
	if len(args) == 0 {
		fn(format)
		return
	}
	fn(format, args...)
}

// With returns a child Logger carrying additional structured key/value
// pairs on every subsequent call, e.g. logging.New("engine").With("round", 3).
func (lg *Logger) With(keyvals ...any) *Logger {
	return &Logger{l: lg.l.With(keyvals...)}
}
