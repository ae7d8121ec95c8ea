package gridfx

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Logger is the leveled sink every gridfx module writes through.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type logLevel uint8

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{
	levelDebug: "DEBUG",
	levelInfo:  "INFO",
	levelWarn:  "WARN",
	levelError: "ERROR",
}

func (lv logLevel) String() string { return levelNames[lv] }

// DefaultLogger routes debug and info lines to the stdout sink, warnings and
// errors to the stderr sink. Lines look like "[prefix] LEVEL: message".
type DefaultLogger struct {
	debug  atomic.Bool
	prefix string
	stdout *log.Logger
	stderr *log.Logger
}

func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return NewLogger(os.Stdout, os.Stderr, prefix, debug)
}

// NewLogger builds a DefaultLogger over arbitrary writers; tests pass buffers.
func NewLogger(out, err io.Writer, prefix string, debug bool) *DefaultLogger {
	const flags = log.LstdFlags | log.Lmicroseconds
	l := &DefaultLogger{
		prefix: prefix,
		stdout: log.New(out, "", flags),
		stderr: log.New(err, "", flags),
	}
	l.debug.Store(debug)
	return l
}

func (l *DefaultLogger) DebugEnabled() bool    { return l.debug.Load() }
func (l *DefaultLogger) SetDebug(enabled bool) { l.debug.Store(enabled) }

func (l *DefaultLogger) format(lv logLevel, format string, args ...any) string {
	msg := fmt.Sprintf(format, args...)
	if l.prefix == "" {
		return lv.String() + ": " + msg
	}
	return "[" + l.prefix + "] " + lv.String() + ": " + msg
}

func (l *DefaultLogger) emit(lv logLevel, format string, args ...any) {
	if lv == levelDebug && !l.DebugEnabled() {
		return
	}
	sink := l.stdout
	if lv >= levelWarn {
		sink = l.stderr
	}
	sink.Print(l.format(lv, format, args...))
}

func (l *DefaultLogger) Debugf(format string, args ...any) { l.emit(levelDebug, format, args...) }
func (l *DefaultLogger) Infof(format string, args ...any)  { l.emit(levelInfo, format, args...) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.emit(levelWarn, format, args...) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.emit(levelError, format, args...) }

// LoggingModule registers a DefaultLogger resource. List it ahead of the
// window, gpu and grid modules so their setup output is captured.
type LoggingModule struct {
	Prefix string
	Debug  bool
}

func (m LoggingModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewDefaultLogger(m.Prefix, m.Debug))
}

type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

// Logger finds the registered Logger resource. Without one (or on a nil App)
// output is discarded.
func (app *App) Logger() Logger {
	if app == nil {
		return NewNopLogger()
	}
	for _, r := range app.resources {
		if l, ok := r.(Logger); ok {
			return l
		}
	}
	return NewNopLogger()
}
