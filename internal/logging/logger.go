package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"
)

// Logger defines a minimal, printf-style logging contract.
//
// Components depend on this interface rather than a concrete logger so the
// evaluation core stays silent in tests and embeddable in hosts that bring
// their own logging.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Nop returns a logger that discards all output.
func Nop() Logger {
	return nopLogger{}
}

// OrNop returns logger when non-nil, otherwise a no-op logger.
func OrNop(logger Logger) Logger {
	if logger == nil {
		return Nop()
	}
	return logger
}

// Level represents the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

type componentLogger struct {
	mu        sync.Mutex
	out       *log.Logger
	level     Level
	component string
}

var (
	defaultOut   io.Writer = os.Stderr
	defaultLevel           = LevelInfo
	defaultMu    sync.RWMutex
)

// SetDefaultOutput redirects all component loggers created afterwards.
func SetDefaultOutput(w io.Writer) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultOut = w
}

// SetDefaultLevel sets the minimum level for component loggers created afterwards.
func SetDefaultLevel(level Level) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLevel = level
}

// NewComponentLogger returns the default application logger scoped to a component.
func NewComponentLogger(component string) Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return &componentLogger{
		out:       log.New(defaultOut, "", 0),
		level:     defaultLevel,
		component: component,
	}
}

func (l *componentLogger) logf(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("%s [%s] [%s] %s",
		time.Now().Format("2006-01-02 15:04:05.000"),
		level, l.component, fmt.Sprintf(format, args...))
}

func (l *componentLogger) Debug(format string, args ...any) { l.logf(LevelDebug, format, args...) }
func (l *componentLogger) Info(format string, args ...any)  { l.logf(LevelInfo, format, args...) }
func (l *componentLogger) Warn(format string, args ...any)  { l.logf(LevelWarn, format, args...) }
func (l *componentLogger) Error(format string, args ...any) { l.logf(LevelError, format, args...) }
