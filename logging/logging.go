// Package logging contains the zap-backed loggers used by the kinematics tooling.
package logging

import (
	"sync"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewDebugLogger("startup")

	// GlobalLogLevel is raised to debug by the CLI `--debug` flag. At debug every logger writes
	// everything regardless of its own level.
	GlobalLogLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// ReplaceGlobal installs logger as the process wide logger.
func ReplaceGlobal(logger Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = logger
}

// Global returns the process wide logger.
func Global() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// NewLogger returns a logger writing Info and above to stdout, timestamped in UTC.
func NewLogger(name string) Logger {
	return newAppenderLogger(name, INFO, true, NewStdoutAppender())
}

// NewDebugLogger is NewLogger at debug level.
func NewDebugLogger(name string) Logger {
	return newAppenderLogger(name, DEBUG, true, NewStdoutAppender())
}

// NewBlankLogger returns a debug level logger with no appenders.
func NewBlankLogger(name string) Logger {
	return newAppenderLogger(name, DEBUG, true)
}

// NewTestLogger returns a debug level logger writing to tb in local time.
func NewTestLogger(tb testing.TB) Logger {
	logger, _ := NewObservedTestLogger(tb)
	return logger
}

// NewObservedTestLogger is NewTestLogger that also records every entry for assertions.
func NewObservedTestLogger(tb testing.TB) (Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return newAppenderLogger("", DEBUG, false, NewTestAppender(tb), core), logs
}
