package logger

import (
	"strings"
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Get returns a singleton logger configured with the provided level.
// The first call initializes the logger; subsequent calls ignore the level
// and return the already initialized instance.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level)
	})
	return globalLogger
}

// Printf lets the logger stand in for printf-style loggers expected by
// third-party packages (the migration runner); lines are logged at info.
func (l *Logger) Printf(format string, args ...interface{}) {
	l.Infof(strings.TrimSuffix(format, "\n"), args...)
}
