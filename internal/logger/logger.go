package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

var logger *log.Logger

func init() {
	// Sane default so packages can log before Init runs (tests mostly).
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})
}

// Init configures the global logger. Debug enables debug level and
// caller reporting.
func Init(debug bool) {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		ReportCaller:    debug,
		Level:           level,
	})
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, keyvals...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, keyvals ...interface{}) {
	logger.Info(msg, keyvals...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, keyvals...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, keyvals ...interface{}) {
	logger.Error(msg, keyvals...)
}

// Fatal logs an error message and exits with code 1.
func Fatal(msg string, keyvals ...interface{}) {
	logger.Fatal(msg, keyvals...)
}
