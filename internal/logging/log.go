// Package logging provides the diagnostic logger. Diagnostics go to stderr so
// that the stamp summary on stdout stays machine-readable.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance.
var Logger *log.Logger

func init() {
	Logger = newLogger(os.Stderr, false)
}

// Setup configures the logger based on verbosity.
func Setup(verbose bool) {
	Logger = newLogger(os.Stderr, verbose)
}

// SetOutput redirects the logger, keeping its current level.
func SetOutput(w io.Writer) {
	level := Logger.GetLevel()
	Logger = newLogger(w, level == log.DebugLevel)
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "qstamp",
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
		TimeFormat:      "15:04:05",
	})
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...any) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...any) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...any) {
	Logger.Warn(msg, keyvals...)
}
