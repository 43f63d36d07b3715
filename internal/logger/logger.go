// Package logger configures the process-wide structured logger used by the
// CLI and passed into the API client for request-level debug logging.
package logger

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Initialize configures output, format, and level. Level falls back to info
// when the string is empty or unparseable.
func Initialize(level string) {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{})

	parsed, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	log.SetLevel(parsed)
}

// Get returns the underlying logger, for wiring into components that accept
// a logrus.FieldLogger.
func Get() *logrus.Logger {
	return log
}

// Debug logs a message at the debug level.
func Debug(args ...interface{}) {
	log.Debug(args...)
}

// Debugf logs a formatted message at the debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Info logs a message at the info level.
func Info(args ...interface{}) {
	log.Info(args...)
}

// Infof logs a formatted message at the info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warn logs a message at the warn level.
func Warn(args ...interface{}) {
	log.Warn(args...)
}

// Warnf logs a formatted message at the warn level.
func Warnf(format string, args ...interface{}) {
	log.Warnf(format, args...)
}

// Error logs a message at the error level.
func Error(args ...interface{}) {
	log.Error(args...)
}

// Errorf logs a formatted message at the error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithFields returns an entry with the given structured fields attached.
func WithFields(fields logrus.Fields) *logrus.Entry {
	return log.WithFields(fields)
}
