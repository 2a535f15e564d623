// Package log provides the application-wide logger for Quill.
// It wraps logrus behind small package-level helpers so callers don't
// carry a logger instance around.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}

// SetDebug toggles debug-level logging.
func SetDebug(debug bool) {
	if debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// SetOutput redirects log output, mainly for tests.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// Field is a single structured logging field.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field for use with LogWithFields.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// LogWithFields returns an entry carrying the given structured fields.
func LogWithFields(fields ...Field) *logrus.Entry {
	f := make(logrus.Fields, len(fields))
	for _, field := range fields {
		f[field.Key] = field.Value
	}
	return logger.WithFields(f)
}

func Info(args ...interface{}) {
	logger.Info(args...)
}

// Infof logs a formatted message
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Debug logs a message at debug level
func Debug(args ...interface{}) {
	logger.Debug(args...)
}

// Debugf logs a formatted message at debug level
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Error logs an error message
func Error(args ...interface{}) {
	logger.Error(args...)
}

// Errorf logs a formatted error message
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Warn logs a warning message
func Warn(args ...interface{}) {
	logger.Warn(args...)
}

// Warnf logs a formatted warning message
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}
