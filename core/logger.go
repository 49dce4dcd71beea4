package core

import (
	"github.com/sirupsen/logrus"
)

// Logger is the structured logging seam used by the worker pool.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs a debug message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error message with optional fields
	Error(msg string, fields ...Field)
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value any
}

// F creates a new Field with the given key and value
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// LogrusLogger adapts a logrus logger to the Logger interface.
type LogrusLogger struct {
	logger *logrus.Logger
}

// NewDefaultLogger returns a LogrusLogger backed by the standard logrus
// logger.
func NewDefaultLogger() *LogrusLogger {
	return NewLogrusLogger(logrus.StandardLogger())
}

// NewLogrusLogger wraps the given logrus logger.
func NewLogrusLogger(logger *logrus.Logger) *LogrusLogger {
	return &LogrusLogger{logger: logger}
}

func (l *LogrusLogger) Debug(msg string, fields ...Field) {
	l.logger.WithFields(logrusFields(fields)).Debug(msg)
}

func (l *LogrusLogger) Info(msg string, fields ...Field) {
	l.logger.WithFields(logrusFields(fields)).Info(msg)
}

func (l *LogrusLogger) Warn(msg string, fields ...Field) {
	l.logger.WithFields(logrusFields(fields)).Warn(msg)
}

func (l *LogrusLogger) Error(msg string, fields ...Field) {
	l.logger.WithFields(logrusFields(fields)).Error(msg)
}

func logrusFields(fields []Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

// NoOpLogger is a logger that discards all log messages.
// Useful for tests or when logging is not desired.
type NoOpLogger struct{}

// NewNoOpLogger creates a new NoOpLogger
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (l *NoOpLogger) Debug(msg string, fields ...Field) {}
func (l *NoOpLogger) Info(msg string, fields ...Field)  {}
func (l *NoOpLogger) Warn(msg string, fields ...Field)  {}
func (l *NoOpLogger) Error(msg string, fields ...Field) {}
