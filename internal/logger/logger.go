// Package logger provides structured JSON logging and metrics tracking for ufc-events.
//
// Every log line is a JSON object with a timestamp, level, message, optional
// structured fields and an optional error. Loggers derived with With carry
// their fields into every entry.
//
// Example usage:
//
//	log := logger.New(logger.LevelInfo, os.Stderr).With(logger.Fields{"table": "past"})
//	log.Info("Finished parsing event", logger.Fields{"event": "UFC 300"})
//	log.Error("Fetch failed", logger.Fields{"uri": uri}, err)
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level string

const (
	LevelDebug Level = "DEBUG"
	LevelInfo  Level = "INFO"
	LevelWarn  Level = "WARN"
	LevelError Level = "ERROR"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel converts a case-insensitive level name into a Level
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(s)))
	if level == "WARNING" {
		level = LevelWarn
	}
	if _, ok := levelRank[level]; !ok {
		return "", fmt.Errorf("unknown log level: %q", s)
	}
	return level, nil
}

// Fields represents structured log fields
type Fields map[string]interface{}

// LogEntry represents a single log entry
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Level     string `json:"level"`
	Message   string `json:"message"`
	Fields    Fields `json:"fields,omitempty"`
	Error     string `json:"error,omitempty"`
}

type sink struct {
	mu     sync.Mutex
	output io.Writer
}

// Logger provides structured logging. It is safe for concurrent use.
type Logger struct {
	minLevel Level
	sink     *sink
	fields   Fields
}

var defaultLogger = New(LevelInfo, os.Stderr)

// New creates a logger writing entries at or above level to output
func New(level Level, output io.Writer) *Logger {
	return &Logger{
		minLevel: level,
		sink:     &sink{output: output},
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return New(LevelError, io.Discard)
}

// Default returns the package-level logger
func Default() *Logger {
	return defaultLogger
}

// SetDefault sets the package-level logger used by the convenience functions
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// With returns a logger that adds fields to every entry.
// Fields passed at the call site win over inherited ones.
func (l *Logger) With(fields Fields) *Logger {
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &Logger{minLevel: l.minLevel, sink: l.sink, fields: merged}
}

// Enabled reports whether entries at level would be written
func (l *Logger) Enabled(level Level) bool {
	return levelRank[level] >= levelRank[l.minLevel]
}

func (l *Logger) log(level Level, message string, fields Fields, err error) {
	if !l.Enabled(level) {
		return
	}

	entry := LogEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Level:     string(level),
		Message:   message,
		Fields:    l.merge(fields),
	}
	if err != nil {
		entry.Error = err.Error()
	}

	data, marshalErr := json.Marshal(entry)

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if marshalErr != nil {
		// Fallback to plain text if JSON marshal fails
		fmt.Fprintf(l.sink.output, "[%s] %s: %s (marshal error: %v)\n",
			entry.Timestamp, entry.Level, entry.Message, marshalErr)
		return
	}
	fmt.Fprintln(l.sink.output, string(data))
}

func (l *Logger) merge(fields Fields) Fields {
	if len(l.fields) == 0 {
		return fields
	}
	merged := make(Fields, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return merged
}

// Debug logs detailed diagnostic information
func (l *Logger) Debug(message string, fields Fields) {
	l.log(LevelDebug, message, fields, nil)
}

// Info logs general operational information
func (l *Logger) Info(message string, fields Fields) {
	l.log(LevelInfo, message, fields, nil)
}

// Warn logs something unexpected that did not stop the run
func (l *Logger) Warn(message string, fields Fields) {
	l.log(LevelWarn, message, fields, nil)
}

// Error logs a failure together with the error that caused it
func (l *Logger) Error(message string, fields Fields, err error) {
	l.log(LevelError, message, fields, err)
}

// Package-level convenience functions using default logger

func Debug(message string, fields Fields) { defaultLogger.Debug(message, fields) }

func Info(message string, fields Fields) { defaultLogger.Info(message, fields) }

func Warn(message string, fields Fields) { defaultLogger.Warn(message, fields) }

func Error(message string, fields Fields, err error) { defaultLogger.Error(message, fields, err) }
