// Package logger provides the small leveled logger shared by the agent packages.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// Fields carries structured context for a log line.
type Fields = map[string]any

// Logger is the logging interface used by the library.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type writerLogger struct {
	mu  *sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewWriterLogger builds a logger that writes one line per entry to w.
func NewWriterLogger(w io.Writer) Logger {
	return writerLogger{mu: &sync.Mutex{}, w: w, now: time.Now}
}

func (l writerLogger) write(level, msg string, obj any) {
	if l.w == nil {
		return
	}

	line := fmt.Sprintf("%s %-5s %s", l.now().Format(time.RFC3339), level, msg)
	if obj != nil {
		if b, err := json.Marshal(obj); err != nil {
			line += fmt.Sprintf(" obj=%q", fmt.Sprintf("%+v", obj))
		} else {
			line += " obj=" + string(b)
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.w, line+"\n")
}

func (l writerLogger) Info(msg string, obj any)  { l.write("INFO", msg, obj) }
func (l writerLogger) Warn(msg string, obj any)  { l.write("WARN", msg, obj) }
func (l writerLogger) Debug(msg string, obj any) { l.write("DEBUG", msg, obj) }
func (l writerLogger) Error(msg string, obj any) { l.write("ERROR", msg, obj) }

// OrNop returns l, or a NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Debugf is the format-style variant of Debug.
func Debugf(enabled bool, logger Logger, format string, args ...any) {
	Debug(enabled, logger, fmt.Sprintf(format, args...), nil)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Info(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}
