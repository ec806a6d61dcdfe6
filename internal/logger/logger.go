package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// OpenFile opens path for appending log lines, creating its directory
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}

// NewFileLogger creates a logger that appends to a file
func NewFileLogger(path string, level log.Level) (*Logger, func(), error) {
	f, err := OpenFile(path)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewWithLevel(f, level), cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(level log.Level, writers ...io.Writer) *Logger {
	return NewWithLevel(io.MultiWriter(writers...), level)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// Level is the console level: debug when verbose, otherwise warnings only
func Level(verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	return log.WarnLevel
}

// ConversionCompleted logs a finished Markdown to record conversion
func (l *Logger) ConversionCompleted(source string, records int, duration time.Duration) {
	l.Info("conversion completed",
		"source", source,
		"records", records,
		"duration", duration.Round(time.Microsecond))
}

// NodeDropped logs an AST node the converter has no block mapping for
func (l *Logger) NodeDropped(kind string) {
	l.Debug("node dropped", "kind", kind)
}

// DepthLimit logs a subtree skipped because it nests too deep
func (l *Logger) DepthLimit(kind string, depth, max int) {
	l.Debug("nesting limit reached",
		"kind", kind,
		"depth", depth,
		"max", max)
}

// DiagramBlock logs the auxiliary block id generated for a diagram
func (l *Logger) DiagramBlock(recordID, blockID string) {
	l.Debug("diagram block",
		"record", recordID,
		"block", blockID)
}

// ClipboardWritten logs a successful clipboard write
func (l *Logger) ClipboardWritten(format string, size int) {
	l.Info("clipboard written",
		"format", format,
		"bytes", size)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// ConversionError logs a conversion error
func (l *Logger) ConversionError(source, dest string, err error) {
	l.Error("conversion failed",
		"source", source,
		"dest", dest,
		"error", err)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path, author string, interval time.Duration) {
	l.Debug("config loaded",
		"path", path,
		"author", author,
		"watch_interval", interval)
}

// Skipped logs a file that was skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("file skipped",
		"file", file,
		"reason", reason)
}
