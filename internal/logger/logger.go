package logger

import (
	"io"
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
		Prefix:          "briefpipe",
	})
	return &Logger{Logger: l}
}

// ParseLevel converts a config level name into a log level.
func ParseLevel(name string) (log.Level, error) {
	if name == "" {
		return log.InfoLevel, nil
	}
	return log.ParseLevel(name)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(path, apiURL string, timeout time.Duration) {
	l.Debug("config loaded",
		"path", path,
		"api_url", apiURL,
		"timeout", timeout)
}

// BriefFetched logs a brief retrieved from a source
func (l *Logger) BriefFetched(source string, bytes int) {
	l.Info("brief fetched",
		"source", source,
		"bytes", bytes)
}

// BriefGenerated logs a freshly generated brief
func (l *Logger) BriefGenerated(brand, id string, duration time.Duration) {
	l.Info("brief generated",
		"brand", brand,
		"id", id,
		"duration", duration.Round(time.Millisecond))
}

// Rendered logs a completed render
func (l *Logger) Rendered(format string, blocks int, duration time.Duration) {
	l.Debug("brief rendered",
		"format", format,
		"blocks", blocks,
		"duration", duration.Round(time.Microsecond))
}

// Written logs an output file
func (l *Logger) Written(path string, bytes int) {
	l.Info("output written",
		"path", path,
		"bytes", bytes)
}

// SourceError logs a failure to read a brief
func (l *Logger) SourceError(source string, err error) {
	l.Error("source failed",
		"source", source,
		"error", err)
}

// WatchEvent logs a re-render triggered by a file change
func (l *Logger) WatchEvent(path string) {
	l.Debug("file changed",
		"path", path)
}

// WatchError logs a watcher failure that does not stop the watch
func (l *Logger) WatchError(path string, err error) {
	l.Warn("watch error",
		"path", path,
		"error", err)
}
