// Package logging provides structured logging using Go's slog package.
package logging

import (
	"log/slog"
	"os"
	"time"
)

var (
	// defaultLogger is the global logger instance.
	defaultLogger *slog.Logger
)

func init() {
	// Initialize with a default logger (text format, Info level)
	InitLogger(LevelInfo, FormatText)
}

// Level represents a log level.
type Level int

const (
	// LevelDebug is for debug messages.
	LevelDebug Level = iota
	// LevelInfo is for informational messages.
	LevelInfo
	// LevelWarn is for warning messages.
	LevelWarn
	// LevelError is for error messages.
	LevelError
)

// Format represents a log output format.
type Format int

const (
	// FormatText outputs logs in human-readable text format.
	FormatText Format = iota
	// FormatJSON outputs logs in JSON format.
	FormatJSON
)

// InitLogger initializes the global logger with the specified level and format.
// Logs go to stderr so generated previews and tables stay clean on stdout.
func InitLogger(level Level, format Format) {
	var slogLevel slog.Level
	switch level {
	case LevelDebug:
		slogLevel = slog.LevelDebug
	case LevelInfo:
		slogLevel = slog.LevelInfo
	case LevelWarn:
		slogLevel = slog.LevelWarn
	case LevelError:
		slogLevel = slog.LevelError
	default:
		slogLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: slogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Customize timestamp format
			if a.Key == slog.TimeKey {
				return slog.String(slog.TimeKey, a.Value.Time().Format(time.RFC3339))
			}
			return a
		},
	}

	var handler slog.Handler
	if format == FormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

// GetLogger returns the global logger instance.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// Helper functions for common logging patterns

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// Warn logs a warning message with optional key-value pairs.
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// CorpusLoaded logs a corpus load with its headline totals.
func CorpusLoaded(scope string, books, chapters, verses int, args ...any) {
	allArgs := []any{
		"scope", scope,
		"books", books,
		"chapters", chapters,
		"verses", verses,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Debug("corpus_loaded", allArgs...)
}

// ScheduleGenerated logs a completed schedule generation.
func ScheduleGenerated(scope string, requestedDays, actualDays, verses int, args ...any) {
	allArgs := []any{
		"scope", scope,
		"requested_days", requestedDays,
		"actual_days", actualDays,
		"verses", verses,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Info("schedule_generated", allArgs...)
}

// NoteWritten logs a single rendered note file.
func NoteWritten(path string, day int, args ...any) {
	allArgs := []any{
		"path", path,
		"day", day,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Debug("note_written", allArgs...)
}

// RegistryEvent logs plan registry operations.
func RegistryEvent(operation, planID string, args ...any) {
	allArgs := []any{
		"operation", operation,
		"plan_id", planID,
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Debug("registry_event", allArgs...)
}

// GenerationError logs a failed generation stage.
func GenerationError(stage string, err error, args ...any) {
	allArgs := []any{
		"stage", stage,
		"error", err.Error(),
	}
	allArgs = append(allArgs, args...)
	defaultLogger.Error("generation_error", allArgs...)
}
