package pointbsp

import (
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with pointbsp-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogBuild logs a build operation.
func (l *Logger) LogBuild(points, nodes int, duration time.Duration, err error) {
	if err != nil {
		l.Error("build failed",
			"points", points,
			"error", err,
		)
	} else {
		l.Info("build completed",
			"points", points,
			"nodes", nodes,
			"duration", duration,
		)
	}
}

// LogQuery logs a query operation.
func (l *Logger) LogQuery(kind QueryKind, leafVisits int, duration time.Duration, err error) {
	if err != nil {
		l.Error("query failed",
			"kind", string(kind),
			"error", err,
		)
	} else {
		l.Debug("query completed",
			"kind", string(kind),
			"leaf_visits", leafVisits,
			"duration", duration,
		)
	}
}

// LogSnapshot logs a snapshot save or load.
func (l *Logger) LogSnapshot(op, name string, err error) {
	if err != nil {
		l.Error("snapshot failed",
			"op", op,
			"name", name,
			"error", err,
		)
	} else {
		l.Info("snapshot completed",
			"op", op,
			"name", name,
		)
	}
}
