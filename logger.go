package gridkit

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger; the With helpers attach the field names the row
// models log under, so block and generation fields stay consistent.
type Logger struct {
	*slog.Logger
}

// NewLogger builds a Logger on the given handler. A nil handler falls back
// to info-level text output on stderr.
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

// NewJSONLogger returns a Logger emitting JSON records to stderr at or
// above level.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger returns a Logger emitting human-readable records to stderr
// at or above level.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger returns a Logger whose output is suppressed entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // above anything a record can carry
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBlock adds a block-index field to the logger.
func (l *Logger) WithBlock(block int) *Logger {
	return &Logger{
		Logger: l.Logger.With("block", block),
	}
}

// WithGeneration adds a data-source generation field to the logger.
func (l *Logger) WithGeneration(gen string) *Logger {
	return &Logger{
		Logger: l.Logger.With("generation", gen),
	}
}

// WithRange adds startRow/endRow fields to the logger.
func (l *Logger) WithRange(startRow, endRow int) *Logger {
	return &Logger{
		Logger: l.Logger.With("startRow", startRow, "endRow", endRow),
	}
}
