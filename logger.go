package vecmath

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with vecmath-specific context.
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
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithName adds the name of a stored vector to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithKind adds a vector kind field to the logger.
func (l *Logger) WithKind(kind Kind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// WithCodec adds a codec name field to the logger.
func (l *Logger) WithCodec(codec string) *Logger {
	return &Logger{
		Logger: l.Logger.With("codec", codec),
	}
}

// LogPut logs a store operation.
func (l *Logger) LogPut(ctx context.Context, name string, kind Kind, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "put failed",
			"name", name,
			"kind", kind.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "put completed",
			"name", name,
			"kind", kind.String(),
			"bytes", size,
		)
	}
}

// LogGet logs a load operation. cached reports whether the decoded vector came
// from the in-memory cache.
func (l *Logger) LogGet(ctx context.Context, name string, cached bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "get failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "get completed",
			"name", name,
			"cached", cached,
		)
	}
}

// LogBatchGet logs a bulk load.
func (l *Logger) LogBatchGet(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch get completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.InfoContext(ctx, "batch get completed",
			"count", count,
		)
	}
}

// LogDelete logs a delete operation.
func (l *Logger) LogDelete(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "delete failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "delete completed",
			"name", name,
		)
	}
}
