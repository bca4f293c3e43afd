package logger

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys defined in this package.
// Using a distinct type prevents collisions with keys from other packages.
type contextKey int

// loggerKey is the context key under which a request-scoped logger is stored.
const loggerKey contextKey = iota

// WithLogger returns a copy of the context carrying the given logger.
// Handlers and middleware attach request-scoped loggers (with trace IDs,
// user IDs, etc.) so downstream code logs with full request context.
func WithLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, log)
}

// FromContext retrieves the logger stored in the context.
// It falls back to slog.Default() when the context carries no logger,
// so callers can always log without nil checks.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	return slog.Default()
}

// FromContextOrDefault retrieves the logger from the context, preferring the
// provided fallback over slog.Default() when the context carries no logger.
// Stores use this so they log with their component logger even when a caller
// passes a bare context.
func FromContextOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if ctx != nil {
		if log, ok := ctx.Value(loggerKey).(*slog.Logger); ok && log != nil {
			return log
		}
	}
	if fallback != nil {
		return fallback
	}
	return slog.Default()
}
