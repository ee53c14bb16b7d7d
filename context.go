package agenthooks

import (
	"context"
	"log/slog"
)

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const (
	sessionIDKey contextKey = "agenthooks_session_id"
	loggerKey    contextKey = "agenthooks_logger"
	tracerKey    contextKey = "agenthooks_tracer"
)

// WithSessionID adds the host's session identifier to the context for
// log and trace correlation.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

// GetSessionID retrieves the session identifier from the context.
func GetSessionID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(sessionIDKey).(string)
	return id, ok
}

// WithLogger adds a logger to the context, overriding the configured one
// for the current invocation.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger retrieves the logger from the context.
// Returns nil if no logger is in the context.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, _ := ctx.Value(loggerKey).(*slog.Logger)
	return logger
}

// WithTracer adds a tracer to the context for inherited instrumentation.
func WithTracer(ctx context.Context, tracer Tracer) context.Context {
	return context.WithValue(ctx, tracerKey, tracer)
}

// GetTracer retrieves the tracer from the context.
// Returns nil if no tracer is in the context.
func GetTracer(ctx context.Context) Tracer {
	tracer, _ := ctx.Value(tracerKey).(Tracer)
	return tracer
}
