package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey int

// loggerKey is the context key for the logger.
const loggerKey contextKey = iota

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}

	if logger, ok := ctx.Value(loggerKey).(*zerolog.Logger); ok && logger != nil {
		return logger
	}

	return Default()
}

// Ctx returns a logger from the context or the default logger.
// This is a shorter alias for FromContext.
func Ctx(ctx context.Context) *zerolog.Logger {
	return FromContext(ctx)
}

// WithField adds a single field to the logger in the context.
func WithField(ctx context.Context, key string, value any) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Interface(key, value).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithStore adds the store name to the logger in the context.
func WithStore(ctx context.Context, store string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("store", store).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithDirection adds the merge direction to the logger in the context.
func WithDirection(ctx context.Context, direction string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("direction", direction).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithRecord adds a record kind and id to the logger in the context.
func WithRecord(ctx context.Context, kind, id string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("kind", kind).Str("id", id).Logger()
	return WithLogger(ctx, &newLogger)
}
