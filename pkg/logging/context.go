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

// WithSite adds the site code to the logger in the context.
func WithSite(ctx context.Context, site string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("site", site).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithScenario adds the resolved scenario id to the logger in the context.
func WithScenario(ctx context.Context, scenarioID int64) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Int64("scenario_id", scenarioID).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithEndpoint adds the upstream endpoint to the logger in the context.
func WithEndpoint(ctx context.Context, endpoint string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("endpoint", endpoint).Logger()
	return WithLogger(ctx, &newLogger)
}

// WithService adds the upstream service name to the logger in the context.
func WithService(ctx context.Context, service string) context.Context {
	logger := FromContext(ctx)
	newLogger := logger.With().Str("service", service).Logger()
	return WithLogger(ctx, &newLogger)
}
