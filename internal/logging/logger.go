package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// New builds the application logger: human-readable console output in
// development, JSON lines in production. Unknown levels fall back to info.
func New(appName, env, level string) zerolog.Logger {
	var out io.Writer = os.Stdout
	if env != "production" {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(out).Level(lvl).With().
		Timestamp().
		Str("app", appName).
		Str("env", env).
		Logger()
}

// IntoContext injects a logger into context for downstream use.
func IntoContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return zerolog.Nop()
	}
	if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}
