// Package logger builds the application's structured logger: JSON lines on
// stdout, optionally fanned out to Sentry, with attributes pulled from the
// context of every record.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

type Config struct {
	SentryDSN         string
	SentryEnvironment string
	Level             slog.Level
}

// New returns a JSON logger. When a Sentry DSN is configured, warnings are kept
// as Sentry logs and errors become Sentry issues.
func New(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return newWithWriter(os.Stdout, cfg, extractors...)
}

func newWithWriter(w io.Writer, cfg Config, extractors ...ContextExtractor) *slog.Logger {
	stdoutHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.Level,
	})

	if cfg.SentryDSN == "" {
		return slog.New(newDecorator(stdoutHandler, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		EnableLogs:  true,
	}); err != nil {
		slog.New(stdoutHandler).Error("failed to initialize sentry", slog.String("error", err.Error()))
		return slog.New(newDecorator(stdoutHandler, extractors...))
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelError},
	}.NewSentryHandler(context.Background())

	return slog.New(newDecorator(newMultiHandler(stdoutHandler, sentryHandler), extractors...))
}

// NewNope discards everything. Used by tests.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
