// Package observability configures error reporting.
package observability

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/budget-dashboard/backend/config"
)

// InitSentry initializes the Sentry client. It reports false without error when
// no DSN is configured.
func InitSentry(cfg *config.SentryConfig, environment, release string) (bool, error) {
	if cfg.DSN == "" {
		slog.Info("Sentry disabled, no DSN configured")
		return false, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      environment,
		Release:          release,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
		EnableTracing:    cfg.TracesSampleRate > 0,
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		return false, fmt.Errorf("failed to initialize sentry: %w", err)
	}

	slog.Info("Sentry initialized", "environment", environment)
	return true, nil
}

// FlushSentry waits for buffered events to be sent.
func FlushSentry(timeout time.Duration) {
	if !sentry.Flush(timeout) {
		slog.Warn("Sentry flush timed out", "timeout", timeout)
	}
}
