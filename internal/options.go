package internal

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/mailmerge/pkg/dispatch"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

// Option configures the application.
type Option func(*App)

// WithContext sets the base context for signal handling.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) Option {
	return func(a *App) {
		if ctx != nil {
			a.baseCtx = ctx
		}
	}
}

// WithLogger sets the application logger.
// If nil, logging is disabled.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithOutput sets where progress lines are printed. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(a *App) {
		if w != nil {
			a.stdout = w
		}
	}
}

// WithVerbose prints every step of a run, not only results.
func WithVerbose(v bool) Option {
	return func(a *App) {
		a.verbose = v
	}
}

// WithReporter replaces the console progress reporter.
func WithReporter(r dispatch.Reporter) Option {
	return func(a *App) {
		a.reporter = r
	}
}

// WithTransport replaces the transport built from the configured provider.
func WithTransport(t mailer.Transport) Option {
	return func(a *App) {
		a.transport = t
	}
}

// WithWriter replaces the dry-run writer.
func WithWriter(w dispatch.Writer) Option {
	return func(a *App) {
		a.writer = w
	}
}

// WithStorage sets the object storage used for dry-run output.
// Without it, storage is created from the storage section when a bucket is set.
func WithStorage(s storage.Storage) Option {
	return func(a *App) {
		a.storage = s
	}
}

// WithFailureStore replaces the failure file writer.
func WithFailureStore(s dispatch.FailureStore) Option {
	return func(a *App) {
		a.failures = s
	}
}

// WithSleep replaces the pause between recipients.
func WithSleep(fn dispatch.SleepFunc) Option {
	return func(a *App) {
		a.sleep = fn
	}
}
