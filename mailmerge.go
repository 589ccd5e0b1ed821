package mailmerge

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/mailmerge/internal"
	"github.com/dmitrymomot/mailmerge/pkg/config"
	"github.com/dmitrymomot/mailmerge/pkg/dispatch"
	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

// Type aliases - public API
type (
	// App runs merges for one project.
	App = internal.App

	// Option configures the application.
	Option = internal.Option

	// Config is the project configuration.
	Config = config.Config

	// Summary is the outcome of a run.
	Summary = dispatch.Summary

	// Reporter receives progress events during a run.
	Reporter = dispatch.Reporter

	// Writer persists dry-run documents.
	Writer = dispatch.Writer

	// FailureStore persists the records that failed during a real send.
	FailureStore = dispatch.FailureStore

	// Transport verifies a provider and sends messages through it.
	Transport = mailer.Transport

	// ContextExtractor extracts a slog attribute from context.
	// Used with logger.New to add run-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Errors
var (
	ErrWorkspaceNotEmpty    = internal.ErrWorkspaceNotEmpty
	ErrNoRecipients         = internal.ErrNoRecipients
	ErrTransportUnavailable = dispatch.ErrTransportUnavailable
	ErrOutputUnavailable    = dispatch.ErrOutputUnavailable
)

// New creates an application for cfg.
//
// Example:
//
//	cfg, err := mailmerge.LoadConfig("./campaign")
//	if err != nil {
//	    return err
//	}
//	app := mailmerge.New(cfg, mailmerge.WithLogger(log))
//	summary, err := app.Run()
func New(cfg *Config, opts ...Option) *App {
	return internal.New(cfg, opts...)
}

// LoadConfig reads mailmerge.yaml from root and applies environment overrides.
func LoadConfig(root string) (*Config, error) {
	return config.Load(root)
}

// Init creates a starter project in root.
func Init(root string) error {
	return internal.Init(root)
}

// WithContext sets the base context. Cancelling it stops the run between recipients.
func WithContext(ctx context.Context) Option {
	return internal.WithContext(ctx)
}

// WithLogger sets the application logger.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithOutput sets where progress lines are printed.
func WithOutput(w io.Writer) Option {
	return internal.WithOutput(w)
}

// WithVerbose prints every step of a run.
func WithVerbose(v bool) Option {
	return internal.WithVerbose(v)
}

// WithReporter replaces the console progress reporter.
func WithReporter(r Reporter) Option {
	return internal.WithReporter(r)
}

// WithTransport replaces the transport built from the configured provider.
func WithTransport(t Transport) Option {
	return internal.WithTransport(t)
}

// WithWriter replaces the dry-run writer.
func WithWriter(w Writer) Option {
	return internal.WithWriter(w)
}

// WithStorage sets the object storage used for dry-run output.
func WithStorage(s storage.Storage) Option {
	return internal.WithStorage(s)
}

// WithFailureStore replaces the failure file writer.
func WithFailureStore(s FailureStore) Option {
	return internal.WithFailureStore(s)
}

// WithSleep replaces the pause between recipients.
func WithSleep(fn dispatch.SleepFunc) Option {
	return internal.WithSleep(fn)
}
