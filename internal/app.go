package internal

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/mailmerge/pkg/config"
	"github.com/dmitrymomot/mailmerge/pkg/dispatch"
	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

// App runs merges for one project.
// App is immutable after creation; all configuration is done via New().
type App struct {
	cfg       *config.Config
	baseCtx   context.Context
	logger    *slog.Logger
	stdout    io.Writer
	reporter  dispatch.Reporter
	transport mailer.Transport
	writer    dispatch.Writer
	storage   storage.Storage
	failures  dispatch.FailureStore
	sleep     dispatch.SleepFunc
	verbose   bool
}

// New creates an application for cfg.
//
// Example:
//
//	cfg, err := config.Load("./campaign")
//	app := mailmerge.New(cfg,
//	    mailmerge.WithLogger(log),
//	    mailmerge.WithOutput(os.Stdout),
//	)
//	summary, err := app.Run()
func New(cfg *config.Config, opts ...Option) *App {
	a := &App{
		cfg:     cfg,
		baseCtx: context.Background(),
		logger:  logger.NewNope(),
		stdout:  os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Config returns the project configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}
