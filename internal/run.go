package internal

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dmitrymomot/mailmerge/pkg/config"
	"github.com/dmitrymomot/mailmerge/pkg/dispatch"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/resend"
	"github.com/dmitrymomot/mailmerge/pkg/mailer/smtp"
	"github.com/dmitrymomot/mailmerge/pkg/output"
	"github.com/dmitrymomot/mailmerge/pkg/progress"
	"github.com/dmitrymomot/mailmerge/pkg/recipient"
	"github.com/dmitrymomot/mailmerge/pkg/render"
	"github.com/dmitrymomot/mailmerge/pkg/source"
	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

// Run executes one merge and blocks until every recipient is processed
// or SIGINT/SIGTERM is received.
//
// The returned summary is nil only when the run could not start.
func (a *App) Run() (*dispatch.Summary, error) {
	ctx, stop := signal.NotifyContext(a.baseCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	runCfg, err := a.cfg.RunConfig()
	if err != nil {
		return nil, err
	}

	renderer, err := a.renderer()
	if err != nil {
		return nil, err
	}

	tmpl, err := loadFile(a.cfg.TemplatePath(), render.LoadTemplate)
	if err != nil {
		return nil, err
	}

	recipients, err := a.recipients(ctx)
	if err != nil {
		return nil, err
	}

	opts := []dispatch.Option{
		dispatch.WithLogger(a.logger),
		dispatch.WithReporter(a.progress()),
	}
	if a.sleep != nil {
		opts = append(opts, dispatch.WithSleep(a.sleep))
	}

	if runCfg.Enabled {
		transport, err := a.transportFor()
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			dispatch.WithTransport(transport),
			dispatch.WithFailureStore(a.failureStore()),
		)
	} else {
		writer, err := a.output()
		if err != nil {
			return nil, err
		}
		opts = append(opts, dispatch.WithWriter(writer))
	}

	a.logger.InfoContext(ctx, "starting merge",
		slog.String("template", a.cfg.TemplatePath()),
		slog.Int("recipients", len(recipients)),
		slog.Bool("dry_run", runCfg.DryRun()),
	)

	return dispatch.New(runCfg, renderer, opts...).Run(ctx, tmpl, recipients)
}

func (a *App) renderer() (*render.Renderer, error) {
	path := a.cfg.LayoutPath()
	if path == "" {
		return render.NewRenderer(), nil
	}
	layout, err := loadFile(path, render.LoadLayout)
	if err != nil {
		return nil, err
	}
	return render.NewRendererWithConfig(render.RendererConfig{Layout: layout})
}

// recipients loads and resolves the data source. A configured single
// recipient replaces the data source entirely.
func (a *App) recipients(ctx context.Context) ([]recipient.Recipient, error) {
	if a.cfg.To != "" {
		return []recipient.Recipient{recipient.Single(a.cfg.To)}, nil
	}

	records, err := source.Load(ctx, a.cfg.DataLocation(),
		source.WithQuery(a.cfg.Query),
		source.WithDatabase(a.cfg.Database),
	)
	if err != nil {
		return nil, err
	}

	defaults, err := a.cfg.RecipientDefaults()
	if err != nil {
		return nil, err
	}
	recipients, err := recipient.Resolve(records, defaults)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecipients, a.cfg.DataLocation())
	}
	return recipients, nil
}

func (a *App) transportFor() (mailer.Transport, error) {
	if a.transport != nil {
		return a.transport, nil
	}

	provider, err := a.cfg.ProviderName()
	if err != nil {
		return nil, err
	}
	switch provider {
	case config.ProviderResend:
		return resend.New(a.cfg.Resend), nil
	case config.ProviderSMTP:
		return smtp.New(a.cfg.SMTP), nil
	}
	return nil, dispatch.ErrTransportUnavailable
}

// output picks the dry-run writer: object storage when a bucket is
// configured, the local output directory otherwise.
func (a *App) output() (dispatch.Writer, error) {
	if a.writer != nil {
		return a.writer, nil
	}

	attachments := mailer.Dir(a.cfg.AttachmentDir())
	store := a.storage
	if store == nil && a.cfg.Storage.Bucket != "" {
		s3, err := storage.New(a.cfg.Storage)
		if err != nil {
			return nil, err
		}
		store = s3
	}
	if store != nil {
		return output.NewBucket(store, a.cfg.OutputPrefix, attachments), nil
	}
	return output.NewDisk(a.cfg.OutputDir(), attachments,
		output.WithProtected(a.cfg.ProtectedPaths()...),
	), nil
}

func (a *App) failureStore() dispatch.FailureStore {
	if a.failures != nil {
		return a.failures
	}
	return source.NewFailureStore(a.cfg.FailurePath())
}

func (a *App) progress() dispatch.Reporter {
	if a.reporter != nil {
		return a.reporter
	}
	var opts []progress.ConsoleOption
	if a.verbose {
		opts = append(opts, progress.WithVerbose())
	}
	return progress.Multi{
		progress.NewConsole(a.stdout, opts...),
		progress.NewLog(a.logger),
	}
}

func loadFile[T any](path string, load func(fsys fs.FS, name string) (T, error)) (T, error) {
	return load(os.DirFS(filepath.Dir(path)), filepath.Base(path))
}
