package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/mailmerge/pkg/logger"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/output"
	"github.com/dmitrymomot/mailmerge/pkg/recipient"
	"github.com/dmitrymomot/mailmerge/pkg/render"
)

// Renderer renders a template against a variable set.
type Renderer interface {
	Render(tmpl *render.Template, vars render.Variables) (*render.Result, error)
}

// Writer persists dry-run documents.
type Writer interface {
	// Prepare is called once before the first recipient.
	Prepare(ctx context.Context) error
	Write(ctx context.Context, doc *output.Document) error
}

// FailureStore persists the failure list and returns where it was written.
type FailureStore interface {
	WriteFailures(ctx context.Context, records []recipient.Fields) (string, error)
}

// Orchestrator runs the per-recipient render and dispatch loop.
// A single Orchestrator can execute several runs, one at a time.
type Orchestrator struct {
	renderer  Renderer
	transport mailer.Transport
	writer    Writer
	reporter  Reporter
	failures  FailureStore
	files     fs.FS
	logger    *slog.Logger
	sleep     SleepFunc
	cfg       RunConfig
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithTransport sets the transport used in real-send mode.
func WithTransport(t mailer.Transport) Option {
	return func(o *Orchestrator) {
		o.transport = t
	}
}

// WithWriter sets the dry-run writer.
func WithWriter(w Writer) Option {
	return func(o *Orchestrator) {
		o.writer = w
	}
}

// WithReporter sets the progress reporter.
func WithReporter(r Reporter) Option {
	return func(o *Orchestrator) {
		if r != nil {
			o.reporter = r
		}
	}
}

// WithFailureStore sets where the failure list is persisted after a real send.
func WithFailureStore(s FailureStore) Option {
	return func(o *Orchestrator) {
		o.failures = s
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Orchestrator) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSleep replaces the delay function used between recipients.
func WithSleep(fn SleepFunc) Option {
	return func(o *Orchestrator) {
		o.sleep = fn
	}
}

// WithFileSystem sets the attachment root. Default: mailer.Dir(cfg.AttachmentDir).
func WithFileSystem(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.files = fsys
	}
}

// New creates an Orchestrator for cfg.
func New(cfg RunConfig, renderer Renderer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg.withDefaults(),
		renderer: renderer,
		reporter: nopReporter{},
		logger:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.files == nil {
		dir := o.cfg.AttachmentDir
		if dir == "" {
			dir = "."
		}
		o.files = mailer.Dir(dir)
	}
	return o
}

// Run processes recipients sequentially in input order.
//
// Fatal errors (ErrTransportUnavailable, ErrOutputUnavailable) are returned
// before any recipient is processed, with a nil summary. Per-recipient failures
// never stop the loop; they are collected in Summary.Failures. If ctx is
// cancelled the partial summary is returned together with ctx.Err().
func (o *Orchestrator) Run(ctx context.Context, tmpl *render.Template, recipients []recipient.Recipient) (*Summary, error) {
	if tmpl == nil {
		return nil, ErrNoTemplate
	}

	summary := &Summary{
		RunID:  uuid.NewString(),
		Total:  len(recipients),
		DryRun: o.cfg.DryRun(),
	}
	ctx = ContextWithRunID(ctx, summary.RunID)

	if err := o.preamble(ctx); err != nil {
		o.logger.ErrorContext(ctx, "merge run aborted", slog.String("error", err.Error()))
		return nil, err
	}

	o.logger.InfoContext(ctx, "merge run started",
		slog.Int("recipients", summary.Total),
		slog.Bool("dry_run", summary.DryRun),
	)

	th := newThrottle(o.cfg.Delay, o.cfg.RatePerSecond, o.sleep)
	for i, rcpt := range recipients {
		if i == 0 {
			th.start()
		} else {
			o.reporter.Throttling()
			if err := th.wait(ctx); err != nil {
				return o.interrupted(ctx, summary, err)
			}
		}
		if err := ctx.Err(); err != nil {
			return o.interrupted(ctx, summary, err)
		}

		res := o.process(ctx, summary.RunID, tmpl, rcpt)
		summary.Results = append(summary.Results, res)

		if res.OK() {
			summary.Succeeded++
			o.reporter.Done(rcpt.Address)
			o.logger.DebugContext(ctx, "recipient dispatched",
				slog.String("address", rcpt.Address),
				slog.String("subject", res.Subject),
			)
			continue
		}

		summary.Failures = append(summary.Failures, failureRecord(rcpt))
		o.reporter.Failed(rcpt.Address, res.Err.Error())
		o.logger.WarnContext(ctx, "recipient failed",
			slog.String("address", rcpt.Address),
			slog.String("error", res.Err.Error()),
		)
	}

	var err error
	if !summary.DryRun && len(summary.Failures) > 0 && o.failures != nil {
		path, werr := o.failures.WriteFailures(ctx, summary.Failures)
		if werr != nil {
			err = fmt.Errorf("%w: %w", ErrFailureFile, werr)
			o.logger.ErrorContext(ctx, "failed to write failure file", slog.String("error", werr.Error()))
		} else {
			summary.FailureFile = path
		}
	}

	o.logger.InfoContext(ctx, "merge run finished",
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed()),
		slog.Int("total", summary.Total),
	)
	o.reporter.Finished(summary)
	return summary, err
}

func (o *Orchestrator) preamble(ctx context.Context) error {
	if o.cfg.Enabled {
		o.reporter.Verifying()
		if o.transport == nil {
			return fmt.Errorf("%w: no transport configured", ErrTransportUnavailable)
		}
		if err := o.transport.Verify(ctx); err != nil {
			return fmt.Errorf("%w: %w", ErrTransportUnavailable, err)
		}
		return nil
	}

	if o.writer == nil {
		return fmt.Errorf("%w: no writer configured", ErrOutputUnavailable)
	}
	if err := o.writer.Prepare(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputUnavailable, err)
	}
	return nil
}

func (o *Orchestrator) interrupted(ctx context.Context, summary *Summary, err error) (*Summary, error) {
	o.logger.WarnContext(ctx, "merge run interrupted",
		slog.Int("processed", summary.Processed()),
		slog.Int("total", summary.Total),
	)
	o.reporter.Finished(summary)
	return summary, err
}

func (o *Orchestrator) process(ctx context.Context, runID string, tmpl *render.Template, rcpt recipient.Recipient) Result {
	res := Result{Address: rcpt.Address, Status: StatusFailed}

	o.reporter.Rendering(rcpt.Address)
	out, err := o.renderer.Render(tmpl, o.variables(tmpl, rcpt))
	if err != nil {
		res.Err = &RenderError{Err: err}
		return res
	}

	res.Subject = rcpt.SubjectOverride
	if res.Subject == "" {
		res.Subject = out.Subject
	}
	if res.Subject == "" {
		res.Err = ErrMissingSubject
		return res
	}

	if o.cfg.Enabled {
		res.Err = o.send(ctx, runID, rcpt, res.Subject, out)
	} else {
		res.Err = o.write(ctx, rcpt, res.Subject, out)
	}
	if res.Err == nil {
		res.Status = StatusDispatched
	}
	return res
}

func (o *Orchestrator) send(ctx context.Context, runID string, rcpt recipient.Recipient, subject string, out *render.Result) error {
	attachments, err := o.attachments(rcpt.Attachments)
	if err != nil {
		return err
	}

	o.reporter.Dispatching(rcpt.Address, subject)
	email := &mailer.Email{
		From:        o.cfg.Sender,
		To:          []string{rcpt.Address},
		Subject:     subject,
		HTML:        out.HTML,
		Text:        out.Text,
		Attachments: attachments,
		Tags:        mailer.Tags{"run_id": runID},
	}
	if err := o.transport.Send(ctx, email); err != nil {
		return &TransportSendError{Err: err}
	}
	return nil
}

// attachments loads every attachment, stopping at the first missing one.
func (o *Orchestrator) attachments(paths []string) ([]mailer.Attachment, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	out := make([]mailer.Attachment, 0, len(paths))
	for _, p := range paths {
		if _, err := fs.Stat(o.files, mailer.CleanPath(p)); err != nil {
			return nil, &MissingAttachmentError{Path: p}
		}
		a, err := mailer.LoadAttachment(o.files, p)
		if err != nil {
			if errors.Is(err, mailer.ErrAttachmentNotFound) {
				return nil, &MissingAttachmentError{Path: p}
			}
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (o *Orchestrator) write(ctx context.Context, rcpt recipient.Recipient, subject string, out *render.Result) error {
	o.reporter.Dispatching(rcpt.Address, subject)
	doc := &output.Document{
		Address:     rcpt.Address,
		Name:        subject + o.cfg.Extension,
		Body:        []byte(out.HTML),
		Attachments: rcpt.Attachments,
	}
	if err := o.writer.Write(ctx, doc); err != nil {
		return &WriteError{Err: err}
	}
	return nil
}

// variables builds the effective set: template frontmatter, then run defaults
// evaluated against the recipient, then the recipient's own variables.
func (o *Orchestrator) variables(tmpl *render.Template, rcpt recipient.Recipient) recipient.Fields {
	return tmpl.Variables.
		Merge(o.cfg.Variables.Evaluate(rcpt.Variables)).
		Merge(rcpt.Variables)
}

// failureRecord keeps the address even when it came from a default,
// so the failure file can be fed back as input.
func failureRecord(rcpt recipient.Recipient) recipient.Fields {
	rec := rcpt.Variables.Clone()
	if !rec.Has(recipient.FieldAddress) {
		rec.Set(recipient.FieldAddress, rcpt.Address)
	}
	return rec
}
