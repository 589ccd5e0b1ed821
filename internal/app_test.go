package internal_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/internal"
	"github.com/dmitrymomot/mailmerge/pkg/config"
	"github.com/dmitrymomot/mailmerge/pkg/dispatch"
	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/source"
)

type fakeTransport struct {
	mu        sync.Mutex
	sent      []*mailer.Email
	fail      map[string]bool
	verifyErr error
}

func (f *fakeTransport) Verify(context.Context) error { return f.verifyErr }

func (f *fakeTransport) Send(_ context.Context, email *mailer.Email) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[email.To[0]] {
		return errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, email)
	return nil
}

func noSleep(context.Context, time.Duration) error { return nil }

func newProject(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, internal.Init(root))
	cfg, err := config.Load(root)
	require.NoError(t, err)
	return cfg
}

func TestApp_Run_DryRun(t *testing.T) {
	t.Parallel()

	cfg := newProject(t)
	var out bytes.Buffer
	app := internal.New(cfg, internal.WithOutput(&out), internal.WithSleep(noSleep))

	summary, err := app.Run()
	require.NoError(t, err)
	require.True(t, summary.DryRun)
	require.Equal(t, 2, summary.Total)
	require.Equal(t, 2, summary.Succeeded)
	require.Contains(t, out.String(), "2 of 2")

	body, err := os.ReadFile(filepath.Join(cfg.OutputDir(), "alice@example.com", "Hello Alice.html"))
	require.NoError(t, err)
	require.Contains(t, string(body), "Example Inc.")
	require.Contains(t, string(body), "The team")

	_, err = os.Stat(filepath.Join(cfg.OutputDir(), "bob@example.com", "Hello Bob.html"))
	require.NoError(t, err)
}

func TestApp_Run_Send(t *testing.T) {
	t.Parallel()

	cfg := newProject(t)
	cfg.SMTP.Host = "smtp.example.com"
	transport := &fakeTransport{fail: map[string]bool{"bob@example.com": true}}

	app := internal.New(cfg,
		internal.WithOutput(&bytes.Buffer{}),
		internal.WithTransport(transport),
		internal.WithSleep(noSleep),
	)

	summary, err := app.Run()
	require.NoError(t, err)
	require.False(t, summary.DryRun)
	require.Equal(t, 1, summary.Succeeded)
	require.Len(t, transport.sent, 1)
	require.Equal(t, "Hello Alice", transport.sent[0].Subject)

	require.Equal(t, cfg.FailurePath(), summary.FailureFile)
	records, err := source.Load(context.Background(), summary.FailureFile)
	require.NoError(t, err)
	require.Len(t, records, 1)
	addr, _ := records[0].Get("address")
	require.Equal(t, "bob@example.com", addr)
}

func TestApp_Run_VerifyFailure(t *testing.T) {
	t.Parallel()

	cfg := newProject(t)
	cfg.Resend.APIKey = "re_test"
	transport := &fakeTransport{verifyErr: errors.New("unauthorized")}

	app := internal.New(cfg, internal.WithOutput(&bytes.Buffer{}), internal.WithTransport(transport))

	summary, err := app.Run()
	require.ErrorIs(t, err, dispatch.ErrTransportUnavailable)
	require.Nil(t, summary)
	require.Empty(t, transport.sent)
}

func TestApp_Run_DryRun_OutputIsProject(t *testing.T) {
	t.Parallel()

	cfg := newProject(t)
	cfg.Output = "."

	app := internal.New(cfg, internal.WithOutput(&bytes.Buffer{}), internal.WithSleep(noSleep))

	_, err := app.Run()
	require.ErrorIs(t, err, dispatch.ErrOutputUnavailable)

	for _, p := range []string{cfg.Path(config.FileName), cfg.TemplatePath(), cfg.DataLocation()} {
		_, err := os.Stat(p)
		require.NoError(t, err, p)
	}
}

func TestApp_Run_SingleRecipient(t *testing.T) {
	t.Parallel()

	cfg := newProject(t)
	require.NoError(t, os.WriteFile(cfg.TemplatePath(), []byte("# Test run\n\nFrom {{ company }}\n"), 0o644))
	cfg.SMTP.Host = "smtp.example.com"
	cfg.To = "carol@example.com"
	transport := &fakeTransport{}

	app := internal.New(cfg,
		internal.WithOutput(&bytes.Buffer{}),
		internal.WithTransport(transport),
	)

	summary, err := app.Run()
	require.NoError(t, err)
	require.Equal(t, 1, summary.Total)
	require.Len(t, transport.sent, 1)
	require.Equal(t, []string{"carol@example.com"}, transport.sent[0].To)
	require.Equal(t, "Test run", transport.sent[0].Subject)
}

func TestApp_Run_NoRecipients(t *testing.T) {
	t.Parallel()

	cfg := newProject(t)
	require.NoError(t, os.WriteFile(cfg.DataLocation(), []byte("address,first\n"), 0o644))

	app := internal.New(cfg, internal.WithOutput(&bytes.Buffer{}))
	_, err := app.Run()
	require.ErrorIs(t, err, internal.ErrNoRecipients)
}

func TestApp_Run_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := newProject(t)
	cfg.Provider = "carrier-pigeon"

	_, err := internal.New(cfg).Run()
	require.ErrorIs(t, err, config.ErrUnknownProvider)
}

func TestInit_NotEmpty(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), nil, 0o644))
	require.ErrorIs(t, internal.Init(root), internal.ErrWorkspaceNotEmpty)
}

func TestInit_CreatesDirectory(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "campaign")
	require.NoError(t, internal.Init(root))

	for _, name := range []string{config.FileName, config.DefaultTemplate, config.DefaultData} {
		_, err := os.Stat(filepath.Join(root, name))
		require.NoError(t, err, name)
	}

	cfg, err := config.Load(root)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.False(t, cfg.Enabled())
}
