package progress

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrymomot/mailmerge/pkg/dispatch"
)

// Console prints one line per event. Colors are used only when w is a terminal.
type Console struct {
	w       io.Writer
	dim     lipgloss.Style
	address lipgloss.Style
	ok      lipgloss.Style
	fail    lipgloss.Style
	verbose bool
}

// ConsoleOption configures a Console.
type ConsoleOption func(*Console)

// WithVerbose also prints the render and throttle steps.
func WithVerbose() ConsoleOption {
	return func(c *Console) {
		c.verbose = true
	}
}

// NewConsole creates a console reporter writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	r := lipgloss.NewRenderer(w)
	c := &Console{
		w:       w,
		dim:     r.NewStyle().Foreground(lipgloss.Color("#888888")),
		address: r.NewStyle().Foreground(lipgloss.Color("#5FD787")),
		ok:      r.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FD787")),
		fail:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) Verifying() {
	c.line("%s", c.dim.Render("   Verifying connection..."))
}

func (c *Console) Throttling() {
	if c.verbose {
		c.line("%s", c.dim.Render("   Waiting..."))
	}
}

func (c *Console) Rendering(address string) {
	if c.verbose {
		c.line("%s %s", c.dim.Render("   Rendering for"), c.address.Render(address))
	}
}

func (c *Console) Dispatching(address, subject string) {
	c.line("%s %s %s", c.dim.Render("   Dispatching to"), c.address.Render(address), c.dim.Render("("+subject+")"))
}

func (c *Console) Done(address string) {
	c.line("%s %s", c.ok.Render("✓"), c.address.Render(address))
}

func (c *Console) Failed(address, message string) {
	c.line("%s %s (%s)", c.fail.Render("✗"), message, c.address.Render(address))
}

func (c *Console) Finished(s *dispatch.Summary) {
	mark := c.ok.Render("✓")
	if s.Failed() > 0 || s.Processed() < s.Total {
		mark = c.fail.Render("✗")
	}

	verb := "sent"
	if s.DryRun {
		verb = "rendered (dry run)"
	}

	c.line("")
	c.line("%s %d of %d %s", mark, s.Succeeded, s.Total, verb)
	if s.FailureFile != "" {
		c.line("%s %s", c.dim.Render("  failed recipients written to"), s.FailureFile)
	}
}

func (c *Console) line(format string, args ...any) {
	_, _ = fmt.Fprintf(c.w, format+"\n", args...)
}
