package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
)

// DefaultLayout wraps the rendered markdown when no layout is configured.
const DefaultLayout = `<div id="email">{{.Content}}</div>`

// Renderer turns a template and a variable set into a finished document.
// It keeps no per-call state and is safe for concurrent use.
type Renderer struct {
	md     goldmark.Markdown
	layout *template.Template
	strip  *bluemonday.Policy
}

// RendererConfig configures the renderer.
type RendererConfig struct {
	Layout string // html/template source; Default: DefaultLayout
}

// Result is a rendered document.
type Result struct {
	HTML    string // Body wrapped in the layout
	Text    string // Substituted markdown with inline HTML removed
	Subject string // Text of the first top-level heading, if any
}

// NewRenderer creates a renderer with the default layout.
func NewRenderer() *Renderer {
	r, err := NewRendererWithConfig(RendererConfig{})
	if err != nil {
		panic(err)
	}
	return r
}

// NewRendererWithConfig creates a renderer with a custom layout.
func NewRendererWithConfig(cfg RendererConfig) (*Renderer, error) {
	if cfg.Layout == "" {
		cfg.Layout = DefaultLayout
	}

	layout, err := template.New("layout").Parse(cfg.Layout)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse layout: %v", ErrRenderFailed, err)
	}

	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Typographer),
			goldmark.WithRendererOptions(goldhtml.WithUnsafe()),
		),
		layout: layout,
		strip:  bluemonday.StrictPolicy(),
	}, nil
}

// LoadLayout reads layout source from fsys.
func LoadLayout(fsys fs.FS, name string) (string, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrLayoutNotFound, name, err)
	}
	return string(content), nil
}

// Render substitutes vars into tmpl and converts the result to HTML.
// An undefined placeholder fails the whole render with *UndefinedVariableError.
func (r *Renderer) Render(tmpl *Template, vars Variables) (*Result, error) {
	body, err := Substitute(tmpl.Body, vars)
	if err != nil {
		return nil, err
	}

	source := []byte(body)
	doc := r.md.Parser().Parse(text.NewReader(source))
	subject := title(doc, source)

	var content bytes.Buffer
	if err := r.md.Renderer().Render(&content, source, doc); err != nil {
		return nil, fmt.Errorf("%w: failed to convert markdown: %v", ErrRenderFailed, err)
	}

	var final bytes.Buffer
	layoutData := map[string]any{
		"Content": template.HTML(content.String()),
		"Subject": subject,
	}
	if err := r.layout.Execute(&final, layoutData); err != nil {
		return nil, fmt.Errorf("%w: failed to execute layout: %v", ErrRenderFailed, err)
	}

	return &Result{
		HTML:    final.String(),
		Text:    strings.TrimSpace(html.UnescapeString(r.strip.Sanitize(body))),
		Subject: subject,
	}, nil
}
