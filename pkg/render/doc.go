// Package render expands merge templates into personalized documents.
//
// Templates are markdown files with optional YAML frontmatter. Placeholders of the
// form {{ name }} are replaced before any markdown processing:
//
//	---
//	company: ACME
//	---
//
//	# Welcome {{ name }}
//
//	Thanks for joining {{ company }}.
//
// Substitution is strict: a placeholder naming an unknown variable, or naming
// nothing as in "{{ }}", fails the whole render with *UndefinedVariableError.
// An opening {{ whose inner text contains whitespace (for example "{{ a b }}")
// or that is never closed stays literal.
//
// The first top-level heading of the substituted document becomes Result.Subject,
// which callers use when no explicit subject is provided.
//
// # Usage
//
//	tmpl, err := render.LoadTemplate(os.DirFS(root), "email.md")
//	if err != nil {
//		return err
//	}
//
//	r := render.NewRenderer()
//	res, err := r.Render(tmpl, render.Map{"name": "Alice", "company": "ACME"})
//
// Markdown is converted with goldmark (linkify and typographer enabled, raw HTML
// allowed) and wrapped in an html/template layout that receives .Content and .Subject.
package render
