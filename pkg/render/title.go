package render

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// title returns the plain text of the first level-1 heading in doc.
func title(doc ast.Node, source []byte) string {
	var heading *ast.Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == 1 {
			heading = h
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if heading == nil {
		return ""
	}

	var b strings.Builder
	collectText(&b, heading, source)
	return strings.TrimSpace(b.String())
}

func collectText(b *strings.Builder, n ast.Node, source []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch v := c.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.RawHTML:
			// markup is not part of the title
		default:
			collectText(b, c, source)
		}
	}
}
