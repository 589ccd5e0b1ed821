package render

import (
	"bytes"
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailmerge/pkg/recipient"
)

// Template is a markdown document with optional frontmatter variables.
type Template struct {
	Variables recipient.Fields // Frontmatter scalars, lowest precedence during a merge
	Body      string
}

// LoadTemplate reads and parses a template from fsys.
func LoadTemplate(fsys fs.FS, name string) (*Template, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplateNotFound, name, err)
	}
	return ParseTemplate(content)
}

// ParseTemplate splits template content into frontmatter variables and markdown body.
// Content that does not start with --- has no frontmatter.
func ParseTemplate(content []byte) (*Template, error) {
	delimiter := []byte("---")

	if !bytes.HasPrefix(content, delimiter) {
		return &Template{Body: string(content)}, nil
	}

	afterFirst := bytes.TrimPrefix(content, delimiter)
	afterFirst = bytes.TrimLeft(afterFirst, "\n\r")
	if len(afterFirst) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	endIdx := bytes.Index(afterFirst, delimiter)
	if endIdx == -1 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	frontmatter := afterFirst[:endIdx]
	bodyStart := endIdx + len(delimiter)
	// Skip one newline after the closing delimiter
	if bytes.HasPrefix(afterFirst[bodyStart:], []byte("\r\n")) {
		bodyStart += 2
	} else if bytes.HasPrefix(afterFirst[bodyStart:], []byte("\n")) {
		bodyStart++
	}

	vars, err := parseFrontmatter(frontmatter)
	if err != nil {
		return nil, err
	}

	return &Template{
		Variables: vars,
		Body:      string(afterFirst[bodyStart:]),
	}, nil
}

// parseFrontmatter decodes a flat YAML mapping, keeping key order.
func parseFrontmatter(data []byte) (recipient.Fields, error) {
	var vars recipient.Fields
	if len(bytes.TrimSpace(data)) == 0 {
		return vars, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return vars, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	if len(doc.Content) == 0 {
		return vars, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return vars, fmt.Errorf("%w: expected a mapping", ErrInvalidFrontmatter)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if value.Kind != yaml.ScalarNode {
			return vars, fmt.Errorf("%w: %q must be a scalar", ErrInvalidFrontmatter, key.Value)
		}
		vars.Set(key.Value, value.Value)
	}

	return vars, nil
}
