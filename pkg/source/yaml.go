package source

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailmerge/pkg/recipient"
)

// ReadYAML reads a sequence of flat mappings. Key order is kept.
// Values must be scalars; null becomes an empty string.
func ReadYAML(r io.Reader) ([]recipient.Fields, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a list of records at line %d", ErrMalformed, root.Line)
	}

	records := make([]recipient.Fields, 0, len(root.Content))
	for _, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("%w: record at line %d is not a mapping", ErrMalformed, item.Line)
		}

		var rec recipient.Fields
		for i := 0; i+1 < len(item.Content); i += 2 {
			key, val := item.Content[i], item.Content[i+1]
			if val.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: field %q at line %d is not a scalar", ErrMalformed, key.Value, val.Line)
			}
			if val.Tag == "!!null" {
				rec.Set(key.Value, "")
				continue
			}
			rec.Set(key.Value, val.Value)
		}
		records = append(records, rec)
	}
	return records, nil
}

// WriteYAML writes records as a list of mappings, keeping key order.
func WriteYAML(w io.Writer, records []recipient.Fields) error {
	list := &yaml.Node{Kind: yaml.SequenceNode}
	for _, rec := range records {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range rec.Keys() {
			v, _ := rec.Get(k)
			m.Content = append(m.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: k},
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v},
			)
		}
		list.Content = append(list.Content, m)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(list); err != nil {
		return err
	}
	return enc.Close()
}
