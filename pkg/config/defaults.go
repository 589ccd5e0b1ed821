package config

import (
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mailmerge/pkg/recipient"
)

// Default is one entry of the defaults section.
// Exactly one of Value, Column or Template is set.
type Default struct {
	Name     string
	Value    string // Literal value
	Column   string // Copy another field of the same record
	Template string // text/template evaluated against the record
}

// Defaults is the ordered defaults section:
//
//	defaults:
//	  greeting: Hello                  # literal
//	  address: { column: email }       # another column
//	  name: { template: "{{ .first }} {{ .last }}" }
type Defaults []Default

// UnmarshalYAML keeps the order of the mapping.
func (d *Defaults) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: defaults must be a mapping (line %d)", ErrInvalidDefault, node.Line)
	}

	out := make(Defaults, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		def := Default{Name: key.Value}

		switch val.Kind {
		case yaml.ScalarNode:
			def.Value = val.Value
		case yaml.MappingNode:
			var entry struct {
				Column   string `yaml:"column"`
				Template string `yaml:"template"`
			}
			if err := val.Decode(&entry); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidDefault, key.Value, err)
			}
			if (entry.Column == "") == (entry.Template == "") {
				return fmt.Errorf("%w: %s: set exactly one of column or template", ErrInvalidDefault, key.Value)
			}
			def.Column, def.Template = entry.Column, entry.Template
		default:
			return fmt.Errorf("%w: %s: unsupported value (line %d)", ErrInvalidDefault, key.Value, val.Line)
		}
		out = append(out, def)
	}

	*d = out
	return nil
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"upper": strings.ToUpper,
	"trim":  strings.TrimSpace,
	"title": func(s string) string { return cases.Title(language.Und).String(s) },
}

// Build compiles the section into resolver defaults.
func (d Defaults) Build() (*recipient.Defaults, error) {
	out := recipient.NewDefaults()
	for _, def := range d {
		switch {
		case def.Column != "":
			out.Set(def.Name, recipient.Column(def.Column))
		case def.Template != "":
			tmpl, err := template.New(def.Name).Funcs(funcs).Option("missingkey=zero").Parse(def.Template)
			if err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDefault, def.Name, err)
			}
			out.Set(def.Name, recipient.Computed(execute(tmpl)))
		default:
			out.Set(def.Name, recipient.Literal(def.Value))
		}
	}
	return out, nil
}

func execute(tmpl *template.Template) func(recipient.Fields) string {
	return func(record recipient.Fields) string {
		var b strings.Builder
		if err := tmpl.Execute(&b, record.Map()); err != nil {
			return ""
		}
		return b.String()
	}
}
