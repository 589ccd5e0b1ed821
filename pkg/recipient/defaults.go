package recipient

import "slices"

type defaultKind uint8

const (
	kindLiteral defaultKind = iota + 1
	kindComputed
)

// Default is a fallback value for a field missing from a row.
// It is either a literal string or computed from the row itself.
type Default struct {
	compute func(Fields) string
	literal string
	kind    defaultKind
}

// Literal returns a Default that always yields s.
func Literal(s string) Default {
	return Default{kind: kindLiteral, literal: s}
}

// Computed returns a Default evaluated against the row being resolved.
func Computed(fn func(Fields) string) Default {
	if fn == nil {
		return Default{}
	}
	return Default{kind: kindComputed, compute: fn}
}

// Column returns a Default that reads another column of the same row.
// Missing columns yield an empty value.
func Column(name string) Default {
	return Computed(func(r Fields) string {
		v, _ := r.Get(name)
		return v
	})
}

// IsLiteral reports whether d is a literal default.
func (d Default) IsLiteral() bool { return d.kind == kindLiteral }

// Eval produces the default value for record.
// The zero Default yields nothing.
func (d Default) Eval(record Fields) (string, bool) {
	switch d.kind {
	case kindLiteral:
		return d.literal, true
	case kindComputed:
		return d.compute(record), true
	default:
		return "", false
	}
}

// Defaults is an ordered set of named Default values.
// Order matters: extra template variables are derived in this order.
type Defaults struct {
	values map[string]Default
	keys   []string
}

// NewDefaults creates an empty Defaults.
func NewDefaults() *Defaults {
	return &Defaults{values: make(map[string]Default)}
}

// Set registers def under name and returns d for chaining.
func (d *Defaults) Set(name string, def Default) *Defaults {
	if d.values == nil {
		d.values = make(map[string]Default)
	}
	if _, ok := d.values[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.values[name] = def
	return d
}

// Get returns the default registered under name.
func (d *Defaults) Get(name string) (Default, bool) {
	if d == nil {
		return Default{}, false
	}
	def, ok := d.values[name]
	return def, ok
}

// Keys returns the registered names in insertion order.
func (d *Defaults) Keys() []string {
	if d == nil {
		return nil
	}
	return slices.Clone(d.keys)
}

// Len returns the number of registered defaults.
func (d *Defaults) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Evaluate computes every default against record, skipping empty results
// and the reserved keys address, subject, attachment and attachments.
// Those keys reach templates only when the record itself carries them.
func (d *Defaults) Evaluate(record Fields) Fields {
	var out Fields
	for _, k := range d.Keys() {
		if reserved(k) {
			continue
		}
		if v, ok := d.values[k].Eval(record); ok && v != "" {
			out.Set(k, v)
		}
	}
	return out
}
