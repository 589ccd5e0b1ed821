package recipient

import (
	"bytes"
	"encoding/json"
	"maps"
	"slices"
)

// Fields is a string map that remembers insertion order.
// The zero value is ready to use.
type Fields struct {
	values map[string]string
	keys   []string
}

// NewFields builds Fields from alternating name, value pairs.
// A trailing name without a value is stored with an empty value.
func NewFields(pairs ...string) Fields {
	var f Fields
	for i := 0; i < len(pairs); i += 2 {
		value := ""
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}
		f.Set(pairs[i], value)
	}
	return f
}

// Set stores value under name. Overwriting keeps the original position.
func (f *Fields) Set(name, value string) {
	if f.values == nil {
		f.values = make(map[string]string)
	}
	if _, ok := f.values[name]; !ok {
		f.keys = append(f.keys, name)
	}
	f.values[name] = value
}

// Get returns the value stored under name.
func (f Fields) Get(name string) (string, bool) {
	v, ok := f.values[name]
	return v, ok
}

// Lookup is an alias of Get used by the template renderer.
func (f Fields) Lookup(name string) (string, bool) {
	return f.Get(name)
}

// Has reports whether name is present, even with an empty value.
func (f Fields) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

// Keys returns field names in insertion order.
func (f Fields) Keys() []string {
	return slices.Clone(f.keys)
}

// Len returns the number of fields.
func (f Fields) Len() int {
	return len(f.keys)
}

// Clone returns an independent copy.
func (f Fields) Clone() Fields {
	return Fields{
		values: maps.Clone(f.values),
		keys:   slices.Clone(f.keys),
	}
}

// Merge returns a copy of f overlaid with other. Values from other win;
// keys new to f are appended in other's order.
func (f Fields) Merge(other Fields) Fields {
	out := f.Clone()
	for _, k := range other.keys {
		out.Set(k, other.values[k])
	}
	return out
}

// Map returns the fields as a plain map.
func (f Fields) Map() map[string]string {
	out := make(map[string]string, len(f.keys))
	maps.Copy(out, f.values)
	return out
}

// MarshalJSON renders the fields as a JSON object preserving key order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(f.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the fields as compact JSON.
func (f Fields) String() string {
	b, err := f.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Columns returns the union of keys across records in first-seen order.
func Columns(records []Fields) []string {
	seen := make(map[string]struct{})
	var cols []string
	for _, rec := range records {
		for _, k := range rec.keys {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			cols = append(cols, k)
		}
	}
	return cols
}
