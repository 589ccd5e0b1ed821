package render

import (
	"strings"
	"unicode"
)

const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Variables resolves placeholder names to values.
type Variables interface {
	Lookup(name string) (string, bool)
}

// Map adapts a plain map to Variables.
type Map map[string]string

// Lookup implements Variables.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Substitute replaces every {{ name }} placeholder in src with its value.
//
// An opening {{ is kept as literal text when the text between the braces
// contains inner whitespace or when no closing }} follows.
// A closed placeholder whose name is empty or not in vars aborts with an
// *UndefinedVariableError and no output.
func Substitute(src string, vars Variables) (string, error) {
	if vars == nil {
		vars = Map(nil)
	}

	var out strings.Builder
	out.Grow(len(src))

	for i := 0; i < len(src); {
		j := strings.Index(src[i:], openDelim)
		if j < 0 {
			out.WriteString(src[i:])
			break
		}
		out.WriteString(src[i : i+j])
		i += j

		name, end, ok := scanPlaceholder(src, i)
		if !ok {
			out.WriteByte(src[i])
			i++
			continue
		}

		value, found := vars.Lookup(name)
		if name == "" || !found {
			return "", &UndefinedVariableError{Name: name}
		}
		out.WriteString(value)
		i = end
	}

	return out.String(), nil
}

// scanPlaceholder reads a placeholder opening at start.
// It returns the trimmed name, possibly empty, and the offset just past
// the closing braces.
func scanPlaceholder(src string, start int) (string, int, bool) {
	inner := start + len(openDelim)
	for pos := inner; pos+1 < len(src); pos++ {
		if strings.HasPrefix(src[pos:], closeDelim) {
			name := strings.TrimSpace(src[inner:pos])
			return name, pos + len(closeDelim), true
		}
		if hasInnerSpace(src[inner:pos]) {
			return "", 0, false
		}
	}
	return "", 0, false
}

func hasInnerSpace(s string) bool {
	return strings.ContainsFunc(strings.TrimSpace(s), unicode.IsSpace)
}
