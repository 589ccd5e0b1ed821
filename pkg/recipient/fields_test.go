package recipient

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFields_OrderAndOverwrite(t *testing.T) {
	t.Parallel()

	var f Fields
	f.Set("b", "1")
	f.Set("a", "2")
	f.Set("b", "3")

	require.Equal(t, []string{"b", "a"}, f.Keys())
	v, ok := f.Get("b")
	require.True(t, ok)
	require.Equal(t, "3", v)
	require.Equal(t, 2, f.Len())
}

func TestFields_Merge(t *testing.T) {
	t.Parallel()

	base := NewFields("a", "1", "b", "2")
	over := NewFields("b", "x", "c", "y")

	merged := base.Merge(over)
	require.Equal(t, []string{"a", "b", "c"}, merged.Keys())
	require.Equal(t, map[string]string{"a": "1", "b": "x", "c": "y"}, merged.Map())

	// base is untouched
	v, _ := base.Get("b")
	require.Equal(t, "2", v)
	require.False(t, base.Has("c"))
}

func TestFields_String(t *testing.T) {
	t.Parallel()

	f := NewFields("z", "1", "a", `q"uote`)
	require.Equal(t, `{"z":"1","a":"q\"uote"}`, f.String())
	require.Equal(t, "{}", Fields{}.String())
}

func TestDefaults_Evaluate(t *testing.T) {
	t.Parallel()

	d := NewDefaults().
		Set("greeting", Literal("Hi")).
		Set("empty", Literal("")).
		Set("name", Column("first"))

	got := d.Evaluate(NewFields("first", "Ann"))
	require.Equal(t, []string{"greeting", "name"}, got.Keys())
	require.Equal(t, map[string]string{"greeting": "Hi", "name": "Ann"}, got.Map())

	reservedOnly := NewDefaults().
		Set(FieldAddress, Column("email")).
		Set(FieldSubject, Literal("Hi")).
		Set(FieldAttachment, Literal("secret.pdf")).
		Set(FieldAttachments, Literal("a.pdf, b.pdf")).
		Set("greeting", Literal("Hello"))
	got = reservedOnly.Evaluate(NewFields("email", "ann@example.com"))
	require.Equal(t, []string{"greeting"}, got.Keys())

	var nilDefaults *Defaults
	require.Equal(t, 0, nilDefaults.Evaluate(NewFields("a", "b")).Len())
}
