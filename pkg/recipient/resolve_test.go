package recipient_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mailmerge/pkg/recipient"
)

func TestResolveField(t *testing.T) {
	t.Parallel()

	record := recipient.NewFields("name", "Alice", "empty", "")
	defaults := recipient.NewDefaults().
		Set("name", recipient.Literal("Bob")).
		Set("empty", recipient.Literal("fallback")).
		Set("greeting", recipient.Literal("Hi")).
		Set("upper", recipient.Computed(func(r recipient.Fields) string {
			v, _ := r.Get("name")
			return v + "!"
		})).
		Set("zero", recipient.Default{})

	tests := []struct {
		name   string
		field  string
		want   string
		wantOK bool
	}{
		{name: "record wins over default", field: "name", want: "Alice", wantOK: true},
		{name: "empty record value still wins", field: "empty", want: "", wantOK: true},
		{name: "literal default", field: "greeting", want: "Hi", wantOK: true},
		{name: "computed default", field: "upper", want: "Alice!", wantOK: true},
		{name: "zero default yields nothing", field: "zero", wantOK: false},
		{name: "unknown field", field: "missing", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := recipient.ResolveField(record, tt.field, defaults)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolveField_NilDefaults(t *testing.T) {
	t.Parallel()

	_, ok := recipient.ResolveField(recipient.NewFields("a", "1"), "b", nil)
	require.False(t, ok)
}

func TestResolve_ColumnAlias(t *testing.T) {
	t.Parallel()

	rows := []recipient.Fields{recipient.NewFields("name", "123")}
	got, err := recipient.Resolve(rows, recipient.NewDefaults().Set("address", recipient.Column("name")))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "123", got[0].Address)
	require.Equal(t, map[string]string{"name": "123"}, got[0].Variables.Map())
	require.Empty(t, got[0].Attachments)
	require.Empty(t, got[0].SubjectOverride)
}

func TestResolve_LiteralAddressDefault(t *testing.T) {
	t.Parallel()

	rows := []recipient.Fields{recipient.NewFields("name", "123")}
	got, err := recipient.Resolve(rows, recipient.NewDefaults().Set("address", recipient.Literal("name")))
	require.NoError(t, err)
	require.Equal(t, "name", got[0].Address)
}

func TestResolve_ComputedAddress(t *testing.T) {
	t.Parallel()

	rows := []recipient.Fields{recipient.NewFields("姓名", "456")}
	defaults := recipient.NewDefaults().Set("address", recipient.Computed(func(r recipient.Fields) string {
		v, _ := r.Get("姓名")
		return v
	}))

	got, err := recipient.Resolve(rows, defaults)
	require.NoError(t, err)
	require.Equal(t, "456", got[0].Address)
	require.Equal(t, []string{"姓名"}, got[0].Variables.Keys())
}

func TestResolve_ExtraVariables(t *testing.T) {
	t.Parallel()

	rows := []recipient.Fields{recipient.NewFields("address", "123")}
	defaults := recipient.NewDefaults().
		Set("name", recipient.Literal("abc")).
		Set("blank", recipient.Literal("")).
		Set("subject", recipient.Literal("Hello"))

	got, err := recipient.Resolve(rows, defaults)
	require.NoError(t, err)
	require.Equal(t, []string{"name", "address"}, got[0].Variables.Keys())
	require.Equal(t, map[string]string{"name": "abc", "address": "123"}, got[0].Variables.Map())
	require.Equal(t, "Hello", got[0].SubjectOverride)
}

func TestResolve_RowOverridesDefaults(t *testing.T) {
	t.Parallel()

	rows := []recipient.Fields{recipient.NewFields("address", "a@example.com", "name", "Row")}
	got, err := recipient.Resolve(rows, recipient.NewDefaults().Set("name", recipient.Literal("Default")))
	require.NoError(t, err)

	v, _ := got[0].Variables.Get("name")
	require.Equal(t, "Row", v)
}

func TestResolve_MissingAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows []recipient.Fields
	}{
		{name: "no address column", rows: []recipient.Fields{recipient.NewFields("name", "123")}},
		{name: "empty address", rows: []recipient.Fields{recipient.NewFields("address", "")}},
		{name: "second row", rows: []recipient.Fields{
			recipient.NewFields("address", "1"),
			recipient.NewFields("name", "123"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := recipient.Resolve(tt.rows, nil)
			require.ErrorIs(t, err, recipient.ErrMissingAddress)
			require.Nil(t, got)
		})
	}
}

func TestResolve_MissingAddressMessage(t *testing.T) {
	t.Parallel()

	_, err := recipient.Resolve([]recipient.Fields{recipient.NewFields("name", "123")}, nil)

	var mae *recipient.MissingAddressError
	require.ErrorAs(t, err, &mae)
	require.Equal(t, 0, mae.Row)
	require.Contains(t, err.Error(), `{"name":"123"}`)
}

func TestResolve_DuplicateAddress(t *testing.T) {
	t.Parallel()

	rows := []recipient.Fields{
		recipient.NewFields("address", "1"),
		recipient.NewFields("address", "2"),
		recipient.NewFields("address", "1"),
	}

	got, err := recipient.Resolve(rows, nil)
	require.ErrorIs(t, err, recipient.ErrDuplicateAddress)
	require.Nil(t, got)

	var dae *recipient.DuplicateAddressError
	require.ErrorAs(t, err, &dae)
	require.Equal(t, []string{"1"}, dae.Addresses)
}

func TestResolve_Attachments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		row      recipient.Fields
		defaults *recipient.Defaults
		want     []string
	}{
		{
			name: "both fields merged in order",
			row:  recipient.NewFields("address", "1", "attachment", "a", "attachments", "b:c"),
			want: []string{"a", "b", "c"},
		},
		{
			name: "no dedup and trimming",
			row:  recipient.NewFields("address", "1", "attachment", " a ", "attachments", "a: :b:"),
			want: []string{"a", "a", "b"},
		},
		{
			name:     "literal default",
			row:      recipient.NewFields("address", "123"),
			defaults: recipient.NewDefaults().Set("attachment", recipient.Literal("pdf")),
			want:     []string{"pdf"},
		},
		{
			name: "computed default",
			row:  recipient.NewFields("address", "123"),
			defaults: recipient.NewDefaults().Set("attachment", recipient.Computed(func(r recipient.Fields) string {
				v, _ := r.Get("address")
				return v + ".pdf"
			})),
			want: []string{"123.pdf"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := recipient.Resolve([]recipient.Fields{tt.row}, tt.defaults)
			require.NoError(t, err)
			require.Equal(t, tt.want, got[0].Attachments)
		})
	}
}

func TestResolve_AttachmentDefaultsNotInVariables(t *testing.T) {
	t.Parallel()

	rows := []recipient.Fields{recipient.NewFields("address", "123")}
	got, err := recipient.Resolve(rows, recipient.NewDefaults().Set("attachment", recipient.Literal("pdf")))
	require.NoError(t, err)
	require.Equal(t, []string{"address"}, got[0].Variables.Keys())
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	rows := []recipient.Fields{
		recipient.NewFields("address", "a", "x", "1"),
		recipient.NewFields("address", "b", "x", "2"),
	}
	defaults := recipient.NewDefaults().
		Set("z", recipient.Literal("z")).
		Set("y", recipient.Literal("y"))

	first, err := recipient.Resolve(rows, defaults)
	require.NoError(t, err)
	second, err := recipient.Resolve(rows, defaults)
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, []string{"z", "y", "address", "x"}, first[0].Variables.Keys())
}
