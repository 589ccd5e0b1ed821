package output

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
)

func TestSafeName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Hello world.html", want: "Hello world.html"},
		{in: "a/b\\c.html", want: "a_b_c.html"},
		{in: "  ..  ", want: "untitled"},
		{in: "", want: "untitled"},
		{in: "line\nbreak", want: "line_break"},
		{in: "é.html", want: "é.html"},
		{in: "alice@example.com", want: "alice@example.com"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, SafeName(tt.in), tt.in)
	}
}

func TestDisk_PrepareAndWrite(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), ".output")
	attachments := fstest.MapFS{"files/a.pdf": &fstest.MapFile{Data: []byte("pdf")}}
	d := NewDisk(root, attachments)
	ctx := context.Background()

	// stale output from an earlier run
	require.NoError(t, os.MkdirAll(filepath.Join(root, "old"), 0o755))

	require.NoError(t, d.Prepare(ctx))
	_, err := os.Stat(filepath.Join(root, "old"))
	require.True(t, os.IsNotExist(err))

	err = d.Write(ctx, &Document{
		Address:     "alice@example.com",
		Name:        "Hello Alice.html",
		Body:        []byte("<h1>Hello Alice</h1>"),
		Attachments: []string{"files/a.pdf"},
	})
	require.NoError(t, err)

	body, err := os.ReadFile(filepath.Join(root, "alice@example.com", "Hello Alice.html"))
	require.NoError(t, err)
	require.Equal(t, "<h1>Hello Alice</h1>", string(body))

	att, err := os.ReadFile(filepath.Join(root, "alice@example.com", "a.pdf"))
	require.NoError(t, err)
	require.Equal(t, "pdf", string(att))
}

func TestDisk_Write_MissingAttachment(t *testing.T) {
	t.Parallel()

	d := NewDisk(t.TempDir(), fstest.MapFS{})
	err := d.Write(context.Background(), &Document{Address: "a", Name: "x.html", Attachments: []string{"nope.pdf"}})
	require.ErrorIs(t, err, ErrWriteFailed)
}

func TestDisk_Write_RelativeAttachmentPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	attachments := fstest.MapFS{"docs/a.pdf": &fstest.MapFile{Data: []byte("pdf")}}
	d := NewDisk(root, attachments)

	err := d.Write(context.Background(), &Document{
		Address:     "bob@example.com",
		Name:        "x.html",
		Attachments: []string{"./docs/a.pdf", "docs/../docs/a.pdf"},
	})
	require.NoError(t, err)

	att, err := os.ReadFile(filepath.Join(root, "bob@example.com", "a.pdf"))
	require.NoError(t, err)
	require.Equal(t, "pdf", string(att))
}

func TestDisk_Prepare_UnsafeRoot(t *testing.T) {
	t.Parallel()

	project := t.TempDir()
	template := filepath.Join(project, "email.md")
	require.NoError(t, os.WriteFile(template, []byte("# Hi"), 0o644))

	tests := []struct {
		name string
		root string
	}{
		{name: "project root", root: project},
		{name: "parent of project", root: filepath.Dir(project)},
		{name: "working directory", root: "."},
		{name: "filesystem root", root: string(filepath.Separator)},
		{name: "empty", root: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDisk(tt.root, nil, WithProtected(project, template))
			err := d.Prepare(context.Background())
			require.ErrorIs(t, err, ErrPrepareFailed)
			require.ErrorIs(t, err, ErrUnsafeRoot)

			_, err = os.Stat(template)
			require.NoError(t, err)
		})
	}

	d := NewDisk(filepath.Join(project, ".output"), nil, WithProtected(project, template))
	require.NoError(t, d.Prepare(context.Background()))
}

type memStorage struct {
	objects  map[string]string
	prefixes []string
}

func (m *memStorage) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.objects[key] = string(data)
	return nil
}

func (m *memStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(m.objects[key])), nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memStorage) DeletePrefix(_ context.Context, prefix string) error {
	m.prefixes = append(m.prefixes, prefix)
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			delete(m.objects, k)
		}
	}
	return nil
}

func TestBucket_PrepareAndWrite(t *testing.T) {
	t.Parallel()

	store := &memStorage{objects: map[string]string{"previews/old/x.html": "stale", "other/y": "keep"}}
	b := NewBucket(store, "previews", fstest.MapFS{"a.pdf": &fstest.MapFile{Data: []byte("pdf")}})
	ctx := context.Background()

	require.NoError(t, b.Prepare(ctx))
	require.Equal(t, []string{"previews/"}, store.prefixes)

	err := b.Write(ctx, &Document{
		Address:     "bob@example.com",
		Name:        "Hi/Bob.html",
		Body:        []byte("<p>Hi</p>"),
		Attachments: []string{"a.pdf"},
	})
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"other/y":                            "keep",
		"previews/bob@example.com/Hi_Bob.html": "<p>Hi</p>",
		"previews/bob@example.com/a.pdf":       "pdf",
	}, store.objects)
}

func TestBucket_PrepareWithoutPrefix(t *testing.T) {
	t.Parallel()

	store := &memStorage{objects: map[string]string{"x": "keep"}}
	require.NoError(t, NewBucket(store, "", nil).Prepare(context.Background()))
	require.Empty(t, store.prefixes)
	require.Len(t, store.objects, 1)
}
