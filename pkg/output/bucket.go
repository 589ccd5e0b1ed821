package output

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"mime"
	"path"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
	"github.com/dmitrymomot/mailmerge/pkg/storage"
)

// Bucket writes documents as objects under <Prefix>/<address>/<name>.
type Bucket struct {
	Storage     storage.Storage
	Attachments fs.FS
	Prefix      string
}

// NewBucket creates an object storage writer.
func NewBucket(store storage.Storage, prefix string, attachments fs.FS) *Bucket {
	return &Bucket{Storage: store, Prefix: prefix, Attachments: attachments}
}

// Prepare deletes objects left by a previous run under the prefix.
// Without a prefix nothing is deleted.
func (b *Bucket) Prepare(ctx context.Context) error {
	if b.Prefix == "" {
		return nil
	}
	if err := b.Storage.DeletePrefix(ctx, b.key()+"/"); err != nil {
		return fmt.Errorf("%w: %v", ErrPrepareFailed, err)
	}
	return nil
}

// Write uploads doc and its attachments.
func (b *Bucket) Write(ctx context.Context, doc *Document) error {
	address := SafeName(doc.Address)
	name := SafeName(doc.Name)

	if err := b.put(ctx, b.key(address, name), doc.Body, mime.TypeByExtension(path.Ext(name))); err != nil {
		return err
	}

	for _, att := range doc.Attachments {
		att = mailer.CleanPath(att)
		if b.Attachments == nil {
			return fmt.Errorf("%w: attachment %s: %v", ErrWriteFailed, att, fs.ErrNotExist)
		}
		data, err := fs.ReadFile(b.Attachments, att)
		if err != nil {
			return fmt.Errorf("%w: attachment %s: %v", ErrWriteFailed, att, err)
		}
		if err := b.put(ctx, b.key(address, path.Base(att)), data, ""); err != nil {
			return err
		}
	}
	return nil
}

func (b *Bucket) put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := b.Storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, key, err)
	}
	return nil
}

func (b *Bucket) key(parts ...string) string {
	if b.Prefix == "" {
		return path.Join(parts...)
	}
	return path.Join(append([]string{b.Prefix}, parts...)...)
}
