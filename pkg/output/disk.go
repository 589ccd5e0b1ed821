package output

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

// Disk writes documents to <Root>/<address>/<name> and copies attachments beside them.
type Disk struct {
	Attachments fs.FS    // Attachment source, typically mailer.Dir(attachmentDir)
	Root        string   // Removed by Prepare; must be a dedicated directory
	Protected   []string // Paths Root must never equal or contain
}

// DiskOption configures a Disk writer.
type DiskOption func(*Disk)

// WithProtected adds paths that Prepare refuses to delete, e.g. the project
// directory and its template and data files. The working directory is
// always protected.
func WithProtected(paths ...string) DiskOption {
	return func(d *Disk) {
		d.Protected = append(d.Protected, paths...)
	}
}

// NewDisk creates a disk writer rooted at root.
func NewDisk(root string, attachments fs.FS, opts ...DiskOption) *Disk {
	d := &Disk{Root: root, Attachments: attachments}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Prepare removes any previous output and recreates the root directory.
// It fails with ErrUnsafeRoot, deleting nothing, when Root is a filesystem
// root or equals or contains a protected path.
func (d *Disk) Prepare(_ context.Context) error {
	if err := d.checkRoot(); err != nil {
		return fmt.Errorf("%w: %w", ErrPrepareFailed, err)
	}
	if err := os.RemoveAll(d.Root); err != nil {
		return fmt.Errorf("%w: %v", ErrPrepareFailed, err)
	}
	if err := os.MkdirAll(d.Root, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrPrepareFailed, err)
	}
	return nil
}

func (d *Disk) checkRoot() error {
	root, err := filepath.Abs(d.Root)
	if err != nil {
		return err
	}
	if d.Root == "" || filepath.Dir(root) == root {
		return fmt.Errorf("%w: %q", ErrUnsafeRoot, d.Root)
	}

	protected := d.Protected
	if wd, err := os.Getwd(); err == nil {
		protected = append([]string{wd}, protected...)
	}
	for _, p := range protected {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		if within(root, abs) {
			return fmt.Errorf("%w: %s contains %s", ErrUnsafeRoot, d.Root, p)
		}
	}
	return nil
}

// within reports whether target is dir or lies below it.
func within(dir, target string) bool {
	rel, err := filepath.Rel(dir, target)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Write stores doc and its attachments.
func (d *Disk) Write(_ context.Context, doc *Document) error {
	dir := filepath.Join(d.Root, SafeName(doc.Address))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	if err := os.WriteFile(filepath.Join(dir, SafeName(doc.Name)), doc.Body, 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	for _, name := range doc.Attachments {
		name = mailer.CleanPath(name)
		if err := d.copyAttachment(name, filepath.Join(dir, path.Base(name))); err != nil {
			return fmt.Errorf("%w: attachment %s: %v", ErrWriteFailed, name, err)
		}
	}
	return nil
}

func (d *Disk) copyAttachment(name, dst string) error {
	if d.Attachments == nil {
		return fs.ErrNotExist
	}

	src, err := d.Attachments.Open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
