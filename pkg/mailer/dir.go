package mailer

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Dir is an attachment source rooted at a directory on the local disk.
// Unlike os.DirFS it accepts names that leave the root ("../shared/a.pdf")
// and absolute paths, which is how attachment columns are usually written.
type Dir string

// Open implements fs.FS.
func (d Dir) Open(name string) (fs.File, error) {
	return os.Open(d.resolve(name))
}

// Stat implements fs.StatFS.
func (d Dir) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(d.resolve(name))
}

// ReadFile implements fs.ReadFileFS.
func (d Dir) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(d.resolve(name))
}

func (d Dir) resolve(name string) string {
	name = filepath.FromSlash(name)
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	root := string(d)
	if root == "" {
		root = "."
	}
	return filepath.Join(root, name)
}

var (
	_ fs.StatFS     = Dir("")
	_ fs.ReadFileFS = Dir("")
)
