package mailer

import (
	"errors"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
)

const mimeDetectionBytes = 512 // http.DetectContentType looks at most at 512 bytes

// CleanPath normalizes an attachment path as written in a data source:
// slashes only, with "./" and inner ".." segments folded ("./a.pdf" is "a.pdf").
func CleanPath(name string) string {
	return path.Clean(filepath.ToSlash(name))
}

// LoadAttachment reads name from fsys into an Attachment.
// The content type comes from the extension, falling back to content sniffing.
func LoadAttachment(fsys fs.FS, name string) (Attachment, error) {
	name = CleanPath(name)
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Attachment{}, fmt.Errorf("%w: %s", ErrAttachmentNotFound, name)
		}
		return Attachment{}, fmt.Errorf("read attachment %s: %w", name, err)
	}

	return Attachment{
		Filename:    path.Base(name),
		ContentType: contentType(name, content),
		Content:     content,
	}, nil
}

func contentType(name string, content []byte) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return http.DetectContentType(content[:min(len(content), mimeDetectionBytes)])
}
