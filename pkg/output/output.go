package output

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Document is one rendered dry-run artifact.
type Document struct {
	Address     string   // Recipient address, used as the directory name
	Name        string   // File name, usually subject plus extension
	Body        []byte   // Rendered document
	Attachments []string // Paths relative to the attachment source
}

// SafeName makes s usable as a single path segment.
// The result is NFC-normalized so identical subjects map to identical names
// regardless of how the input was composed.
func SafeName(s string) string {
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', 0:
			return '_'
		}
		if r < 0x20 {
			return '_'
		}
		return r
	}, s)
	s = strings.Trim(s, " .")
	if s == "" {
		return "untitled"
	}
	return s
}
