package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrymomot/mailmerge/pkg/recipient"
)

// CSVFailureStore writes failed records to a CSV file, replacing any earlier one.
type CSVFailureStore struct {
	Path string
}

// WriteFailures writes records and returns the file path.
func (s CSVFailureStore) WriteFailures(_ context.Context, records []recipient.Fields) (string, error) {
	return writeFile(s.Path, records, WriteCSV)
}

// YAMLFailureStore writes failed records as a YAML list.
type YAMLFailureStore struct {
	Path string
}

// WriteFailures writes records and returns the file path.
func (s YAMLFailureStore) WriteFailures(_ context.Context, records []recipient.Fields) (string, error) {
	return writeFile(s.Path, records, WriteYAML)
}

// FailureStore persists failed records and reports where.
type FailureStore interface {
	WriteFailures(ctx context.Context, records []recipient.Fields) (string, error)
}

// NewFailureStore picks the store matching the extension of path.
// Anything other than .yaml or .yml is written as CSV.
func NewFailureStore(path string) FailureStore {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLFailureStore{Path: path}
	}
	return CSVFailureStore{Path: path}
}

// FailurePath derives the failure file for a data file: data.csv becomes data.error.csv.
func FailurePath(dataPath string) string {
	ext := filepath.Ext(dataPath)
	return strings.TrimSuffix(dataPath, ext) + ".error" + ext
}

func writeFile(path string, records []recipient.Fields, encode func(io.Writer, []recipient.Fields) error) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := encode(f, records); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return path, nil
}
