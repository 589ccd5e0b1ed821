package output

import "errors"

var (
	// ErrPrepareFailed indicates the output location could not be reset.
	ErrPrepareFailed = errors.New("output: failed to prepare output location")

	// ErrUnsafeRoot indicates the output root would contain files it must not delete.
	ErrUnsafeRoot = errors.New("output: output root overlaps protected files")

	// ErrWriteFailed indicates a document or attachment could not be written.
	ErrWriteFailed = errors.New("output: failed to write document")
)
