package source

import "errors"

var (
	// ErrUnsupportedSource is returned for a data source Load cannot read.
	ErrUnsupportedSource = errors.New("source: unsupported data source")

	// ErrInvalidHeader is returned for an empty or repeated column name.
	ErrInvalidHeader = errors.New("source: invalid header")

	// ErrMalformed is returned when a file cannot be parsed into records.
	ErrMalformed = errors.New("source: malformed data")

	// ErrMissingQuery is returned when a database source has no query.
	ErrMissingQuery = errors.New("source: query is required for a database source")

	// ErrQueryFailed is returned when the database query fails.
	ErrQueryFailed = errors.New("source: query failed")

	// ErrWriteFailed is returned when the failure file cannot be written.
	ErrWriteFailed = errors.New("source: failed to write records")
)
