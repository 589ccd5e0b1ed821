package internal

import "errors"

var (
	// ErrWorkspaceNotEmpty is returned by Init for a directory that already has files.
	ErrWorkspaceNotEmpty = errors.New("mailmerge: workspace is not empty")

	// ErrNoRecipients is returned when the data source yields no records.
	ErrNoRecipients = errors.New("mailmerge: no recipients")
)
