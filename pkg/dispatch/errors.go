package dispatch

import (
	"errors"
	"fmt"
)

// Run-level errors.
var (
	// ErrTransportUnavailable is returned when the transport cannot be verified
	// before a real send. No recipient is processed.
	ErrTransportUnavailable = errors.New("dispatch: transport unavailable")

	// ErrOutputUnavailable is returned when the dry-run output location
	// cannot be prepared. No recipient is processed.
	ErrOutputUnavailable = errors.New("dispatch: output unavailable")

	// ErrNoTemplate is returned when Run is called without a template.
	ErrNoTemplate = errors.New("dispatch: template is required")

	// ErrFailureFile is returned alongside the summary when the failure list
	// could not be persisted.
	ErrFailureFile = errors.New("dispatch: failed to write failure file")
)

// Per-recipient errors. They are recorded in the summary, never returned from Run.
var (
	// ErrMissingSubject means neither the recipient nor the template supplied a subject.
	ErrMissingSubject = errors.New("dispatch: missing subject")

	// ErrMissingAttachment means an attachment file does not exist.
	ErrMissingAttachment = errors.New("dispatch: missing attachment")
)

// RenderError wraps a template rendering failure.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string { return "render: " + e.Err.Error() }
func (e *RenderError) Unwrap() error { return e.Err }

// MissingAttachmentError names the first attachment that was not found.
type MissingAttachmentError struct {
	Path string
}

func (e *MissingAttachmentError) Error() string {
	return fmt.Sprintf("attachment not found: %s", e.Path)
}

func (e *MissingAttachmentError) Is(target error) bool {
	return target == ErrMissingAttachment
}

// TransportSendError wraps a delivery failure for a single recipient.
type TransportSendError struct {
	Err error
}

func (e *TransportSendError) Error() string { return "send: " + e.Err.Error() }
func (e *TransportSendError) Unwrap() error { return e.Err }

// WriteError wraps a dry-run persistence failure for a single recipient.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "write: " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }
