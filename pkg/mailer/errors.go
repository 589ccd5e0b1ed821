package mailer

import "errors"

var (
	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates neither HTML nor text content was provided.
	ErrNoContent = errors.New("email must have content")

	// ErrAttachmentNotFound indicates an attachment file does not exist.
	ErrAttachmentNotFound = errors.New("attachment not found")

	// ErrVerifyFailed indicates the provider rejected connectivity or credentials.
	ErrVerifyFailed = errors.New("failed to verify email transport")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")
)
