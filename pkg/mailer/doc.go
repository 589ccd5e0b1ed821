// Package mailer defines the message types and transport contracts used by a merge run.
//
// A transport implements Sender to deliver one Email and Verifier to check
// connectivity and credentials once, before any recipient is processed:
//
//	type Transport interface {
//		Send(ctx context.Context, email *mailer.Email) error
//		Verify(ctx context.Context) error
//	}
//
// Two providers ship with the package:
//
//   - resend: the Resend HTTP API
//   - smtp: any SMTP relay with PLAIN auth and STARTTLS or implicit TLS
//
// # Attachments
//
// LoadAttachment reads a file from an fs.FS rooted at the attachment directory and
// detects its content type:
//
//	att, err := mailer.LoadAttachment(mailer.Dir(root), "./invoices/42.pdf")
//	if errors.Is(err, mailer.ErrAttachmentNotFound) {
//		// report and skip this recipient
//	}
//
// # Errors
//
//   - ErrNoRecipient, ErrNoSubject, ErrNoContent: Email.Validate failures
//   - ErrAttachmentNotFound: attachment file missing
//   - ErrVerifyFailed: provider rejected connectivity or credentials
//   - ErrSendFailed: provider rejected a single message
package mailer
