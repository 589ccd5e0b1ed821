package mailer

import "fmt"

// Tags are provider tags attached to a message, e.g. the merge run id.
// Presence-only tags use struct{}{} as value.
type Tags map[string]any

// Address formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Address(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email is a fully rendered message for a single merge recipient.
type Email struct {
	Headers     map[string]string // Custom headers
	Tags        Tags              // Provider-specific tags
	From        string            // Sender address; providers may apply their own default
	Subject     string
	HTML        string
	Text        string // Plain text alternative
	To          []string
	Attachments []Attachment
}

// Attachment is a file sent along with an email.
type Attachment struct {
	Filename    string // Display name
	ContentType string // MIME type (e.g., "application/pdf")
	Content     []byte
}

// Validate reports the first missing required field.
func (e *Email) Validate() error {
	switch {
	case len(e.To) == 0:
		return ErrNoRecipient
	case e.Subject == "":
		return ErrNoSubject
	case e.HTML == "" && e.Text == "":
		return ErrNoContent
	}
	return nil
}
