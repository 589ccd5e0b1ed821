package recipient

// Well-known field names.
const (
	FieldAddress     = "address"
	FieldSubject     = "subject"
	FieldAttachment  = "attachment"
	FieldAttachments = "attachments"
)

// AttachmentSeparator separates paths inside the attachment fields.
const AttachmentSeparator = ":"

// Recipient is one target of a merge run.
// It is built once during resolution and never mutated afterwards.
type Recipient struct {
	Variables       Fields   // Substitution context: evaluated defaults overlaid by the row
	Address         string   // Unique within a run
	SubjectOverride string   // Empty means derive the subject from the template title
	Attachments     []string // Paths relative to the attachment directory, in source order
}

// Single builds a recipient for a one-off send that bypasses the data source.
func Single(address string) Recipient {
	return Recipient{Address: address}
}

// reserved fields are never copied into the extra variables.
func reserved(name string) bool {
	switch name {
	case FieldAddress, FieldSubject, FieldAttachment, FieldAttachments:
		return true
	}
	return false
}
