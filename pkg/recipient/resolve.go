package recipient

import "strings"

// Resolve converts rows into recipients, in input order.
// It fails the whole batch on a missing or duplicated address; no partial
// result is returned.
func Resolve(records []Fields, defaults *Defaults) ([]Recipient, error) {
	recipients := make([]Recipient, 0, len(records))
	for i, record := range records {
		r, err := resolveOne(i, record, defaults)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, r)
	}

	if dups := duplicates(recipients); len(dups) > 0 {
		return nil, &DuplicateAddressError{Addresses: dups}
	}

	return recipients, nil
}

func resolveOne(row int, record Fields, defaults *Defaults) (Recipient, error) {
	address, _ := ResolveField(record, FieldAddress, defaults)
	if address == "" {
		return Recipient{}, &MissingAddressError{Record: record.Clone(), Row: row}
	}

	subject, _ := ResolveField(record, FieldSubject, defaults)

	return Recipient{
		Address:         address,
		SubjectOverride: subject,
		Attachments:     attachments(record, defaults),
		Variables:       extra(record, defaults).Merge(record),
	}, nil
}

// attachments merges both attachment fields, keeping order and duplicates.
func attachments(record Fields, defaults *Defaults) []string {
	single, _ := ResolveField(record, FieldAttachment, defaults)
	multi, _ := ResolveField(record, FieldAttachments, defaults)

	var out []string
	for _, p := range strings.Split(single+AttachmentSeparator+multi, AttachmentSeparator) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// extra evaluates the non-reserved defaults against the row.
func extra(record Fields, defaults *Defaults) Fields {
	var out Fields
	for _, key := range defaults.Keys() {
		if reserved(key) {
			continue
		}
		if v, _ := ResolveField(record, key, defaults); v != "" {
			out.Set(key, v)
		}
	}
	return out
}

// duplicates returns addresses seen more than once, in first-repeat order.
func duplicates(recipients []Recipient) []string {
	seen := make(map[string]int, len(recipients))
	var dups []string
	for _, r := range recipients {
		seen[r.Address]++
		if seen[r.Address] == 2 {
			dups = append(dups, r.Address)
		}
	}
	return dups
}
