// Package recipient turns raw tabular rows into validated merge recipients.
//
// A row is an ordered set of string fields (see Fields). Resolution looks up the
// well-known fields of every row, falling back to caller-supplied defaults:
//
//   - address: required, unique across the batch
//   - subject: optional subject override
//   - attachment, attachments: colon-separated attachment paths, merged in order
//
// Every other default is evaluated against the row and exposed as a template
// variable, with the row's own fields taking precedence.
//
// # Defaults
//
// A Default is either a literal string, a value computed from the row, or an alias
// of another column:
//
//	defaults := recipient.NewDefaults().
//		Set("address", recipient.Column("email")).
//		Set("attachment", recipient.Computed(func(r recipient.Fields) string {
//			id, _ := r.Get("id")
//			return "invoices/" + id + ".pdf"
//		})).
//		Set("company", recipient.Literal("ACME"))
//
//	recipients, err := recipient.Resolve(rows, defaults)
//
// # Errors
//
// Resolution is all-or-nothing. A row without an address fails the whole batch with
// a *MissingAddressError (matches ErrMissingAddress); repeated addresses fail it with
// a *DuplicateAddressError (matches ErrDuplicateAddress).
package recipient
