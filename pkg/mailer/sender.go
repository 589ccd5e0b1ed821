package mailer

import "context"

// Sender delivers a single prepared email.
type Sender interface {
	// Send delivers email. Delivery failures are returned, never retried.
	Send(ctx context.Context, email *Email) error
}

// Verifier checks connectivity and credentials before a batch starts.
type Verifier interface {
	Verify(ctx context.Context) error
}

// Transport is a provider that can both verify and send.
type Transport interface {
	Sender
	Verifier
}
