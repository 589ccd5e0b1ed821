package smtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"sync"
	"time"

	gomail "github.com/wneessen/go-mail"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

// Sender implements mailer.Transport over an SMTP relay.
// Each Send opens its own connection.
type Sender struct {
	config Config
}

// New creates a new SMTP sender.
func New(cfg Config) *Sender {
	cfg.applyDefaults()
	return &Sender{config: cfg}
}

// Verify connects, negotiates TLS, authenticates and disconnects.
func (s *Sender) Verify(ctx context.Context) error {
	c, release, err := s.client(ctx)
	if err != nil {
		return fmt.Errorf("%w: smtp: %w", mailer.ErrVerifyFailed, err)
	}
	defer release()
	if err := c.DialWithContext(ctx); err != nil {
		return fmt.Errorf("%w: smtp: %w", mailer.ErrVerifyFailed, err)
	}
	if err := c.Close(); err != nil {
		return fmt.Errorf("%w: smtp: %w", mailer.ErrVerifyFailed, err)
	}
	return nil
}

// Send implements mailer.Sender.
// Every protocol step is bounded by Config.Timeout, and cancelling ctx
// drops the connection.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if err := email.Validate(); err != nil {
		return fmt.Errorf("%w: smtp: %w", mailer.ErrSendFailed, err)
	}

	from := email.From
	if from == "" {
		from = mailer.Address(s.config.SenderName, s.config.SenderEmail)
	}
	msg, err := buildMessage(email, from)
	if err != nil {
		return fmt.Errorf("%w: smtp: %w", mailer.ErrSendFailed, err)
	}

	c, release, err := s.client(ctx)
	if err != nil {
		return fmt.Errorf("%w: smtp: %w", mailer.ErrSendFailed, err)
	}
	defer release()
	if err := c.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("%w: smtp: %w", mailer.ErrSendFailed, err)
	}
	return nil
}

// client builds a fresh client for a single connection bound to ctx.
// release must be called once the client is done.
func (s *Sender) client(ctx context.Context) (*gomail.Client, func(), error) {
	dial, release := s.dialer(ctx)
	opts := []gomail.Option{
		gomail.WithPort(s.config.Port),
		gomail.WithTimeout(s.config.Timeout),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
		gomail.WithDialContextFunc(dial),
	}
	if s.config.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthAutoDiscover),
			gomail.WithUsername(s.config.Username),
			gomail.WithPassword(s.config.Password),
		)
	}
	c, err := gomail.NewClient(s.config.Host, opts...)
	if err != nil {
		release()
		return nil, nil, err
	}
	return c, release, nil
}

// dialer connects with implicit TLS when Secure is set. Each connection
// gets a Config.Timeout deadline covering the greeting and handshake, and
// is closed as soon as ctx is done. The returned release closes whatever
// the client left open and stops watching ctx.
func (s *Sender) dialer(ctx context.Context) (gomail.DialContextFunc, func()) {
	var (
		mu    sync.Mutex
		conns []net.Conn
		stops []func() bool
	)

	dial := func(dialCtx context.Context, network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(dialCtx, network, addr)
		if err != nil {
			return nil, err
		}
		if s.config.Secure {
			tc := tls.Client(conn, &tls.Config{ServerName: s.config.Host, MinVersion: tls.VersionTLS12})
			if err := tc.HandshakeContext(dialCtx); err != nil {
				_ = conn.Close()
				return nil, err
			}
			conn = tc
		}
		if err := conn.SetDeadline(time.Now().Add(s.config.Timeout)); err != nil {
			_ = conn.Close()
			return nil, err
		}

		mu.Lock()
		conns = append(conns, conn)
		stops = append(stops, context.AfterFunc(ctx, func() { _ = conn.Close() }))
		mu.Unlock()
		return conn, nil
	}

	release := func() {
		mu.Lock()
		defer mu.Unlock()
		for i, stop := range stops {
			stop()
			_ = conns[i].Close()
		}
		conns, stops = nil, nil
	}
	return dial, release
}

// buildMessage converts email into a MIME message: text and HTML as
// alternatives, attachments alongside.
func buildMessage(email *mailer.Email, from string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	msg.Subject(email.Subject)
	msg.SetDate()
	msg.SetMessageID()
	for key, value := range email.Headers {
		msg.SetGenHeader(gomail.Header(key), value)
	}

	switch {
	case email.Text != "" && email.HTML != "":
		msg.SetBodyString(gomail.TypeTextPlain, email.Text)
		msg.AddAlternativeString(gomail.TypeTextHTML, email.HTML)
	case email.HTML != "":
		msg.SetBodyString(gomail.TypeTextHTML, email.HTML)
	default:
		msg.SetBodyString(gomail.TypeTextPlain, email.Text)
	}

	for _, a := range email.Attachments {
		msg.AttachReadSeeker(a.Filename, bytes.NewReader(a.Content),
			gomail.WithFileContentType(gomail.ContentType(a.ContentType)))
	}
	return msg, nil
}

var _ mailer.Transport = (*Sender)(nil)
