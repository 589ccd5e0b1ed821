package resend

import (
	"context"
	"fmt"
	"net/mail"
	"strconv"
	"strings"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/mailmerge/pkg/mailer"
)

// API is the subset of the Resend client used by Sender.
type API interface {
	SendWithContext(ctx context.Context, req *resend.SendEmailRequest) error
	ListDomains(ctx context.Context) ([]resend.Domain, error)
}

// Sender implements mailer.Transport using the Resend API.
type Sender struct {
	api    API
	config Config
}

// New creates a new Resend sender.
func New(cfg Config) *Sender {
	return NewWithAPI(clientAPI{client: resend.NewClient(cfg.APIKey)}, cfg)
}

// NewWithAPI creates a sender on top of a custom API implementation.
func NewWithAPI(api API, cfg Config) *Sender {
	return &Sender{api: api, config: cfg}
}

// Verify checks the API key by listing domains and, when a sender address is
// configured, that its domain is registered with Resend.
func (s *Sender) Verify(ctx context.Context) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("%w: resend: api key is empty", mailer.ErrVerifyFailed)
	}

	domains, err := s.api.ListDomains(ctx)
	if err != nil {
		return fmt.Errorf("%w: resend: %w", mailer.ErrVerifyFailed, err)
	}

	want := senderDomain(s.from(""))
	if want == "" {
		return nil
	}
	for _, d := range domains {
		if strings.EqualFold(d.Name, want) {
			return nil
		}
	}
	return fmt.Errorf("%w: resend: domain %q is not registered", mailer.ErrVerifyFailed, want)
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	req := &resend.SendEmailRequest{
		From:    s.from(email.From),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		Headers: email.Headers,
	}

	if len(email.Attachments) > 0 {
		req.Attachments = convertAttachments(email.Attachments)
	}
	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	if err := s.api.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("%w: resend: %w", mailer.ErrSendFailed, err)
	}
	return nil
}

func (s *Sender) from(override string) string {
	if override != "" {
		return override
	}
	return mailer.Address(s.config.SenderName, s.config.SenderEmail)
}

func senderDomain(from string) string {
	if from == "" {
		return ""
	}
	addr, err := mail.ParseAddress(from)
	if err != nil {
		return ""
	}
	_, domain, ok := strings.Cut(addr.Address, "@")
	if !ok {
		return ""
	}
	return domain
}

func convertAttachments(attachments []mailer.Attachment) []*resend.Attachment {
	result := make([]*resend.Attachment, len(attachments))
	for i, a := range attachments {
		result[i] = &resend.Attachment{
			Filename:    a.Filename,
			Content:     a.Content,
			ContentType: a.ContentType,
		}
	}
	return result
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts any value to a string for Resend's tag API.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// clientAPI adapts *resend.Client to API.
type clientAPI struct {
	client *resend.Client
}

func (c clientAPI) SendWithContext(ctx context.Context, req *resend.SendEmailRequest) error {
	_, err := c.client.Emails.SendWithContext(ctx, req)
	return err
}

func (c clientAPI) ListDomains(ctx context.Context) ([]resend.Domain, error) {
	resp, err := c.client.Domains.ListWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

var _ mailer.Transport = (*Sender)(nil)
