package notifier

import (
	"context"
	"fmt"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type sendGridClient interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

// SendGridSender delivers mail through the SendGrid v3 API
type SendGridSender struct {
	client sendGridClient
	from   *mail.Email
}

// NewSendGridSender returns a sender authenticated with apiKey
func NewSendGridSender(apiKey, fromName, fromAddress string) *SendGridSender {
	return &SendGridSender{
		client: sendgrid.NewSendClient(apiKey),
		from:   mail.NewEmail(fromName, fromAddress),
	}
}

// Send puts every recipient in one personalization so a reminder goes out as
// a single message.
func (s *SendGridSender) Send(ctx context.Context, m Message) error {
	if len(m.To) == 0 {
		return fmt.Errorf("no recipients")
	}

	p := mail.NewPersonalization()
	for _, addr := range m.To {
		p.AddTos(mail.NewEmail("", addr))
	}

	message := mail.NewV3Mail()
	message.SetFrom(s.from)
	message.Subject = m.Subject
	message.AddPersonalizations(p)
	if m.PlainText != "" {
		message.AddContent(mail.NewContent("text/plain", m.PlainText))
	}
	if m.HTML != "" {
		message.AddContent(mail.NewContent("text/html", m.HTML))
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "subject", m.Subject)
		return fmt.Errorf("sendgrid error: status %d", response.StatusCode)
	}
	return nil
}
