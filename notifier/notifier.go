// Package notifier renders and sends the emails of the registration flow and
// the training reminders.
package notifier

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/training-calendar-api/config"
	"github.com/linesmerrill/training-calendar-api/models"
	templates "github.com/linesmerrill/training-calendar-api/templates/html"
)

// Mail transports accepted in MAIL_TRANSPORT
const (
	TransportSendGrid = "sendgrid"
	TransportSMTP     = "smtp"
	TransportLog      = "log"
)

// Notifier turns domain events into emails
type Notifier struct {
	Sender   Sender
	CodeTTL  time.Duration
	Location *time.Location
}

// New builds a Notifier on the configured transport
func New(cfg *config.Config) (*Notifier, error) {
	var sender Sender
	switch cfg.Mail.Transport {
	case TransportSendGrid:
		if cfg.Mail.SendGridAPIKey == "" {
			return nil, fmt.Errorf("SENDGRID_API_KEY is required for the sendgrid transport")
		}
		sender = NewSendGridSender(cfg.Mail.SendGridAPIKey, cfg.Mail.FromName, cfg.Mail.FromAddress)
	case TransportSMTP:
		s, err := NewSMTPSender(cfg.Mail)
		if err != nil {
			return nil, err
		}
		sender = s
	case TransportLog:
		sender = LogSender{}
	default:
		return nil, fmt.Errorf("unknown mail transport %q", cfg.Mail.Transport)
	}

	zap.S().Infow("mail transport configured", "transport", cfg.Mail.Transport)
	return &Notifier{
		Sender:   sender,
		CodeTTL:  cfg.OTPTTL,
		Location: cfg.ReminderLocation,
	}, nil
}

// SendCode mails a verification code
func (n *Notifier) SendCode(ctx context.Context, email, name, code string) error {
	minutes := int(n.CodeTTL / time.Minute)
	return n.Sender.Send(ctx, Message{
		To:        []string{email},
		Subject:   "Email Verification Code - " + templates.Brand,
		PlainText: fmt.Sprintf("Your verification code is %s. This code will expire in %d minutes.", code, minutes),
		HTML:      templates.RenderCode(name, code, n.CodeTTL),
	})
}

// SendWelcome mails the greeting for a freshly verified account
func (n *Notifier) SendWelcome(ctx context.Context, name, email string, employeeNumber int) error {
	return n.Sender.Send(ctx, Message{
		To:        []string{email},
		Subject:   fmt.Sprintf("Welcome to %s, %s!", templates.Brand, name),
		PlainText: fmt.Sprintf("Hi %s, your account (employee number %d) is verified and ready to use.", name, employeeNumber),
		HTML:      templates.RenderWelcome(name, email, employeeNumber),
	})
}

// SendReminder mails one reminder for training t to all recipients
func (n *Notifier) SendReminder(ctx context.Context, recipients []string, t models.Training) error {
	scheduled := t.ScheduleDate
	if n.Location != nil {
		scheduled = scheduled.In(n.Location)
	}
	return n.Sender.Send(ctx, Message{
		To:      recipients,
		Subject: "Training Reminder: " + t.Name,
		PlainText: fmt.Sprintf("Reminder: %s is scheduled on %s at %s for %d hour(s).",
			t.Name, templates.FormatTrainingDate(scheduled), t.Venue, t.Duration),
		HTML: templates.RenderTrainingReminder(t.Name, scheduled, t.Venue, t.Duration),
	})
}
