package notifier

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/linesmerrill/training-calendar-api/config"
)

// SMTPSender delivers mail through an SMTP relay
type SMTPSender struct {
	cfg config.MailConfig
}

// NewSMTPSender checks the relay settings and returns a sender
func NewSMTPSender(cfg config.MailConfig) (*SMTPSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.FromAddress == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &SMTPSender{cfg: cfg}, nil
}

// Send dials the relay for each message.
func (s *SMTPSender) Send(ctx context.Context, m Message) error {
	msg, err := s.buildMsg(m)
	if err != nil {
		return err
	}

	client, err := mail.NewClient(s.cfg.SMTPHost, s.clientOptions()...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}
	return nil
}

func (s *SMTPSender) buildMsg(m Message) (*mail.Msg, error) {
	if len(m.To) == 0 {
		return nil, fmt.Errorf("no recipients")
	}

	msg := mail.NewMsg()
	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.FromAddress); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else if err := msg.From(s.cfg.FromAddress); err != nil {
		return nil, fmt.Errorf("setting from address: %w", err)
	}
	if err := msg.To(m.To...); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(m.Subject)
	switch {
	case m.PlainText != "" && m.HTML != "":
		msg.SetBodyString(mail.TypeTextPlain, m.PlainText)
		msg.AddAlternativeString(mail.TypeTextHTML, m.HTML)
	case m.HTML != "":
		msg.SetBodyString(mail.TypeTextHTML, m.HTML)
	default:
		msg.SetBodyString(mail.TypeTextPlain, m.PlainText)
	}
	return msg, nil
}

func (s *SMTPSender) clientOptions() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(s.cfg.SMTPPort),
	}

	if s.cfg.SMTPTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// implicit TLS on 465, STARTTLS elsewhere
		if s.cfg.SMTPPort == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.SMTPUsername != "" && s.cfg.SMTPPassword != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.SMTPUsername),
			mail.WithPassword(s.cfg.SMTPPassword),
		)
	}
	return opts
}
