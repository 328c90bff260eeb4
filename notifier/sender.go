package notifier

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Message is a single outbound email. All addresses in To receive the same copy.
type Message struct {
	To        []string
	Subject   string
	PlainText string
	HTML      string
}

// Sender delivers a Message over some mail transport
type Sender interface {
	Send(ctx context.Context, m Message) error
}

// LogSender writes messages to the log instead of delivering them. It is
// meant for local development where no mail transport is configured.
type LogSender struct{}

// Send logs the message envelope at debug level
func (LogSender) Send(_ context.Context, m Message) error {
	if len(m.To) == 0 {
		return fmt.Errorf("no recipients")
	}
	zap.S().Debugw("email not delivered, log transport", "to", strings.Join(m.To, ","), "subject", m.Subject)
	return nil
}
