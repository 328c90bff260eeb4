package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/linesmerrill/training-calendar-api/config"
)

func TestNewSMTPSenderValidation(t *testing.T) {
	_, err := NewSMTPSender(config.MailConfig{FromAddress: "a@x.com"})
	assert.EqualError(t, err, "SMTP host is required")

	_, err = NewSMTPSender(config.MailConfig{SMTPHost: "localhost"})
	assert.EqualError(t, err, "SMTP from address is required")
}

func TestSMTPSenderBuildMsg(t *testing.T) {
	s, err := NewSMTPSender(config.MailConfig{
		SMTPHost:    "localhost",
		SMTPPort:    587,
		FromName:    "Training Calendar System",
		FromAddress: "no-reply@x.com",
	})
	require.NoError(t, err)

	msg, err := s.buildMsg(Message{
		To:        []string{"a@x.com", "b@x.com"},
		Subject:   "Training Reminder: First Aid",
		PlainText: "plain",
		HTML:      "<p>html</p>",
	})
	require.NoError(t, err)

	var to []string
	for _, addr := range msg.GetTo() {
		to = append(to, addr.Address)
	}
	assert.ElementsMatch(t, []string{"a@x.com", "b@x.com"}, to)
	assert.Equal(t, []string{"Training Reminder: First Aid"}, msg.GetGenHeader(mail.HeaderSubject))
}

func TestSMTPSenderBuildMsgRejectsBadInput(t *testing.T) {
	s := &SMTPSender{cfg: config.MailConfig{SMTPHost: "localhost", FromAddress: "no-reply@x.com"}}

	_, err := s.buildMsg(Message{Subject: "s"})
	assert.Error(t, err)

	_, err = s.buildMsg(Message{To: []string{"not an address"}, Subject: "s"})
	assert.Error(t, err)
}

func TestSMTPSenderClientOptions(t *testing.T) {
	plain := &SMTPSender{cfg: config.MailConfig{SMTPPort: 25}}
	assert.Len(t, plain.clientOptions(), 2)

	authed := &SMTPSender{cfg: config.MailConfig{SMTPPort: 465, SMTPTLS: true, SMTPUsername: "u", SMTPPassword: "p"}}
	assert.Len(t, authed.clientOptions(), 6)
}
