package notifier

import (
	"context"
	"errors"
	"testing"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSendGridClient struct {
	got      *mail.SGMailV3
	response *rest.Response
	err      error
}

func (f *fakeSendGridClient) SendWithContext(_ context.Context, m *mail.SGMailV3) (*rest.Response, error) {
	f.got = m
	return f.response, f.err
}

func newTestSendGridSender(c *fakeSendGridClient) *SendGridSender {
	return &SendGridSender{client: c, from: mail.NewEmail("Training Calendar System", "no-reply@x.com")}
}

func TestSendGridSenderSingleMessageForAllRecipients(t *testing.T) {
	c := &fakeSendGridClient{response: &rest.Response{StatusCode: 202}}
	s := newTestSendGridSender(c)

	err := s.Send(context.Background(), Message{
		To:        []string{"a@x.com", "b@x.com"},
		Subject:   "Training Reminder: First Aid",
		PlainText: "plain",
		HTML:      "<p>html</p>",
	})
	require.NoError(t, err)

	require.Len(t, c.got.Personalizations, 1)
	tos := c.got.Personalizations[0].To
	require.Len(t, tos, 2)
	assert.Equal(t, "a@x.com", tos[0].Address)
	assert.Equal(t, "b@x.com", tos[1].Address)
	assert.Equal(t, "Training Reminder: First Aid", c.got.Subject)
	require.Len(t, c.got.Content, 2)
	assert.Equal(t, "text/plain", c.got.Content[0].Type)
	assert.Equal(t, "text/html", c.got.Content[1].Type)
}

func TestSendGridSenderErrorStatus(t *testing.T) {
	c := &fakeSendGridClient{response: &rest.Response{StatusCode: 401, Body: "unauthorized"}}
	s := newTestSendGridSender(c)

	err := s.Send(context.Background(), Message{To: []string{"a@x.com"}, Subject: "s", PlainText: "p"})
	assert.EqualError(t, err, "sendgrid error: status 401")
}

func TestSendGridSenderTransportError(t *testing.T) {
	c := &fakeSendGridClient{err: errors.New("dial tcp: timeout")}
	s := newTestSendGridSender(c)

	err := s.Send(context.Background(), Message{To: []string{"a@x.com"}, Subject: "s", PlainText: "p"})
	assert.ErrorIs(t, err, c.err)
}

func TestSendGridSenderNoRecipients(t *testing.T) {
	c := &fakeSendGridClient{}
	s := newTestSendGridSender(c)

	assert.Error(t, s.Send(context.Background(), Message{Subject: "s"}))
	assert.Nil(t, c.got)
}
