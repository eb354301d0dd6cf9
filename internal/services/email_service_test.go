package services

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type capturingSender struct {
	sent []*gomail.Message
	err  error
}

func (c *capturingSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

func TestEmailService_WelcomeMessage(t *testing.T) {
	sender := &capturingSender{}
	svc := &emailService{sender: sender, from: "noreply@taskmate.dev"}

	require.NoError(t, svc.SendWelcomeEmail("ann@example.com", "<Ann>"))
	require.Len(t, sender.sent, 1)

	m := sender.sent[0]
	assert.Equal(t, []string{"ann@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"noreply@taskmate.dev"}, m.GetHeader("From"))
	assert.Equal(t, []string{"Welcome to TaskMate!"}, m.GetHeader("Subject"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "text/plain")
	assert.Contains(t, raw, "text/html")
	assert.Contains(t, raw, "Welcome to TaskMate, &lt;Ann&gt;!")
	assert.NotContains(t, raw, "<h2>Welcome to TaskMate, <Ann>")
}

func TestEmailService_SendErrorIsWrapped(t *testing.T) {
	boom := errors.New("smtp down")
	svc := &emailService{sender: &capturingSender{err: boom}, from: "noreply@taskmate.dev"}

	err := svc.SendWelcomeEmail("ann@example.com", "Ann")
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "failed to send welcome email")
}
