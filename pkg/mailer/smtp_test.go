package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPProvider_BuildMessage(t *testing.T) {
	p := NewSMTPProvider(SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		FromName: "CalmiCasa",
	})

	msg := string(p.buildMessage(&EmailData{
		To:      []string{"jo@example.com", "sam@example.com"},
		From:    "noreply@calmicasa.com",
		Subject: "Order confirmation",
		HTML:    "<p>Thanks for your order</p>",
		ReplyTo: "office@calmicasa.com",
	}))

	assert.Contains(t, msg, "From: \"CalmiCasa\" <noreply@calmicasa.com>\r\n")
	assert.Contains(t, msg, "To: jo@example.com, sam@example.com\r\n")
	assert.Contains(t, msg, "Reply-To: office@calmicasa.com\r\n")
	assert.Contains(t, msg, "Subject: Order confirmation\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=utf-8\r\n")
	assert.True(t, strings.Contains(msg, "\r\n\r\n<p>Thanks for your order</p>"), "blank line before body")
}

func TestSMTPProvider_BuildMessage_NoFromName(t *testing.T) {
	p := NewSMTPProvider(SMTPConfig{Host: "smtp.example.com", Port: 587})

	msg := string(p.buildMessage(&EmailData{
		To:      []string{"jo@example.com"},
		From:    "noreply@calmicasa.com",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
	}))

	assert.Contains(t, msg, "From: noreply@calmicasa.com\r\n")
	assert.NotContains(t, msg, "Reply-To:")
}

func TestSMTPProvider_BuildMessage_EncodesSubject(t *testing.T) {
	p := NewSMTPProvider(SMTPConfig{Host: "smtp.example.com", Port: 587})

	msg := string(p.buildMessage(&EmailData{
		To:      []string{"jo@example.com"},
		From:    "noreply@calmicasa.com",
		Subject: "Bestellbestätigung",
		HTML:    "<p>Hi</p>",
	}))

	require.Contains(t, msg, "Subject: ")
	assert.Contains(t, msg, "=?utf-8?q?", "non-ASCII subjects are Q-encoded")
}

func TestSMTPProvider_Send_RequiresHost(t *testing.T) {
	p := NewSMTPProvider(SMTPConfig{Port: 587})

	result, err := p.Send(&EmailData{
		To:      []string{"jo@example.com"},
		From:    "noreply@calmicasa.com",
		Subject: "Hello",
		HTML:    "<p>Hi</p>",
	})

	assert.ErrorIs(t, err, ErrSMTPHostRequired)
	assert.False(t, result.Success)
}

func TestSMTPProvider_GetName(t *testing.T) {
	assert.Equal(t, "smtp", NewSMTPProvider(SMTPConfig{}).GetName())
}
