package mail

import (
	"strings"
	"testing"

	"inkwell/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	msg := string(BuildMessage("visitor@x.com", "owner@site.com", "hello there"))

	assert.Contains(t, msg, "To: owner@site.com\r\n")
	assert.Contains(t, msg, "Reply-To: visitor@x.com\r\n")
	assert.Contains(t, msg, "Subject: New contact form message\r\n")
	assert.Contains(t, msg, "hello there")
	assert.True(t, strings.Contains(msg, "\r\n\r\n"), "headers must be separated from the body")
}

func TestNewSMTPMailerFromConfig(t *testing.T) {
	m := NewSMTPMailer(&config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     "587",
		SMTPUsername: "relay@example.com",
		SMTPPassword: "secret",
		ContactEmail: "owner@site.com",
	})
	require.NotNil(t, m)
	assert.Equal(t, "smtp.example.com", m.host)
	assert.Equal(t, "owner@site.com", m.to)
}
