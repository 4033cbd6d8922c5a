// Package mail relays contact form submissions to the site owner over SMTP.
package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"inkwell/internal/config"
)

// Mailer relays a contact form submission. Implementations send synchronously;
// a transport failure is returned to the caller with no retry.
type Mailer interface {
	Relay(ctx context.Context, fromEmail, message string) error
}

// SMTPMailer opens one outbound SMTP session per relayed message.
type SMTPMailer struct {
	host     string
	port     string
	username string
	password string
	to       string
}

// NewSMTPMailer builds a mailer from the application configuration.
func NewSMTPMailer(cfg *config.Config) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		to:       cfg.ContactEmail,
	}
}

// Relay authenticates against the configured relay host and sends the
// visitor's message to the fixed destination address. smtp.SendMail upgrades
// the connection with STARTTLS when the server advertises it.
func (m *SMTPMailer) Relay(_ context.Context, fromEmail, message string) error {
	addr := net.JoinHostPort(m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	body := BuildMessage(fromEmail, m.to, message)
	if err := smtp.SendMail(addr, auth, m.username, []string{m.to}, body); err != nil {
		return fmt.Errorf("failed to relay contact message: %w", err)
	}
	return nil
}

// BuildMessage assembles the RFC 5322 payload for a contact submission. The
// visitor's address goes into Reply-To so the owner can answer directly; the
// envelope sender stays the authenticated account.
func BuildMessage(fromEmail, to, message string) []byte {
	var b strings.Builder
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Reply-To: " + fromEmail + "\r\n")
	b.WriteString("Subject: New contact form message\r\n")
	b.WriteString("\r\n")
	b.WriteString("From: " + fromEmail + "\r\n\r\n")
	b.WriteString(message)
	b.WriteString("\r\n")
	return []byte(b.String())
}
