package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/ignite/phishguard/internal/config"
	"github.com/ignite/phishguard/internal/pkg/logger"
)

// SMTPMailer delivers simulation emails through a plain SMTP submission
// endpoint (the training tool's upstream relay, typically a test inbox
// service in staging).
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
}

// NewSMTPMailer creates a mailer for the configured SMTP endpoint.
func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		host:     cfg.Host,
		port:     cfg.Port,
		username: cfg.Username,
		password: cfg.Password,
	}
}

// Send submits the message. The context is accepted for interface symmetry;
// net/smtp does not support cancellation mid-dialogue.
func (m *SMTPMailer) Send(_ context.Context, msg Message) error {
	addr := fmt.Sprintf("%s:%d", m.host, m.port)

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\r\n", msg.FromName, msg.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTMLBody)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(addr, auth, msg.FromEmail, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("smtp send to %s: %w", addr, err)
	}

	logger.Info("simulation mail delivered", "recipient", msg.To, "subject", msg.Subject)
	return nil
}
