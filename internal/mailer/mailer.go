// Package mailer delivers simulation emails. The campaign service treats
// delivery as an external collaborator: failures are reported, never fatal.
package mailer

import (
	"context"

	"github.com/ignite/phishguard/internal/pkg/logger"
)

// Message is one outbound simulation email, already rendered.
type Message struct {
	FromName  string
	FromEmail string
	To        string
	Subject   string
	HTMLBody  string
}

// Mailer sends simulation emails.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer is the stand-in used when no SMTP host is configured: it logs
// the send (redacted) and succeeds, so campaigns can be exercised end to
// end in demo and test environments.
type LogMailer struct{}

// NewLogMailer creates a mailer that logs instead of sending.
func NewLogMailer() *LogMailer { return &LogMailer{} }

// Send logs the message envelope and reports success.
func (m *LogMailer) Send(_ context.Context, msg Message) error {
	logger.Info("simulation mail (not delivered, no smtp configured)",
		"recipient", msg.To, "subject", msg.Subject)
	return nil
}
