// Package notification sends the registration confirmation email. Delivery is
// best-effort: outcomes are logged and counted, never reported to the caller.
package notification

import (
	"context"
	"log/slog"
)

// Message is a rendered plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

//go:generate mockgen -source=notification.go -destination=mocks/mocks.go -package=mocks Mailer

// Mailer delivers a rendered message.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

// Outcome labels for logs and metrics.
const (
	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// LogMailer writes messages to the log instead of delivering them. Used when
// SMTP credentials are not configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg *Message) error {
	m.logger.InfoContext(ctx, "email not delivered: smtp disabled",
		"subject", msg.Subject,
		"body_bytes", len(msg.Body),
	)
	return ctx.Err()
}
