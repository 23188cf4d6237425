// Package email dispatches account lifecycle notifications.
package email

import (
	"context"
	"log/slog"
)

// Mailer sends account lifecycle notifications. Delivery is best effort:
// callers log failures but never fail the triggering request over them.
type Mailer interface {
	// SendWelcome notifies a newly registered user.
	SendWelcome(ctx context.Context, to, name string) error

	// SendCancellation notifies a user whose account was just deleted.
	SendCancellation(ctx context.Context, to, name string) error
}

// LogMailer is a Mailer that only records the notification in the log.
// It stands in for a real delivery provider in development and tests.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer creates a LogMailer. If logger is nil, the default logger is used.
func NewLogMailer(logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger.With(slog.String("component", "mailer"))}
}

var _ Mailer = (*LogMailer)(nil)

// SendWelcome implements Mailer.
func (m *LogMailer) SendWelcome(ctx context.Context, to, name string) error {
	m.logger.InfoContext(ctx, "welcome email dispatched",
		"to", to,
		"name", name)
	return nil
}

// SendCancellation implements Mailer.
func (m *LogMailer) SendCancellation(ctx context.Context, to, name string) error {
	m.logger.InfoContext(ctx, "cancellation email dispatched",
		"to", to,
		"name", name)
	return nil
}
