package mocks

import (
	"context"

	"github.com/ruyichen/task-api/internal/email"
)

// SentMail records one dispatched notification.
type SentMail struct {
	Kind string // "welcome" or "cancellation"
	To   string
	Name string
}

// MockMailer implements email.Mailer for testing, recording every
// notification instead of delivering it.
type MockMailer struct {
	// Err, when set, is returned from every send.
	Err error

	Sent []SentMail
}

// Ensure MockMailer implements email.Mailer
var _ email.Mailer = (*MockMailer)(nil)

// SendWelcome implements the Mailer interface
func (m *MockMailer) SendWelcome(ctx context.Context, to, name string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{Kind: "welcome", To: to, Name: name})
	return nil
}

// SendCancellation implements the Mailer interface
func (m *MockMailer) SendCancellation(ctx context.Context, to, name string) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{Kind: "cancellation", To: to, Name: name})
	return nil
}
