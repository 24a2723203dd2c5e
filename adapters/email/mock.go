package email

import (
	"context"
	"sync"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/ports"
)

// MockSender stores sent emails in memory instead of actually sending them.
type MockSender struct {
	mu     sync.Mutex
	emails []ports.EmailMessage

	// Optional: fail if set
	FailError error
}

// NewMockSender creates a new mock email sender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send stores the email in memory.
func (m *MockSender) Send(ctx context.Context, msg ports.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailError != nil {
		return m.FailError
	}
	m.emails = append(m.emails, msg)
	return nil
}

// SendSeatDivergenceAlert stores the alert in memory.
func (m *MockSender) SendSeatDivergenceAlert(ctx context.Context, to, providerID string, planType plan.Type, subscribedTo int, cause error) error {
	return m.Send(ctx, divergenceMessage(to, providerID, planType, subscribedTo, cause))
}

// Sent returns a copy of the emails sent so far.
func (m *MockSender) Sent() []ports.EmailMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.EmailMessage, len(m.emails))
	copy(out, m.emails)
	return out
}

// Ensure interface compliance.
var _ ports.EmailSender = (*MockSender)(nil)
