package email

import (
	"context"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/ports"
)

// NoopSender is a no-op email sender for when email is disabled.
type NoopSender struct{}

// NewNoopSender creates a new no-op email sender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send does nothing.
func (s *NoopSender) Send(ctx context.Context, msg ports.EmailMessage) error {
	return nil
}

// SendSeatDivergenceAlert does nothing.
func (s *NoopSender) SendSeatDivergenceAlert(ctx context.Context, to, providerID string, planType plan.Type, subscribedTo int, cause error) error {
	return nil
}

// Ensure interface compliance.
var _ ports.EmailSender = (*NoopSender)(nil)
