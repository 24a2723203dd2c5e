package payment

import (
	"context"
	"errors"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/ports"
)

// ErrBillingDisabled is returned when no billing gateway is configured.
var ErrBillingDisabled = errors.New("billing gateway is not configured")

// NoopGateway is a no-op gateway for when billing is disabled.
type NoopGateway struct{}

// NewNoopGateway creates a new no-op subscription gateway.
func NewNoopGateway() *NoopGateway {
	return &NoopGateway{}
}

// Name returns the gateway name.
func (g *NoopGateway) Name() string {
	return "none"
}

// CreateCustomer returns an error as billing is disabled.
func (g *NoopGateway) CreateCustomer(ctx context.Context, email, name, providerID string) (string, error) {
	return "", ErrBillingDisabled
}

// CreateSubscription returns an error as billing is disabled.
func (g *NoopGateway) CreateSubscription(ctx context.Context, customerID string, items []ports.SeatItem) (string, error) {
	return "", ErrBillingDisabled
}

// AdjustSeats returns an error as billing is disabled.
func (g *NoopGateway) AdjustSeats(ctx context.Context, p provider.Provider, desc plan.Descriptor, fromQuantity, toQuantity int) error {
	return ErrBillingDisabled
}

// CancelSubscription returns an error as billing is disabled.
func (g *NoopGateway) CancelSubscription(ctx context.Context, subscriptionID string, immediately bool) error {
	return ErrBillingDisabled
}

// Ensure interface compliance.
var _ ports.SubscriptionGateway = (*NoopGateway)(nil)
