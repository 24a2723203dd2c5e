package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/ports"
)

// AdjustCall records one AdjustSeats invocation.
type AdjustCall struct {
	ProviderID   string
	PriceID      string
	FromQuantity int
	ToQuantity   int
}

// DummyGateway is a gateway for development and tests. It records every call
// and simulates success unless a failure is injected.
type DummyGateway struct {
	mu            sync.Mutex
	customers     int
	subscriptions int

	AdjustCalls []AdjustCall
	Cancelled   []string

	// FailAdjust makes AdjustSeats fail (simulates a gateway outage).
	FailAdjust error
}

// NewDummyGateway creates a new dummy subscription gateway.
func NewDummyGateway() *DummyGateway {
	return &DummyGateway{}
}

// Name returns the gateway name.
func (g *DummyGateway) Name() string {
	return "dummy"
}

// CreateCustomer returns a fake customer ID.
func (g *DummyGateway) CreateCustomer(ctx context.Context, email, name, providerID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.customers++
	return fmt.Sprintf("cus_dummy_%d", g.customers), nil
}

// CreateSubscription returns a fake subscription ID.
func (g *DummyGateway) CreateSubscription(ctx context.Context, customerID string, items []ports.SeatItem) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.subscriptions++
	return fmt.Sprintf("sub_dummy_%d", g.subscriptions), nil
}

// AdjustSeats records the call and simulates success unless FailAdjust is set.
func (g *DummyGateway) AdjustSeats(ctx context.Context, p provider.Provider, desc plan.Descriptor, fromQuantity, toQuantity int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailAdjust != nil {
		return g.FailAdjust
	}

	g.AdjustCalls = append(g.AdjustCalls, AdjustCall{
		ProviderID:   p.ID,
		PriceID:      desc.SeatPriceID,
		FromQuantity: fromQuantity,
		ToQuantity:   toQuantity,
	})
	return nil
}

// CancelSubscription records the cancellation.
func (g *DummyGateway) CancelSubscription(ctx context.Context, subscriptionID string, immediately bool) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Cancelled = append(g.Cancelled, subscriptionID)
	return nil
}

// Ensure interface compliance.
var _ ports.SubscriptionGateway = (*DummyGateway)(nil)
