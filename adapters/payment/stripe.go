// Package payment provides subscription gateway adapters.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/subscription"
	"github.com/stripe/stripe-go/v76/subscriptionitem"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/ports"
)

// StripeConfig holds Stripe configuration.
type StripeConfig struct {
	SecretKey string
}

// StripeGateway implements ports.SubscriptionGateway for Stripe.
type StripeGateway struct {
	config StripeConfig
}

// NewStripeGateway creates a new Stripe subscription gateway.
func NewStripeGateway(config StripeConfig) *StripeGateway {
	stripe.Key = config.SecretKey
	return &StripeGateway{config: config}
}

// Name returns the gateway name.
func (g *StripeGateway) Name() string {
	return "stripe"
}

// CreateCustomer creates a billing customer in Stripe.
func (g *StripeGateway) CreateCustomer(ctx context.Context, email, name, providerID string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.AddMetadata("provider_id", providerID)

	c, err := customer.New(params)
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// CreateSubscription creates a consolidated subscription with the given seat
// line items.
func (g *StripeGateway) CreateSubscription(ctx context.Context, customerID string, items []ports.SeatItem) (string, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
	}
	for _, item := range items {
		params.Items = append(params.Items, &stripe.SubscriptionItemsParams{
			Price:    stripe.String(item.PriceID),
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	s, err := subscription.New(params)
	if err != nil {
		return "", err
	}
	return s.ID, nil
}

// AdjustSeats sets the seat line item's quantity on the provider's
// subscription to toQuantity. The quantity is absolute, so a retried call is
// safe to repeat; fromQuantity is only a proration hint and Stripe prorates
// from its own recorded quantity regardless.
func (g *StripeGateway) AdjustSeats(ctx context.Context, p provider.Provider, desc plan.Descriptor, fromQuantity, toQuantity int) error {
	if p.GatewaySubscriptionID == "" {
		return fmt.Errorf("provider %s has no gateway subscription", p.ID)
	}

	s, err := subscription.Get(p.GatewaySubscriptionID, nil)
	if err != nil {
		return fmt.Errorf("get subscription: %w", err)
	}

	var itemID string
	for _, item := range s.Items.Data {
		if item.Price != nil && item.Price.ID == desc.SeatPriceID {
			itemID = item.ID
			break
		}
	}

	if itemID == "" {
		// No seat line item for this plan yet; add one at the target quantity.
		_, err := subscriptionitem.New(&stripe.SubscriptionItemParams{
			Subscription: stripe.String(s.ID),
			Price:        stripe.String(desc.SeatPriceID),
			Quantity:     stripe.Int64(int64(toQuantity)),
		})
		if err != nil {
			return fmt.Errorf("add seat item: %w", err)
		}
		return nil
	}

	_, err = subscriptionitem.Update(itemID, &stripe.SubscriptionItemParams{
		Quantity: stripe.Int64(int64(toQuantity)),
	})
	if err != nil {
		return fmt.Errorf("update seat item: %w", err)
	}
	return nil
}

// CancelSubscription cancels a consolidated subscription.
func (g *StripeGateway) CancelSubscription(ctx context.Context, subscriptionID string, immediately bool) error {
	if immediately {
		_, err := subscription.Cancel(subscriptionID, nil)
		return err
	}

	// Cancel at period end
	params := &stripe.SubscriptionParams{
		CancelAtPeriodEnd: stripe.Bool(true),
	}
	_, err := subscription.Update(subscriptionID, params)
	return err
}

// Ensure interface compliance.
var _ ports.SubscriptionGateway = (*StripeGateway)(nil)
