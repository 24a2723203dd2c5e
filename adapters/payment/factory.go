package payment

import (
	"fmt"

	"github.com/seatsync/seatsync/ports"
)

// NewGateway creates a subscription gateway for the configured mode.
func NewGateway(mode, stripeSecretKey string) (ports.SubscriptionGateway, error) {
	switch mode {
	case "stripe":
		if stripeSecretKey == "" {
			return nil, fmt.Errorf("stripe secret key is required")
		}
		return NewStripeGateway(StripeConfig{SecretKey: stripeSecretKey}), nil

	case "dummy", "test":
		// Dummy gateway for development - simulates successful billing calls
		return NewDummyGateway(), nil

	case "none", "":
		return NewNoopGateway(), nil

	default:
		return nil, fmt.Errorf("unknown billing gateway: %s", mode)
	}
}
