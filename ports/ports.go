// Package ports defines interfaces (contracts) between layers.
// These interfaces enable dependency injection and testability.
// Implementations live in adapters/.
package ports

import (
	"context"
	"time"

	"github.com/seatsync/seatsync/domain/org"
	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
)

// -----------------------------------------------------------------------------
// Infrastructure Ports
// -----------------------------------------------------------------------------

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// IDGenerator generates unique identifiers.
type IDGenerator interface {
	New() string
}

// -----------------------------------------------------------------------------
// Data Store Ports
// -----------------------------------------------------------------------------

// ProviderStore persists providers.
type ProviderStore interface {
	// Get retrieves a provider by ID.
	Get(ctx context.Context, id string) (provider.Provider, error)

	// Create stores a new provider.
	Create(ctx context.Context, p provider.Provider) error

	// Update modifies an existing provider.
	Update(ctx context.Context, p provider.Provider) error

	// List returns all providers.
	List(ctx context.Context) ([]provider.Provider, error)
}

// ProviderPlanStore persists a provider's per-plan seat bookkeeping.
type ProviderPlanStore interface {
	// GetByProvider returns all plan rows for a provider.
	GetByProvider(ctx context.Context, providerID string) ([]provider.Plan, error)

	// Create stores a new provider plan row.
	Create(ctx context.Context, p provider.Plan) error

	// Replace overwrites an existing provider plan row.
	Replace(ctx context.Context, p provider.Plan) error
}

// OrganizationStore persists client organizations.
type OrganizationStore interface {
	// Get retrieves an organization by ID.
	Get(ctx context.Context, id string) (org.Organization, error)

	// Create stores a new organization.
	Create(ctx context.Context, o org.Organization) error

	// Replace overwrites an existing organization.
	Replace(ctx context.Context, o org.Organization) error

	// ListByProvider returns all organizations managed by a provider.
	ListByProvider(ctx context.Context, providerID string) ([]org.Organization, error)
}

// AssignedSeatQuery computes assigned seat totals.
type AssignedSeatQuery interface {
	// AssignedSeatTotal returns the sum of seats currently allocated across
	// all of the provider's client organizations for the plan type, plus the
	// provider's own pool. It fails if the provider/plan combination is
	// unknown.
	AssignedSeatTotal(ctx context.Context, providerID string, planType plan.Type) (int, error)
}

// -----------------------------------------------------------------------------
// External Service Ports
// -----------------------------------------------------------------------------

// SeatItem is a seat line item on a consolidated subscription.
type SeatItem struct {
	PriceID  string
	Quantity int
}

// SubscriptionGateway interfaces with the external billing system of record
// (Stripe). Seat quantities are set as absolute values, so a retried call
// after a transient failure is safe to repeat.
type SubscriptionGateway interface {
	// Name returns the gateway name (e.g., "stripe").
	Name() string

	// CreateCustomer creates a billing customer for a provider.
	CreateCustomer(ctx context.Context, email, name, providerID string) (customerID string, err error)

	// CreateSubscription creates a consolidated subscription with the given
	// seat line items.
	CreateSubscription(ctx context.Context, customerID string, items []SeatItem) (subscriptionID string, err error)

	// AdjustSeats sets the seat line item's quantity on the provider's
	// subscription to toQuantity. fromQuantity is informational (the gateway
	// is the source of truth; it is only a proration hint).
	AdjustSeats(ctx context.Context, p provider.Provider, desc plan.Descriptor, fromQuantity, toQuantity int) error

	// CancelSubscription cancels a consolidated subscription.
	CancelSubscription(ctx context.Context, subscriptionID string, immediately bool) error
}

// PlanCatalog maps a plan type to its pricing metadata. Pure lookup.
type PlanCatalog interface {
	// Get returns the descriptor for a plan type; ok is false for an
	// unrecognized type.
	Get(t plan.Type) (desc plan.Descriptor, ok bool)

	// List returns all descriptors.
	List() []plan.Descriptor
}

// -----------------------------------------------------------------------------
// Notification Ports
// -----------------------------------------------------------------------------

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	To       string
	Subject  string
	TextBody string
}

// EmailSender sends operator notifications.
type EmailSender interface {
	// Send sends an email.
	Send(ctx context.Context, msg EmailMessage) error

	// SendSeatDivergenceAlert notifies an operator that the external
	// subscription was updated but local seat records could not be persisted.
	SendSeatDivergenceAlert(ctx context.Context, to, providerID string, planType plan.Type, subscribedTo int, cause error) error
}
