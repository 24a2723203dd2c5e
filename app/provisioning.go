// Package app contains the ProvisioningService for provider onboarding.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/seatsync/seatsync/domain/org"
	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/ports"
)

var (
	ErrAlreadySubscribed = errors.New("provider already has a consolidated subscription")
	ErrNotSubscribed     = errors.New("provider has no consolidated subscription")
	ErrProviderInactive  = errors.New("provider is not active")
)

// ProvisioningService starts and stops consolidated seat billing for a
// provider and creates the organizations it manages.
type ProvisioningService struct {
	providers ports.ProviderStore
	plans     ports.ProviderPlanStore
	orgs      ports.OrganizationStore
	gateway   ports.SubscriptionGateway
	catalog   ports.PlanCatalog
	idGen     ports.IDGenerator
	clock     ports.Clock
	logger    zerolog.Logger

	defaultSeatMinimum int
	defaultOrgSeats    int
}

// NewProvisioningService creates a new provisioning service.
func NewProvisioningService(
	providers ports.ProviderStore,
	plans ports.ProviderPlanStore,
	orgs ports.OrganizationStore,
	gateway ports.SubscriptionGateway,
	catalog ports.PlanCatalog,
	idGen ports.IDGenerator,
	clock ports.Clock,
	logger zerolog.Logger,
	defaultSeatMinimum, defaultOrgSeats int,
) *ProvisioningService {
	return &ProvisioningService{
		providers:          providers,
		plans:              plans,
		orgs:               orgs,
		gateway:            gateway,
		catalog:            catalog,
		idGen:              idGen,
		clock:              clock,
		logger:             logger,
		defaultSeatMinimum: defaultSeatMinimum,
		defaultOrgSeats:    defaultOrgSeats,
	}
}

// StartConsolidatedBilling creates the gateway customer and consolidated
// subscription for a provider and seeds its per-plan seat bookkeeping. Each
// seat line item starts at the plan's seat minimum; below that floor no
// incremental billing happens.
func (s *ProvisioningService) StartConsolidatedBilling(ctx context.Context, providerID string, planTypes []plan.Type) error {
	p, err := s.providers.Get(ctx, providerID)
	if err != nil {
		return fmt.Errorf("load provider: %w", err)
	}

	if p.Type == provider.TypeReseller {
		return ErrResellerUnsupported
	}
	if p.Status != provider.StatusActive {
		return ErrProviderInactive
	}
	if p.GatewaySubscriptionID != "" {
		return ErrAlreadySubscribed
	}

	var descs []plan.Descriptor
	for _, t := range planTypes {
		desc, ok := s.catalog.Get(t)
		if !ok || !desc.ConsolidatedBilling {
			return fmt.Errorf("plan type %q is not available for consolidated billing", t)
		}
		descs = append(descs, desc)
	}
	if len(descs) == 0 {
		return errors.New("at least one plan type is required")
	}

	now := s.clock.Now().UTC()

	if p.GatewayCustomerID == "" {
		customerID, err := s.gateway.CreateCustomer(ctx, p.Email, p.Name, p.ID)
		if err != nil {
			return fmt.Errorf("create gateway customer: %w", err)
		}
		p.GatewayCustomerID = customerID

		s.logger.Info().
			Str("provider_id", p.ID).
			Str("customer_id", customerID).
			Msg("gateway customer created")
	}

	items := make([]ports.SeatItem, 0, len(descs))
	for _, desc := range descs {
		items = append(items, ports.SeatItem{
			PriceID:  desc.SeatPriceID,
			Quantity: s.defaultSeatMinimum,
		})
	}

	subscriptionID, err := s.gateway.CreateSubscription(ctx, p.GatewayCustomerID, items)
	if err != nil {
		return fmt.Errorf("create consolidated subscription: %w", err)
	}
	p.GatewaySubscriptionID = subscriptionID

	for _, desc := range descs {
		row := provider.Plan{
			ID:          s.idGen.New(),
			ProviderID:  p.ID,
			PlanType:    desc.Type,
			SeatPriceID: desc.SeatPriceID,
			SeatMinimum: s.defaultSeatMinimum,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.plans.Create(ctx, row); err != nil {
			return fmt.Errorf("seed provider plan %s: %w", desc.Type, err)
		}
	}

	p.UpdatedAt = now
	if err := s.providers.Update(ctx, p); err != nil {
		return fmt.Errorf("persist provider: %w", err)
	}

	s.logger.Info().
		Str("provider_id", p.ID).
		Str("subscription_id", subscriptionID).
		Int("plans", len(descs)).
		Msg("consolidated billing started")

	return nil
}

// StopConsolidatedBilling cancels the provider's consolidated subscription
// and marks the provider cancelled. Seat bookkeeping rows are kept for audit.
func (s *ProvisioningService) StopConsolidatedBilling(ctx context.Context, providerID string) error {
	p, err := s.providers.Get(ctx, providerID)
	if err != nil {
		return fmt.Errorf("load provider: %w", err)
	}
	if p.GatewaySubscriptionID == "" {
		return ErrNotSubscribed
	}

	if err := s.gateway.CancelSubscription(ctx, p.GatewaySubscriptionID, false); err != nil {
		return fmt.Errorf("cancel subscription: %w", err)
	}

	p.Status = provider.StatusCancelled
	p.UpdatedAt = s.clock.Now().UTC()
	if err := s.providers.Update(ctx, p); err != nil {
		return fmt.Errorf("persist provider: %w", err)
	}

	s.logger.Info().
		Str("provider_id", p.ID).
		Str("subscription_id", p.GatewaySubscriptionID).
		Msg("consolidated billing stopped")

	return nil
}

// CreateOrganization creates a client organization under a provider with the
// configured default seat count. Seat changes after creation go through the
// ReconcileService only.
func (s *ProvisioningService) CreateOrganization(ctx context.Context, providerID, name string, planType plan.Type) (org.Organization, error) {
	p, err := s.providers.Get(ctx, providerID)
	if err != nil {
		return org.Organization{}, fmt.Errorf("load provider: %w", err)
	}

	desc, ok := s.catalog.Get(planType)
	if !ok || !desc.ConsolidatedBilling {
		return org.Organization{}, fmt.Errorf("plan type %q is not available for consolidated billing", planType)
	}

	now := s.clock.Now().UTC()
	o := org.Organization{
		ID:         s.idGen.New(),
		ProviderID: p.ID,
		Name:       name,
		PlanType:   planType,
		Seats:      org.Seat(s.defaultOrgSeats),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.orgs.Create(ctx, o); err != nil {
		return org.Organization{}, fmt.Errorf("create organization: %w", err)
	}

	s.logger.Info().
		Str("provider_id", p.ID).
		Str("org_id", o.ID).
		Str("plan_type", string(planType)).
		Int("seats", s.defaultOrgSeats).
		Msg("organization created")

	return o, nil
}
