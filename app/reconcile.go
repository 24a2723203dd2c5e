// Package app contains the ReconcileService that keeps provider seat
// bookkeeping aligned with the external billing subscription.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/seatsync/seatsync/adapters/metrics"
	"github.com/seatsync/seatsync/domain/org"
	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/domain/seats"
	"github.com/seatsync/seatsync/ports"
)

// Domain-rule violations surface to callers as one of these sentinel errors.
// The generic ErrContactSupport deliberately hides billing-configuration
// detail from end users; the specific cause goes to the logs only.
var (
	ErrMissingArgument     = errors.New("provider and organization are required")
	ErrResellerUnsupported = errors.New("consolidated seat billing is not supported for reseller providers")
	ErrNegativeSeats       = errors.New("cannot assign a negative number of seats")
	ErrPoolUnsupported     = errors.New("pooled seats are only available to direct MSP providers")
	ErrContactSupport      = errors.New("there is a problem with this billing configuration, please contact support")
)

// Outcome classifies what a reconciliation call did.
type Outcome string

const (
	// OutcomeUnchanged means the requested count matched the current one;
	// no store or gateway was touched.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeUpdated means local records (and the gateway, if needed) now
	// reflect the requested seats.
	OutcomeUpdated Outcome = "updated"
	// OutcomeRejected means a precondition failed before anything changed;
	// the call is safe to retry after fixing the input.
	OutcomeRejected Outcome = "rejected"
	// OutcomeGatewayFailed means the external subscription update failed;
	// local seat counts were left untouched.
	OutcomeGatewayFailed Outcome = "gateway_failed"
	// OutcomePersistFailed means local persistence failed. When the change
	// required a gateway call the external subscription has already been
	// updated and local records are stale until an operator intervenes.
	OutcomePersistFailed Outcome = "persist_failed"
)

// Result is the tagged outcome of a reconciliation call.
type Result struct {
	Outcome Outcome
	Change  seats.Change
	Err     error
}

// Failed reports whether the call left the requested change unapplied.
func (r Result) Failed() bool {
	return r.Outcome == OutcomeRejected || r.Outcome == OutcomeGatewayFailed || r.Outcome == OutcomePersistFailed
}

func rejected(err error) Result {
	return Result{Outcome: OutcomeRejected, Err: err}
}

// ReconcileService reconciles the seats a provider has purchased on the
// external subscription with the seats allocated across its client
// organizations and its own pool.
type ReconcileService struct {
	plans    ports.ProviderPlanStore
	orgs     ports.OrganizationStore
	assigned ports.AssignedSeatQuery
	gateway  ports.SubscriptionGateway
	catalog  ports.PlanCatalog
	email    ports.EmailSender
	alertTo  string
	clock    ports.Clock
	metrics  *metrics.Collector
	logger   zerolog.Logger

	// Two concurrent reconciliations for the same provider/plan would read
	// the same pre-change total and race to persist AllocatedSeats; the
	// read-compute-write sequence is serialized per provider/plan.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewReconcileService creates a new seat reconciliation service. alertTo is
// the operator address for divergence alerts; empty disables them.
func NewReconcileService(
	plans ports.ProviderPlanStore,
	orgs ports.OrganizationStore,
	assigned ports.AssignedSeatQuery,
	gateway ports.SubscriptionGateway,
	catalog ports.PlanCatalog,
	email ports.EmailSender,
	alertTo string,
	clock ports.Clock,
	collector *metrics.Collector,
	logger zerolog.Logger,
) *ReconcileService {
	return &ReconcileService{
		plans:    plans,
		orgs:     orgs,
		assigned: assigned,
		gateway:  gateway,
		catalog:  catalog,
		email:    email,
		alertTo:  alertTo,
		clock:    clock,
		metrics:  collector,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// ReconcileOrganizationSeats sets an organization's seat count to
// requestedSeats and aligns the provider's plan bookkeeping and the external
// subscription quantity with the new assigned total.
func (s *ReconcileService) ReconcileOrganizationSeats(
	ctx context.Context,
	p *provider.Provider,
	o *org.Organization,
	requestedSeats int,
) Result {
	if p == nil || o == nil {
		return s.count("organization", rejected(ErrMissingArgument))
	}

	if p.Type == provider.TypeReseller {
		s.logger.Warn().
			Str("provider_id", p.ID).
			Msg("seat reconciliation requested for a reseller provider")
		return s.count("organization", rejected(ErrResellerUnsupported))
	}

	if requestedSeats < 0 {
		s.logger.Warn().
			Str("provider_id", p.ID).
			Str("org_id", o.ID).
			Int("requested_seats", requestedSeats).
			Msg("negative seat count rejected")
		return s.count("organization", rejected(ErrNegativeSeats))
	}

	// Idempotence: a request for the current count touches nothing.
	if o.Seats != nil && *o.Seats == requestedSeats {
		s.logger.Info().
			Str("provider_id", p.ID).
			Str("org_id", o.ID).
			Int("seats", requestedSeats).
			Msg("requested seat count matches current allocation, nothing to do")
		return s.count("organization", Result{Outcome: OutcomeUnchanged})
	}

	desc, ok := s.catalog.Get(o.PlanType)
	if !ok || !desc.ConsolidatedBilling {
		s.logger.Error().
			Str("provider_id", p.ID).
			Str("org_id", o.ID).
			Str("plan_type", string(o.PlanType)).
			Msg("plan type does not support consolidated billing")
		return s.count("organization", rejected(ErrContactSupport))
	}

	// The plan row read belongs inside the serialized section: a concurrent
	// reconciliation rewrites PoolSeats and PurchasedSeats, and a row captured
	// before the lock would persist those fields stale.
	unlock := s.lock(p.ID, o.PlanType)
	defer unlock()

	pp, res := s.loadConfiguredPlan(ctx, p.ID, o.PlanType)
	if res != nil {
		return s.count("organization", *res)
	}

	current, err := s.assigned.AssignedSeatTotal(ctx, p.ID, pp.PlanType)
	if err != nil {
		s.logger.Error().Err(err).
			Str("provider_id", p.ID).
			Str("plan_type", string(pp.PlanType)).
			Msg("failed to compute assigned seat total")
		return s.count("organization", rejected(fmt.Errorf("assigned seat total: %w", err)))
	}

	ch := seats.Classify(current, requestedSeats-o.SeatCount(), pp.SeatMinimum)

	s.logger.Info().
		Str("provider_id", p.ID).
		Str("org_id", o.ID).
		Int("current_seats", o.SeatCount()).
		Int("requested_seats", requestedSeats).
		Int("assigned_total", current).
		Int("new_assigned_total", ch.NewAllocated).
		Int("seat_minimum", pp.SeatMinimum).
		Bool("gateway_change", ch.CallGateway).
		Msg("reconciling organization seats")

	return s.count("organization", s.apply(ctx, *p, pp, o, requestedSeats, ch))
}

// ReconcileProviderPoolSeats adjusts the provider's own seat pool by
// seatAdjustment (which may be negative) for the given plan type. Only
// providers running the pooled direct-MSP model may call this.
func (s *ReconcileService) ReconcileProviderPoolSeats(
	ctx context.Context,
	p *provider.Provider,
	planType plan.Type,
	seatAdjustment int,
) Result {
	if p == nil {
		return s.count("pool", rejected(ErrMissingArgument))
	}

	if p.Type == provider.TypeReseller {
		s.logger.Warn().
			Str("provider_id", p.ID).
			Msg("pool seat reconciliation requested for a reseller provider")
		return s.count("pool", rejected(ErrResellerUnsupported))
	}
	if p.Type != provider.TypeDirectMSP {
		return s.count("pool", rejected(ErrPoolUnsupported))
	}

	if seatAdjustment == 0 {
		s.logger.Info().
			Str("provider_id", p.ID).
			Str("plan_type", string(planType)).
			Msg("zero pool seat adjustment, nothing to do")
		return s.count("pool", Result{Outcome: OutcomeUnchanged})
	}

	desc, ok := s.catalog.Get(planType)
	if !ok || !desc.ConsolidatedBilling {
		s.logger.Error().
			Str("provider_id", p.ID).
			Str("plan_type", string(planType)).
			Msg("plan type does not support consolidated billing")
		return s.count("pool", rejected(ErrContactSupport))
	}

	// Lock before loading the plan row: PoolSeats read outside the critical
	// section could be overwritten by a concurrent adjustment.
	unlock := s.lock(p.ID, planType)
	defer unlock()

	pp, res := s.loadConfiguredPlan(ctx, p.ID, planType)
	if res != nil {
		return s.count("pool", *res)
	}

	if pp.PoolSeats+seatAdjustment < 0 {
		s.logger.Warn().
			Str("provider_id", p.ID).
			Str("plan_type", string(planType)).
			Int("pool_seats", pp.PoolSeats).
			Int("adjustment", seatAdjustment).
			Msg("pool seat decrease below zero rejected")
		return s.count("pool", rejected(ErrNegativeSeats))
	}

	current, err := s.assigned.AssignedSeatTotal(ctx, p.ID, pp.PlanType)
	if err != nil {
		s.logger.Error().Err(err).
			Str("provider_id", p.ID).
			Str("plan_type", string(pp.PlanType)).
			Msg("failed to compute assigned seat total")
		return s.count("pool", rejected(fmt.Errorf("assigned seat total: %w", err)))
	}

	ch := seats.Classify(current, seatAdjustment, pp.SeatMinimum)
	pp.PoolSeats += seatAdjustment

	s.logger.Info().
		Str("provider_id", p.ID).
		Str("plan_type", string(pp.PlanType)).
		Int("adjustment", seatAdjustment).
		Int("assigned_total", current).
		Int("new_assigned_total", ch.NewAllocated).
		Int("seat_minimum", pp.SeatMinimum).
		Bool("gateway_change", ch.CallGateway).
		Msg("reconciling provider pool seats")

	return s.count("pool", s.apply(ctx, *p, pp, nil, 0, ch))
}

// loadConfiguredPlan loads the provider's plan row for a plan type and
// verifies it is configured for reconciliation. A non-nil Result is the
// rejection to return to the caller.
func (s *ReconcileService) loadConfiguredPlan(ctx context.Context, providerID string, t plan.Type) (provider.Plan, *Result) {
	rows, err := s.plans.GetByProvider(ctx, providerID)
	if err != nil {
		s.logger.Error().Err(err).
			Str("provider_id", providerID).
			Msg("failed to load provider plans")
		res := rejected(fmt.Errorf("load provider plans: %w", err))
		return provider.Plan{}, &res
	}

	pp, ok := provider.FindPlan(rows, t)
	if !ok || !pp.Configured() {
		s.logger.Error().
			Str("provider_id", providerID).
			Str("plan_type", string(t)).
			Bool("found", ok).
			Msg("provider has no configured plan for this plan type")
		res := rejected(ErrContactSupport)
		return provider.Plan{}, &res
	}
	return pp, nil
}

// apply executes the classified change: gateway first, local persistence
// second. The external subscription update always happens-before the local
// seat counts, so local bookkeeping never claims a higher subscribed quantity
// than the gateway has been told.
func (s *ReconcileService) apply(
	ctx context.Context,
	p provider.Provider,
	pp provider.Plan,
	o *org.Organization,
	orgSeats int,
	ch seats.Change,
) Result {
	now := s.clock.Now().UTC()

	if ch.CallGateway {
		desc, ok := s.catalog.Get(pp.PlanType)
		if !ok {
			s.logger.Error().
				Str("provider_id", p.ID).
				Str("plan_type", string(pp.PlanType)).
				Msg("no catalog entry for plan type")
			return rejected(ErrContactSupport)
		}

		s.metrics.GatewayCalls.WithLabelValues(s.gateway.Name(), "adjust_seats").Inc()
		if err := s.gateway.AdjustSeats(ctx, p, desc, ch.SubscribedFrom, ch.SubscribedTo); err != nil {
			s.metrics.GatewayFailures.WithLabelValues(s.gateway.Name(), "adjust_seats").Inc()
			s.logger.Error().Err(err).
				Str("provider_id", p.ID).
				Str("plan_type", string(pp.PlanType)).
				Int("from_quantity", ch.SubscribedFrom).
				Int("to_quantity", ch.SubscribedTo).
				Msg("subscription gateway update failed, local seat counts untouched")
			return Result{Outcome: OutcomeGatewayFailed, Change: ch, Err: fmt.Errorf("adjust seats: %w", err)}
		}
		pp.PurchasedSeats = ch.NewPurchased
	}

	if o != nil {
		o.Seats = org.Seat(orgSeats)
		o.UpdatedAt = now
		if err := s.orgs.Replace(ctx, *o); err != nil {
			return s.persistFailed(ctx, p, pp, ch, "persist organization", err)
		}
	}

	pp.AllocatedSeats = ch.NewAllocated
	pp.UpdatedAt = now
	if err := s.plans.Replace(ctx, pp); err != nil {
		return s.persistFailed(ctx, p, pp, ch, "persist provider plan", err)
	}

	s.metrics.AllocatedSeats.WithLabelValues(p.ID, string(pp.PlanType)).Set(float64(pp.AllocatedSeats))
	s.metrics.PurchasedSeats.WithLabelValues(p.ID, string(pp.PlanType)).Set(float64(pp.PurchasedSeats))

	s.logger.Info().
		Str("provider_id", p.ID).
		Str("plan_type", string(pp.PlanType)).
		Int("allocated_seats", pp.AllocatedSeats).
		Int("purchased_seats", pp.PurchasedSeats).
		Msg("seat reconciliation complete")

	return Result{Outcome: OutcomeUpdated, Change: ch}
}

// persistFailed reports a local persistence failure. When the gateway has
// already been updated the system is left with stale local records; there is
// no compensating call, an operator is alerted instead.
func (s *ReconcileService) persistFailed(
	ctx context.Context,
	p provider.Provider,
	pp provider.Plan,
	ch seats.Change,
	step string,
	err error,
) Result {
	event := s.logger.Error().Err(err).
		Str("provider_id", p.ID).
		Str("plan_type", string(pp.PlanType)).
		Str("step", step)

	if ch.CallGateway {
		event.Int("subscribed_quantity", ch.SubscribedTo).
			Msg("local seat persistence failed after the subscription was updated, records are stale")

		s.metrics.SeatDivergence.WithLabelValues(p.ID, string(pp.PlanType)).Inc()

		if s.alertTo != "" {
			if alertErr := s.email.SendSeatDivergenceAlert(ctx, s.alertTo, p.ID, pp.PlanType, ch.SubscribedTo, err); alertErr != nil {
				s.logger.Error().Err(alertErr).
					Str("provider_id", p.ID).
					Msg("failed to send seat divergence alert")
			}
		}
	} else {
		event.Msg("local seat persistence failed")
	}

	return Result{Outcome: OutcomePersistFailed, Change: ch, Err: fmt.Errorf("%s: %w", step, err)}
}

// count records the outcome metric for an operation and passes the result
// through.
func (s *ReconcileService) count(operation string, r Result) Result {
	s.metrics.ReconciliationsTotal.WithLabelValues(operation, string(r.Outcome)).Inc()
	return r
}

// lock serializes reconciliation for one provider/plan pair.
func (s *ReconcileService) lock(providerID string, t plan.Type) func() {
	key := providerID + "/" + string(t)

	s.mu.Lock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}
