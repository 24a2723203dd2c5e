package memory

import (
	"context"
	"fmt"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/ports"
)

// AssignedSeatQuery computes assigned seat totals from in-memory stores.
type AssignedSeatQuery struct {
	plans *ProviderPlanStore
	orgs  *OrganizationStore
}

// NewAssignedSeatQuery creates a query over the given stores.
func NewAssignedSeatQuery(plans *ProviderPlanStore, orgs *OrganizationStore) *AssignedSeatQuery {
	return &AssignedSeatQuery{plans: plans, orgs: orgs}
}

// AssignedSeatTotal sums the provider's organization seats for the plan type
// plus its own pool. Fails if the provider has no plan row for the type.
func (q *AssignedSeatQuery) AssignedSeatTotal(ctx context.Context, providerID string, planType plan.Type) (int, error) {
	rows, err := q.plans.GetByProvider(ctx, providerID)
	if err != nil {
		return 0, err
	}
	pp, ok := provider.FindPlan(rows, planType)
	if !ok {
		return 0, fmt.Errorf("no %s plan for provider %s", planType, providerID)
	}

	total := pp.PoolSeats
	orgs, err := q.orgs.ListByProvider(ctx, providerID)
	if err != nil {
		return 0, err
	}
	for _, o := range orgs {
		if o.PlanType == planType {
			total += o.SeatCount()
		}
	}
	return total, nil
}

// Ensure interface compliance.
var _ ports.AssignedSeatQuery = (*AssignedSeatQuery)(nil)
