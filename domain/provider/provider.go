// Package provider provides provider and provider-plan value types and pure functions.
package provider

import (
	"time"

	"github.com/seatsync/seatsync/domain/plan"
)

// Type distinguishes billing models a provider can run.
type Type string

const (
	// TypeDirectMSP providers buy seats on one consolidated subscription and
	// allocate them to client organizations and to their own pool.
	TypeDirectMSP Type = "direct_msp"
	// TypeReseller providers resell licenses outright; they never run
	// consolidated seat billing.
	TypeReseller Type = "reseller"
)

// Status represents provider lifecycle state.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
)

// Provider represents a reseller/MSP entity that manages billing on behalf of
// client organizations (value type).
type Provider struct {
	ID                    string
	Name                  string
	Email                 string
	Type                  Type
	GatewayCustomerID     string // external billing customer ID
	GatewaySubscriptionID string // external consolidated subscription ID
	Status                Status
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// Subscribed reports whether the provider has a consolidated subscription on
// the billing gateway.
func (p Provider) Subscribed() bool {
	return p.GatewayCustomerID != "" && p.GatewaySubscriptionID != ""
}

// Plan is a provider's per-plan seat bookkeeping (value type).
//
// Invariant: PurchasedSeats = max(0, subscribed quantity - SeatMinimum), where
// the subscribed quantity is whatever is currently set on the external
// subscription's seat line item.
type Plan struct {
	ID             string
	ProviderID     string
	PlanType       plan.Type
	SeatPriceID    string // pricing linkage to the gateway seat price; empty = unconfigured
	SeatMinimum    int    // contractual floor included in the base price, 0 = none
	AllocatedSeats int    // seats currently assigned across client orgs and the pool
	PurchasedSeats int    // seats billed above the minimum
	PoolSeats      int    // seats the provider has allocated to itself
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Configured reports whether the plan row is usable for seat reconciliation:
// a recognized plan type with a pricing linkage.
// This is a PURE function.
func (p Plan) Configured() bool {
	return plan.Known(p.PlanType) && p.SeatPriceID != ""
}

// FindPlan finds a provider plan by plan type in a list.
// This is a PURE function.
func FindPlan(plans []Plan, t plan.Type) (Plan, bool) {
	for _, p := range plans {
		if p.PlanType == t {
			return p, true
		}
	}
	return Plan{}, false
}
