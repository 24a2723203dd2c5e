// Package org provides client organization value types.
package org

import (
	"time"

	"github.com/seatsync/seatsync/domain/plan"
)

// Organization is a tenant whose seats are funded through a provider's
// consolidated subscription (value type).
type Organization struct {
	ID         string
	ProviderID string
	Name       string
	PlanType   plan.Type
	Seats      *int // seats visibly allocated to this org; nil = never assigned
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SeatCount returns the allocated seats, treating an unassigned count as zero.
// This is a PURE function.
func (o Organization) SeatCount() int {
	if o.Seats == nil {
		return 0
	}
	return *o.Seats
}

// Seat returns a pointer to n, for building Organization values.
func Seat(n int) *int {
	return &n
}
