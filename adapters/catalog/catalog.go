// Package catalog provides a static PlanCatalog built at startup.
// It replaces any global plan registry; the catalog is injected explicitly so
// tests stay deterministic.
package catalog

import (
	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/ports"
)

// Static is an immutable, in-memory plan catalog.
type Static struct {
	byType map[plan.Type]plan.Descriptor
	order  []plan.Type
}

// NewStatic creates a catalog from a list of descriptors. Later duplicates of
// the same type overwrite earlier ones.
func NewStatic(descriptors []plan.Descriptor) *Static {
	c := &Static{byType: make(map[plan.Type]plan.Descriptor)}
	for _, d := range descriptors {
		if _, seen := c.byType[d.Type]; !seen {
			c.order = append(c.order, d.Type)
		}
		c.byType[d.Type] = d
	}
	return c
}

// Get returns the descriptor for a plan type.
func (c *Static) Get(t plan.Type) (plan.Descriptor, bool) {
	d, ok := c.byType[t]
	return d, ok
}

// List returns all descriptors in registration order.
func (c *Static) List() []plan.Descriptor {
	out := make([]plan.Descriptor, 0, len(c.order))
	for _, t := range c.order {
		out = append(out, c.byType[t])
	}
	return out
}

// Ensure interface compliance.
var _ ports.PlanCatalog = (*Static)(nil)
