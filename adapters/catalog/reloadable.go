package catalog

import (
	"sync/atomic"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/ports"
)

// Reloadable is a PlanCatalog whose contents can be swapped at runtime, used
// for config hot reload. Readers always see one consistent snapshot.
type Reloadable struct {
	current atomic.Pointer[Static]
}

// NewReloadable creates a reloadable catalog with an initial set of
// descriptors.
func NewReloadable(descriptors []plan.Descriptor) *Reloadable {
	r := &Reloadable{}
	r.current.Store(NewStatic(descriptors))
	return r
}

// Swap replaces the catalog contents.
func (r *Reloadable) Swap(descriptors []plan.Descriptor) {
	r.current.Store(NewStatic(descriptors))
}

// Get returns the descriptor for a plan type.
func (r *Reloadable) Get(t plan.Type) (plan.Descriptor, bool) {
	return r.current.Load().Get(t)
}

// List returns all descriptors in registration order.
func (r *Reloadable) List() []plan.Descriptor {
	return r.current.Load().List()
}

// Ensure interface compliance.
var _ ports.PlanCatalog = (*Reloadable)(nil)
