// Package plan provides plan type and descriptor value types and pure functions.
package plan

// Type identifies a billable plan tier.
type Type string

const (
	TypeStarter    Type = "starter"
	TypeBusiness   Type = "business"
	TypeEnterprise Type = "enterprise"
)

// Known reports whether t is a recognized plan type.
// This is a PURE function.
func Known(t Type) bool {
	switch t {
	case TypeStarter, TypeBusiness, TypeEnterprise:
		return true
	}
	return false
}

// Descriptor carries the pricing metadata for a plan type (value type).
type Descriptor struct {
	Type                Type
	Name                string
	SeatPriceID         string // gateway price ID for the per-seat line item
	SeatPriceMonthly    int64  // cents per seat per month
	ConsolidatedBilling bool   // seats for this plan may be billed on a provider's consolidated subscription
}

// Find finds a descriptor by type in a list.
// This is a PURE function.
func Find(descriptors []Descriptor, t Type) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Type == t {
			return d, true
		}
	}
	return Descriptor{}, false
}
