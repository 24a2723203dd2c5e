// Package seats provides the pure seat reconciliation arithmetic.
// All functions are deterministic with no side effects.
package seats

// Change is the reconciliation plan produced by Classify (value type).
// It tells the caller whether the external subscription quantity must move
// and what the provider's local bookkeeping becomes afterwards.
type Change struct {
	NewAllocated int // assigned seat total after the change

	// Gateway instruction. SubscribedFrom is informational (proration hint);
	// SubscribedTo is the absolute quantity to set on the seat line item.
	CallGateway    bool
	SubscribedFrom int
	SubscribedTo   int

	// NewPurchased is the seats billed above the minimum once SubscribedTo is
	// in effect. Only meaningful when CallGateway is true; without a gateway
	// call the purchased count is left untouched.
	NewPurchased int
}

// Classify decides how a seat delta interacts with the contractual seat
// minimum. The subscription is only ever billed for seats above the minimum,
// so no gateway call is needed while both the before and after totals stay
// within it; any transition crossing the minimum, in either direction, must
// tell the external system the new billed quantity.
//
// The four cases are exhaustive over the sign of currentAssigned-minimum and
// newAssigned-minimum:
//
//	current <= min, new <= min  ->  local update only
//	current <= min, new  > min  ->  gateway (min, new)
//	current  > min, new  > min  ->  gateway (current, new)
//	current  > min, new <= min  ->  gateway (current, min)
//
// This is a PURE function.
func Classify(currentAssigned, seatDelta, seatMinimum int) Change {
	newAssigned := currentAssigned + seatDelta

	ch := Change{NewAllocated: newAssigned}

	switch {
	case currentAssigned <= seatMinimum && newAssigned <= seatMinimum:
		// Both endpoints inside the included minimum: nothing to bill.
		return ch

	case currentAssigned <= seatMinimum && newAssigned > seatMinimum:
		ch.CallGateway = true
		ch.SubscribedFrom = seatMinimum
		ch.SubscribedTo = newAssigned

	case currentAssigned > seatMinimum && newAssigned > seatMinimum:
		ch.CallGateway = true
		ch.SubscribedFrom = currentAssigned
		ch.SubscribedTo = newAssigned

	default: // current > min, new <= min: fall back down to the floor
		ch.CallGateway = true
		ch.SubscribedFrom = currentAssigned
		ch.SubscribedTo = seatMinimum
	}

	ch.NewPurchased = Purchased(ch.SubscribedTo, seatMinimum)
	return ch
}

// Purchased returns the seats billed above the minimum for a subscribed
// quantity.
// This is a PURE function.
func Purchased(subscribed, seatMinimum int) int {
	if subscribed <= seatMinimum {
		return 0
	}
	return subscribed - seatMinimum
}
