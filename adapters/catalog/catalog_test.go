package catalog

import (
	"testing"

	"github.com/seatsync/seatsync/domain/plan"
)

func TestStaticLookup(t *testing.T) {
	c := NewStatic([]plan.Descriptor{
		{Type: plan.TypeBusiness, Name: "Business", SeatPriceID: "price_biz", ConsolidatedBilling: true},
		{Type: plan.TypeEnterprise, Name: "Enterprise", SeatPriceID: "price_ent", ConsolidatedBilling: true},
	})

	d, ok := c.Get(plan.TypeBusiness)
	if !ok {
		t.Fatal("expected business descriptor")
	}
	if d.SeatPriceID != "price_biz" {
		t.Errorf("SeatPriceID = %q, want price_biz", d.SeatPriceID)
	}

	if _, ok := c.Get(plan.TypeStarter); ok {
		t.Error("expected starter to be absent")
	}

	if got := len(c.List()); got != 2 {
		t.Errorf("List returned %d descriptors, want 2", got)
	}
}

func TestStaticDuplicateOverwrites(t *testing.T) {
	c := NewStatic([]plan.Descriptor{
		{Type: plan.TypeBusiness, SeatPriceID: "old"},
		{Type: plan.TypeBusiness, SeatPriceID: "new"},
	})

	d, _ := c.Get(plan.TypeBusiness)
	if d.SeatPriceID != "new" {
		t.Errorf("SeatPriceID = %q, want new", d.SeatPriceID)
	}
	if got := len(c.List()); got != 1 {
		t.Errorf("List returned %d descriptors, want 1", got)
	}
}

func TestReloadableSwap(t *testing.T) {
	r := NewReloadable([]plan.Descriptor{
		{Type: plan.TypeBusiness, SeatPriceID: "price_biz"},
	})

	if _, ok := r.Get(plan.TypeBusiness); !ok {
		t.Fatal("expected business descriptor before swap")
	}

	r.Swap([]plan.Descriptor{
		{Type: plan.TypeEnterprise, SeatPriceID: "price_ent"},
	})

	if _, ok := r.Get(plan.TypeBusiness); ok {
		t.Error("business should be gone after swap")
	}
	d, ok := r.Get(plan.TypeEnterprise)
	if !ok || d.SeatPriceID != "price_ent" {
		t.Errorf("enterprise after swap = (%+v, %v)", d, ok)
	}
}
