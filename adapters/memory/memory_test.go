package memory

import (
	"context"
	"testing"

	"github.com/seatsync/seatsync/domain/org"
	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
)

func TestProviderStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewProviderStore()

	p := provider.Provider{ID: "prov-1", Name: "Acme MSP", Type: provider.TypeDirectMSP, Status: provider.StatusActive}
	if err := s.Create(ctx, p); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(ctx, p); err == nil {
		t.Error("expected duplicate create to fail")
	}

	p.GatewayCustomerID = "cus_123"
	if err := s.Update(ctx, p); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := s.Get(ctx, "prov-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.GatewayCustomerID != "cus_123" {
		t.Errorf("GatewayCustomerID = %q, want cus_123", got.GatewayCustomerID)
	}

	if _, err := s.Get(ctx, "missing"); err != ErrNotFound {
		t.Errorf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestAssignedSeatTotal(t *testing.T) {
	ctx := context.Background()
	plans := NewProviderPlanStore()
	orgs := NewOrganizationStore()
	q := NewAssignedSeatQuery(plans, orgs)

	if err := plans.Create(ctx, provider.Plan{
		ID: "pp-1", ProviderID: "prov-1", PlanType: plan.TypeBusiness, SeatPriceID: "price_biz", PoolSeats: 2,
	}); err != nil {
		t.Fatalf("Create plan: %v", err)
	}

	for i, seats := range []int{3, 7} {
		o := org.Organization{
			ID:         "org-" + string(rune('a'+i)),
			ProviderID: "prov-1",
			PlanType:   plan.TypeBusiness,
			Seats:      org.Seat(seats),
		}
		if err := orgs.Create(ctx, o); err != nil {
			t.Fatalf("Create org: %v", err)
		}
	}
	// Other plan types and unassigned seats do not count.
	if err := orgs.Create(ctx, org.Organization{ID: "org-x", ProviderID: "prov-1", PlanType: plan.TypeEnterprise, Seats: org.Seat(50)}); err != nil {
		t.Fatalf("Create org: %v", err)
	}
	if err := orgs.Create(ctx, org.Organization{ID: "org-y", ProviderID: "prov-1", PlanType: plan.TypeBusiness}); err != nil {
		t.Fatalf("Create org: %v", err)
	}

	total, err := q.AssignedSeatTotal(ctx, "prov-1", plan.TypeBusiness)
	if err != nil {
		t.Fatalf("AssignedSeatTotal: %v", err)
	}
	if total != 12 { // 2 pool + 3 + 7
		t.Errorf("total = %d, want 12", total)
	}

	if _, err := q.AssignedSeatTotal(ctx, "prov-1", plan.TypeStarter); err == nil {
		t.Error("expected error for unknown provider/plan combination")
	}
}
