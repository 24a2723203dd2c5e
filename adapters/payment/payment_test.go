package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
	"github.com/seatsync/seatsync/ports"
)

func TestFactory(t *testing.T) {
	cases := []struct {
		mode     string
		key      string
		wantName string
		wantErr  bool
	}{
		{"stripe", "sk_test_123", "stripe", false},
		{"stripe", "", "", true},
		{"dummy", "", "dummy", false},
		{"none", "", "none", false},
		{"", "", "none", false},
		{"paypal", "", "", true},
	}

	for _, tc := range cases {
		g, err := NewGateway(tc.mode, tc.key)
		if tc.wantErr {
			if err == nil {
				t.Errorf("mode %q: expected error", tc.mode)
			}
			continue
		}
		if err != nil {
			t.Errorf("mode %q: %v", tc.mode, err)
			continue
		}
		if g.Name() != tc.wantName {
			t.Errorf("mode %q: Name() = %q, want %q", tc.mode, g.Name(), tc.wantName)
		}
	}
}

func TestNoopGatewayRefusesEverything(t *testing.T) {
	ctx := context.Background()
	g := NewNoopGateway()

	if _, err := g.CreateCustomer(ctx, "a@b.c", "A", "prov-1"); !errors.Is(err, ErrBillingDisabled) {
		t.Errorf("CreateCustomer = %v, want ErrBillingDisabled", err)
	}
	if _, err := g.CreateSubscription(ctx, "cus_1", nil); !errors.Is(err, ErrBillingDisabled) {
		t.Errorf("CreateSubscription = %v, want ErrBillingDisabled", err)
	}
	if err := g.AdjustSeats(ctx, provider.Provider{}, plan.Descriptor{}, 0, 1); !errors.Is(err, ErrBillingDisabled) {
		t.Errorf("AdjustSeats = %v, want ErrBillingDisabled", err)
	}
}

func TestDummyGatewayRecordsCalls(t *testing.T) {
	ctx := context.Background()
	g := NewDummyGateway()

	customerID, err := g.CreateCustomer(ctx, "billing@acme.example", "Acme", "prov-1")
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}
	if customerID == "" {
		t.Fatal("expected a customer id")
	}

	subID, err := g.CreateSubscription(ctx, customerID, []ports.SeatItem{{PriceID: "price_biz", Quantity: 10}})
	if err != nil {
		t.Fatalf("CreateSubscription: %v", err)
	}
	if subID == "" {
		t.Fatal("expected a subscription id")
	}

	p := provider.Provider{ID: "prov-1", GatewayCustomerID: customerID, GatewaySubscriptionID: subID}
	desc := plan.Descriptor{Type: plan.TypeBusiness, SeatPriceID: "price_biz"}

	if err := g.AdjustSeats(ctx, p, desc, 10, 12); err != nil {
		t.Fatalf("AdjustSeats: %v", err)
	}
	if len(g.AdjustCalls) != 1 {
		t.Fatalf("got %d adjust calls, want 1", len(g.AdjustCalls))
	}
	call := g.AdjustCalls[0]
	if call.FromQuantity != 10 || call.ToQuantity != 12 || call.PriceID != "price_biz" {
		t.Errorf("call = %+v, want (10, 12, price_biz)", call)
	}

	boom := errors.New("gateway down")
	g.FailAdjust = boom
	if err := g.AdjustSeats(ctx, p, desc, 12, 13); !errors.Is(err, boom) {
		t.Errorf("AdjustSeats = %v, want injected failure", err)
	}
	if len(g.AdjustCalls) != 1 {
		t.Errorf("failed call must not be recorded, got %d", len(g.AdjustCalls))
	}
}
