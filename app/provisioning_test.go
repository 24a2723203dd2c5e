package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/seatsync/seatsync/adapters/clock"
	"github.com/seatsync/seatsync/adapters/idgen"
	"github.com/seatsync/seatsync/adapters/memory"
	"github.com/seatsync/seatsync/adapters/payment"
	"github.com/seatsync/seatsync/domain/plan"
	"github.com/seatsync/seatsync/domain/provider"
)

type provisioningFixture struct {
	svc       *ProvisioningService
	providers *memory.ProviderStore
	plans     *memory.ProviderPlanStore
	orgs      *memory.OrganizationStore
	gateway   *payment.DummyGateway
}

func newProvisioningFixture(t *testing.T, p provider.Provider) *provisioningFixture {
	t.Helper()

	f := &provisioningFixture{
		providers: memory.NewProviderStore(),
		plans:     memory.NewProviderPlanStore(),
		orgs:      memory.NewOrganizationStore(),
		gateway:   payment.NewDummyGateway(),
	}
	if err := f.providers.Create(context.Background(), p); err != nil {
		t.Fatalf("seed provider: %v", err)
	}

	f.svc = NewProvisioningService(
		f.providers, f.plans, f.orgs, f.gateway, testCatalog(),
		idgen.NewSequential("id"),
		clock.NewFake(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)),
		zerolog.Nop(),
		10, 1,
	)
	return f
}

func TestStartConsolidatedBilling(t *testing.T) {
	ctx := context.Background()
	p := *testProvider()
	p.GatewayCustomerID = ""
	p.GatewaySubscriptionID = ""
	f := newProvisioningFixture(t, p)

	if err := f.svc.StartConsolidatedBilling(ctx, p.ID, []plan.Type{plan.TypeBusiness}); err != nil {
		t.Fatalf("StartConsolidatedBilling: %v", err)
	}

	got, err := f.providers.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.GatewayCustomerID == "" || got.GatewaySubscriptionID == "" {
		t.Errorf("provider missing gateway linkage: %+v", got)
	}

	rows, err := f.plans.GetByProvider(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByProvider: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("plan rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.PlanType != plan.TypeBusiness || row.SeatPriceID != "price_biz" {
		t.Errorf("plan row = %+v", row)
	}
	if row.SeatMinimum != 10 {
		t.Errorf("SeatMinimum = %d, want 10", row.SeatMinimum)
	}
	if row.AllocatedSeats != 0 || row.PurchasedSeats != 0 || row.PoolSeats != 0 {
		t.Errorf("fresh plan must start with zero seat counts: %+v", row)
	}
}

func TestStartConsolidatedBillingGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("reseller", func(t *testing.T) {
		p := *testProvider()
		p.Type = provider.TypeReseller
		f := newProvisioningFixture(t, p)

		err := f.svc.StartConsolidatedBilling(ctx, p.ID, []plan.Type{plan.TypeBusiness})
		if !errors.Is(err, ErrResellerUnsupported) {
			t.Errorf("got %v, want ErrResellerUnsupported", err)
		}
	})

	t.Run("already subscribed", func(t *testing.T) {
		p := *testProvider() // fixture carries sub_1
		f := newProvisioningFixture(t, p)

		err := f.svc.StartConsolidatedBilling(ctx, p.ID, []plan.Type{plan.TypeBusiness})
		if !errors.Is(err, ErrAlreadySubscribed) {
			t.Errorf("got %v, want ErrAlreadySubscribed", err)
		}
	})

	t.Run("inactive", func(t *testing.T) {
		p := *testProvider()
		p.GatewaySubscriptionID = ""
		p.Status = provider.StatusSuspended
		f := newProvisioningFixture(t, p)

		err := f.svc.StartConsolidatedBilling(ctx, p.ID, []plan.Type{plan.TypeBusiness})
		if !errors.Is(err, ErrProviderInactive) {
			t.Errorf("got %v, want ErrProviderInactive", err)
		}
	})

	t.Run("non-consolidated plan type", func(t *testing.T) {
		p := *testProvider()
		p.GatewaySubscriptionID = ""
		f := newProvisioningFixture(t, p)

		if err := f.svc.StartConsolidatedBilling(ctx, p.ID, []plan.Type{plan.TypeStarter}); err == nil {
			t.Error("expected error for a plan type without consolidated billing")
		}
	})

	t.Run("no plan types", func(t *testing.T) {
		p := *testProvider()
		p.GatewaySubscriptionID = ""
		f := newProvisioningFixture(t, p)

		if err := f.svc.StartConsolidatedBilling(ctx, p.ID, nil); err == nil {
			t.Error("expected error for empty plan type list")
		}
	})
}

func TestStopConsolidatedBilling(t *testing.T) {
	ctx := context.Background()
	p := *testProvider()
	f := newProvisioningFixture(t, p)

	if err := f.svc.StopConsolidatedBilling(ctx, p.ID); err != nil {
		t.Fatalf("StopConsolidatedBilling: %v", err)
	}

	if len(f.gateway.Cancelled) != 1 || f.gateway.Cancelled[0] != "sub_1" {
		t.Errorf("cancelled = %v, want [sub_1]", f.gateway.Cancelled)
	}
	got, err := f.providers.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != provider.StatusCancelled {
		t.Errorf("status = %s, want cancelled", got.Status)
	}
}

func TestStopConsolidatedBillingNotSubscribed(t *testing.T) {
	p := *testProvider()
	p.GatewaySubscriptionID = ""
	f := newProvisioningFixture(t, p)

	err := f.svc.StopConsolidatedBilling(context.Background(), p.ID)
	if !errors.Is(err, ErrNotSubscribed) {
		t.Errorf("got %v, want ErrNotSubscribed", err)
	}
}

func TestCreateOrganization(t *testing.T) {
	ctx := context.Background()
	p := *testProvider()
	f := newProvisioningFixture(t, p)

	o, err := f.svc.CreateOrganization(ctx, p.ID, "Client A", plan.TypeBusiness)
	if err != nil {
		t.Fatalf("CreateOrganization: %v", err)
	}
	if o.ID == "" || o.ProviderID != p.ID {
		t.Errorf("organization = %+v", o)
	}
	if o.SeatCount() != 1 {
		t.Errorf("default seats = %d, want 1", o.SeatCount())
	}

	if _, err := f.svc.CreateOrganization(ctx, p.ID, "Client B", plan.TypeStarter); err == nil {
		t.Error("expected error for a plan type without consolidated billing")
	}
}
