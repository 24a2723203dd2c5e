package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/seatsync/seatsync/config"
	"github.com/seatsync/seatsync/domain/plan"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	cfg.Database.DSN = ":memory:"
	cfg.Billing.Mode = "dummy"
	cfg.Email.Mode = "none"
	return cfg
}

func TestNew(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	if a.Reconcile == nil || a.Provisioning == nil {
		t.Error("services not wired")
	}
	if a.Providers == nil || a.Plans == nil || a.Orgs == nil {
		t.Error("stores not wired")
	}
	if _, ok := a.Catalog.Get(plan.TypeBusiness); !ok {
		t.Error("default catalog missing business plan")
	}
}

func TestHealthEndpoint(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	a.HTTPServer.Handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("healthz = %d, want 200", rec.Code)
	}
}

func TestCatalogReload(t *testing.T) {
	a, err := New(testConfig(t))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close()

	cfg := testConfig(t)
	cfg.Plans = []config.PlanConfig{
		{Type: string(plan.TypeEnterprise), Name: "Enterprise", SeatPriceID: "price_ent", ConsolidatedBilling: true},
	}
	a.applyReload(cfg)

	if _, ok := a.Catalog.Get(plan.TypeBusiness); ok {
		t.Error("business should be gone after reload")
	}
	if _, ok := a.Catalog.Get(plan.TypeEnterprise); !ok {
		t.Error("enterprise missing after reload")
	}
}
