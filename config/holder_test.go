package config_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/seatsync/seatsync/config"
)

func validConfig() string {
	return `
seats:
  default_seat_minimum: 10

plans:
  - type: "business"
    name: "Business"
    seat_price_id: "price_biz"
    consolidated_billing: true
`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestHolder_Get(t *testing.T) {
	path := writeConfig(t, validConfig())

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	got := h.Get()
	if got == nil {
		t.Fatal("Get returned nil")
	}
	if got.Seats.DefaultSeatMinimum != 10 {
		t.Errorf("DefaultSeatMinimum = %d, want 10", got.Seats.DefaultSeatMinimum)
	}
}

func TestHolder_Reload(t *testing.T) {
	path := writeConfig(t, validConfig())

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	newContent := `
seats:
  default_seat_minimum: 25

plans:
  - type: "business"
    name: "Business"
    seat_price_id: "price_biz"
    consolidated_billing: true
`
	if err := os.WriteFile(path, []byte(newContent), 0o644); err != nil {
		t.Fatalf("write new config: %v", err)
	}

	if err := h.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	if got := h.Get().Seats.DefaultSeatMinimum; got != 25 {
		t.Errorf("reloaded DefaultSeatMinimum = %d, want 25", got)
	}
}

func TestHolder_OnChange(t *testing.T) {
	path := writeConfig(t, validConfig())

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	var mu sync.Mutex
	var called bool
	var receivedCfg *config.Config

	h.OnChange(func(cfg *config.Config) {
		mu.Lock()
		called = true
		receivedCfg = cfg
		mu.Unlock()
	})

	newContent := `
email:
  mode: "none"
  alert_to: "oncall@example.com"
`
	if err := os.WriteFile(path, []byte(newContent), 0o644); err != nil {
		t.Fatalf("write new config: %v", err)
	}

	if err := h.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	mu.Lock()
	if !called {
		t.Error("OnChange callback was not called")
	}
	if receivedCfg == nil {
		t.Error("received nil config in callback")
	} else if receivedCfg.Email.AlertTo != "oncall@example.com" {
		t.Errorf("callback received AlertTo = %s, want oncall@example.com", receivedCfg.Email.AlertTo)
	}
	mu.Unlock()
}

func TestHolder_ReloadInvalidConfigKeepsOld(t *testing.T) {
	path := writeConfig(t, validConfig())

	h, err := config.NewHolder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHolder error: %v", err)
	}
	defer h.Stop()

	if err := os.WriteFile(path, []byte("billing:\n  mode: barter\n"), 0o644); err != nil {
		t.Fatalf("write broken config: %v", err)
	}

	if err := h.Reload(); err == nil {
		t.Fatal("expected reload error for invalid config")
	}

	// Old config must survive a failed reload.
	if got := h.Get().Seats.DefaultSeatMinimum; got != 10 {
		t.Errorf("DefaultSeatMinimum after failed reload = %d, want 10", got)
	}
}
