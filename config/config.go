// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seatsync/seatsync/domain/plan"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Billing  BillingConfig  `yaml:"billing"`
	Seats    SeatsConfig    `yaml:"seats"`
	Plans    []PlanConfig   `yaml:"plans"`
	Email    EmailConfig    `yaml:"email"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// ServerConfig configures the operational HTTP server (health and metrics).
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// DatabaseConfig configures the database.
type DatabaseConfig struct {
	Driver string `yaml:"driver"` // "sqlite"
	DSN    string `yaml:"dsn"`
}

// BillingConfig configures the subscription gateway.
// Use "stripe" for production, "dummy" for development, or "none".
type BillingConfig struct {
	Mode      string `yaml:"mode"` // "stripe", "dummy", "none"
	StripeKey string `yaml:"stripe_key,omitempty"`
}

// SeatsConfig configures seat defaults for newly provisioned providers.
type SeatsConfig struct {
	DefaultSeatMinimum int `yaml:"default_seat_minimum"`
	DefaultOrgSeats    int `yaml:"default_org_seats"`
}

// PlanConfig configures one catalog plan.
type PlanConfig struct {
	Type                string `yaml:"type"`
	Name                string `yaml:"name"`
	SeatPriceID         string `yaml:"seat_price_id"`
	SeatPriceMonthly    int64  `yaml:"seat_price_monthly"` // cents
	ConsolidatedBilling bool   `yaml:"consolidated_billing"`
}

// EmailConfig configures operator alerting.
// Use "smtp" to actually send, "mock" for tests, or "none".
type EmailConfig struct {
	Mode     string `yaml:"mode"` // "smtp", "mock", "none"
	AlertTo  string `yaml:"alert_to,omitempty"`
	Host     string `yaml:"host,omitempty"`
	Port     int    `yaml:"port,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	From     string `yaml:"from,omitempty"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "console"
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // Enable /metrics endpoint
	Path    string `yaml:"path"`    // Custom path (default: /metrics)
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(&cfg)

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadFromEnv creates configuration entirely from environment variables.
// This is useful for Docker deployments where no config file is needed.
//
// Environment variables:
//
//	SEATSYNC_DATABASE_DSN         - Database path (default: seatsync.db)
//	SEATSYNC_SERVER_HOST          - Server host (default: 0.0.0.0)
//	SEATSYNC_SERVER_PORT          - Server port (default: 8080)
//	SEATSYNC_BILLING_MODE         - Gateway mode: stripe, dummy, none (default: dummy)
//	SEATSYNC_BILLING_STRIPE_KEY   - Stripe secret key
//	SEATSYNC_SEAT_MINIMUM         - Default per-plan seat minimum (default: 10)
//	SEATSYNC_DEFAULT_ORG_SEATS    - Default seats for new organizations (default: 1)
//	SEATSYNC_EMAIL_MODE           - Email mode: smtp, mock, none (default: none)
//	SEATSYNC_EMAIL_ALERT_TO       - Operator address for divergence alerts
//	SEATSYNC_LOG_LEVEL            - Log level: debug, info, warn, error (default: info)
//	SEATSYNC_LOG_FORMAT           - Log format: json or console (default: json)
//	SEATSYNC_METRICS_ENABLED      - Enable /metrics endpoint (default: true)
func LoadFromEnv() (*Config, error) {
	var cfg Config

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// LoadWithFallback tries to load from file, falls back to environment variables.
func LoadWithFallback(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return LoadFromEnv()
}

// PlanDescriptors converts the configured plans into catalog descriptors.
func (c *Config) PlanDescriptors() ([]plan.Descriptor, error) {
	descs := make([]plan.Descriptor, 0, len(c.Plans))
	for i, pc := range c.Plans {
		t := plan.Type(pc.Type)
		if !plan.Known(t) {
			return nil, fmt.Errorf("plans[%d].type %q is not a known plan type", i, pc.Type)
		}
		descs = append(descs, plan.Descriptor{
			Type:                t,
			Name:                pc.Name,
			SeatPriceID:         pc.SeatPriceID,
			SeatPriceMonthly:    pc.SeatPriceMonthly,
			ConsolidatedBilling: pc.ConsolidatedBilling,
		})
	}
	return descs, nil
}

// applyEnvOverrides applies SEATSYNC_* environment variables to the config.
// Environment variables always override file-based configuration.
func applyEnvOverrides(cfg *Config) {
	// Server configuration
	if v := os.Getenv("SEATSYNC_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("SEATSYNC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("SEATSYNC_SERVER_READ_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if v := os.Getenv("SEATSYNC_SERVER_WRITE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}

	// Database configuration
	if v := os.Getenv("SEATSYNC_DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("SEATSYNC_DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}

	// Billing configuration
	if v := os.Getenv("SEATSYNC_BILLING_MODE"); v != "" {
		cfg.Billing.Mode = v
	}
	if v := os.Getenv("SEATSYNC_BILLING_STRIPE_KEY"); v != "" {
		cfg.Billing.StripeKey = v
	}

	// Seat defaults
	if v := os.Getenv("SEATSYNC_SEAT_MINIMUM"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Seats.DefaultSeatMinimum = n
		}
	}
	if v := os.Getenv("SEATSYNC_DEFAULT_ORG_SEATS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Seats.DefaultOrgSeats = n
		}
	}

	// Email configuration
	if v := os.Getenv("SEATSYNC_EMAIL_MODE"); v != "" {
		cfg.Email.Mode = v
	}
	if v := os.Getenv("SEATSYNC_EMAIL_ALERT_TO"); v != "" {
		cfg.Email.AlertTo = v
	}
	if v := os.Getenv("SEATSYNC_EMAIL_HOST"); v != "" {
		cfg.Email.Host = v
	}
	if v := os.Getenv("SEATSYNC_EMAIL_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Email.Port = n
		}
	}

	// Logging configuration
	if v := os.Getenv("SEATSYNC_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SEATSYNC_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}

	// Metrics configuration
	if v := os.Getenv("SEATSYNC_METRICS_ENABLED"); v != "" {
		cfg.Metrics.Enabled = parseBool(v)
	}
	if v := os.Getenv("SEATSYNC_METRICS_PATH"); v != "" {
		cfg.Metrics.Path = v
	}
}

// parseBool parses a boolean from common string values.
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

func setDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60 * time.Second
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "seatsync.db"
	}

	if cfg.Billing.Mode == "" {
		cfg.Billing.Mode = "dummy"
	}

	if cfg.Seats.DefaultSeatMinimum == 0 {
		cfg.Seats.DefaultSeatMinimum = 10
	}
	if cfg.Seats.DefaultOrgSeats == 0 {
		cfg.Seats.DefaultOrgSeats = 1
	}

	if cfg.Email.Mode == "" {
		cfg.Email.Mode = "none"
	}
	if cfg.Email.Port == 0 {
		cfg.Email.Port = 587
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}

	// Default catalog if none configured
	if len(cfg.Plans) == 0 {
		cfg.Plans = []PlanConfig{
			{
				Type:                string(plan.TypeBusiness),
				Name:                "Business",
				SeatPriceID:         "price_business_seat",
				ConsolidatedBilling: true,
			},
		}
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Driver != "sqlite" {
		return fmt.Errorf("database.driver must be 'sqlite', got %q", cfg.Database.Driver)
	}

	validBillingModes := map[string]bool{"none": true, "stripe": true, "dummy": true, "test": true}
	if !validBillingModes[cfg.Billing.Mode] {
		return fmt.Errorf("billing.mode must be one of: stripe, dummy, test, none")
	}
	if cfg.Billing.Mode == "stripe" && cfg.Billing.StripeKey == "" {
		return fmt.Errorf("billing.stripe_key is required when billing.mode is 'stripe'")
	}

	if cfg.Seats.DefaultSeatMinimum < 0 {
		return fmt.Errorf("seats.default_seat_minimum cannot be negative")
	}
	if cfg.Seats.DefaultOrgSeats < 0 {
		return fmt.Errorf("seats.default_org_seats cannot be negative")
	}

	validEmailModes := map[string]bool{"none": true, "smtp": true, "mock": true}
	if !validEmailModes[cfg.Email.Mode] {
		return fmt.Errorf("email.mode must be one of: smtp, mock, none")
	}
	if cfg.Email.Mode == "smtp" && cfg.Email.Host == "" {
		return fmt.Errorf("email.host is required when email.mode is 'smtp'")
	}

	seen := make(map[string]bool)
	for i, pc := range cfg.Plans {
		if pc.Type == "" {
			return fmt.Errorf("plans[%d].type is required", i)
		}
		if !plan.Known(plan.Type(pc.Type)) {
			return fmt.Errorf("plans[%d].type %q is not a known plan type", i, pc.Type)
		}
		if seen[pc.Type] {
			return fmt.Errorf("plans[%d].type %q is configured twice", i, pc.Type)
		}
		seen[pc.Type] = true
		if pc.ConsolidatedBilling && pc.SeatPriceID == "" {
			return fmt.Errorf("plans[%d].seat_price_id is required for consolidated billing", i)
		}
	}

	return nil
}
