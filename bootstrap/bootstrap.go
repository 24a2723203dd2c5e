// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/seatsync/seatsync/adapters/catalog"
	"github.com/seatsync/seatsync/adapters/clock"
	"github.com/seatsync/seatsync/adapters/email"
	"github.com/seatsync/seatsync/adapters/idgen"
	"github.com/seatsync/seatsync/adapters/metrics"
	"github.com/seatsync/seatsync/adapters/payment"
	"github.com/seatsync/seatsync/adapters/sqlite"
	"github.com/seatsync/seatsync/app"
	"github.com/seatsync/seatsync/config"
	"github.com/seatsync/seatsync/ports"
)

// App represents the running application.
type App struct {
	Logger  zerolog.Logger
	Config  *config.Config
	DB      *sqlite.DB
	Metrics *metrics.Collector

	// Stores
	Providers ports.ProviderStore
	Plans     ports.ProviderPlanStore
	Orgs      ports.OrganizationStore

	// Services
	Reconcile    *app.ReconcileService
	Provisioning *app.ProvisioningService

	// Catalog (swapped on config reload)
	Catalog *catalog.Reloadable

	HTTPServer *http.Server

	holder   *config.Holder
	registry *prometheus.Registry
	gateway  ports.SubscriptionGateway
	email    ports.EmailSender
}

// New creates and initializes the application from a loaded configuration.
func New(cfg *config.Config) (*App, error) {
	logger := setupLogger(cfg.Logging)

	logger.Info().Msg("initializing seatsync")

	a := &App{
		Logger: logger,
		Config: cfg,
	}

	if err := a.init(cfg); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// NewWithHotReload creates the application from a config file and watches it
// for changes. Catalog plans and seat defaults apply without restart.
func NewWithHotReload(path string) (*App, error) {
	bootLogger := setupLogger(config.LoggingConfig{Level: "info", Format: "json"})

	holder, err := config.NewHolder(path, bootLogger)
	if err != nil {
		return nil, err
	}

	a, err := New(holder.Get())
	if err != nil {
		holder.Stop()
		return nil, err
	}
	a.holder = holder

	holder.OnChange(func(cfg *config.Config) {
		a.applyReload(cfg)
	})
	if err := holder.WatchFile(); err != nil {
		a.Logger.Warn().Err(err).Msg("config file watch unavailable, reload via SIGHUP only")
	}
	holder.WatchSignals()

	return a, nil
}

func (a *App) init(cfg *config.Config) error {
	// Database
	db, err := sqlite.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return fmt.Errorf("migrate: %w", err)
	}
	a.DB = db
	a.Logger.Info().Str("dsn", cfg.Database.DSN).Msg("database initialized")

	// Metrics get a per-app registry so repeated initialization (tests,
	// embedding) never double-registers on the default registry.
	a.registry = prometheus.NewRegistry()
	a.Metrics = metrics.NewWithRegistry(a.registry)
	if cfg.Metrics.Enabled {
		a.Logger.Info().Str("path", cfg.Metrics.Path).Msg("prometheus metrics enabled")
	}

	// Plan catalog from config
	descs, err := cfg.PlanDescriptors()
	if err != nil {
		return fmt.Errorf("plan catalog: %w", err)
	}
	a.Catalog = catalog.NewReloadable(descs)

	// Subscription gateway
	gateway, err := payment.NewGateway(cfg.Billing.Mode, cfg.Billing.StripeKey)
	if err != nil {
		return fmt.Errorf("subscription gateway: %w", err)
	}
	a.gateway = gateway
	a.Logger.Info().Str("gateway", gateway.Name()).Msg("subscription gateway initialized")

	// Email sender for divergence alerts
	sender, err := email.NewSender(cfg.Email.Mode, email.SMTPConfig{
		Host:     cfg.Email.Host,
		Port:     cfg.Email.Port,
		Username: cfg.Email.Username,
		Password: cfg.Email.Password,
		From:     cfg.Email.From,
	})
	if err != nil {
		return fmt.Errorf("email sender: %w", err)
	}
	a.email = sender

	// Stores
	a.Providers = sqlite.NewProviderStore(db)
	a.Plans = sqlite.NewProviderPlanStore(db)
	a.Orgs = sqlite.NewOrganizationStore(db)
	assigned := sqlite.NewAssignedSeatQuery(db)

	// Services
	a.Reconcile = app.NewReconcileService(
		a.Plans, a.Orgs, assigned, a.gateway, a.Catalog,
		a.email, cfg.Email.AlertTo,
		clock.Real{}, a.Metrics, a.Logger,
	)
	a.Provisioning = app.NewProvisioningService(
		a.Providers, a.Plans, a.Orgs, a.gateway, a.Catalog,
		idgen.UUID{}, clock.Real{}, a.Logger,
		cfg.Seats.DefaultSeatMinimum, cfg.Seats.DefaultOrgSeats,
	)

	a.initHTTPServer(cfg)
	return nil
}

func (a *App) initHTTPServer(cfg *config.Config) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := a.DB.PingContext(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	a.HTTPServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	a.Logger.Info().Str("addr", addr).Msg("http server configured")
}

// applyReload applies a reloaded configuration. Only the plan catalog and
// seat defaults take effect; server, database and gateway changes need a
// restart.
func (a *App) applyReload(cfg *config.Config) {
	descs, err := cfg.PlanDescriptors()
	if err != nil {
		a.Logger.Error().Err(err).Msg("reloaded plan catalog invalid, keeping old catalog")
		return
	}
	a.Catalog.Swap(descs)
	a.Config = cfg

	a.Logger.Info().Int("plans", len(descs)).Msg("plan catalog reloaded")
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	a.Close()

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

// Close releases resources without serving a shutdown request.
func (a *App) Close() {
	if a.holder != nil {
		a.holder.Stop()
		a.holder = nil
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
		a.DB = nil
	}
}

func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
