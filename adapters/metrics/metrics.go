// Package metrics provides Prometheus metrics collection for SeatSync.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds all Prometheus metrics for SeatSync.
type Collector struct {
	// Reconciliation metrics
	ReconciliationsTotal *prometheus.CounterVec
	AllocatedSeats       *prometheus.GaugeVec
	PurchasedSeats       *prometheus.GaugeVec

	// Gateway metrics
	GatewayCalls    *prometheus.CounterVec
	GatewayFailures *prometheus.CounterVec

	// Divergence: gateway updated but local persistence failed
	SeatDivergence *prometheus.CounterVec
}

// New creates a new metrics collector registered on the default registry.
func New() *Collector {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a collector registered on reg (used by tests to
// avoid duplicate registration on the default registry).
func NewWithRegistry(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		ReconciliationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "seatsync",
				Name:      "reconciliations_total",
				Help:      "Total number of seat reconciliation calls by outcome",
			},
			[]string{"operation", "outcome"},
		),
		AllocatedSeats: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "seatsync",
				Name:      "allocated_seats",
				Help:      "Seats currently allocated across a provider's organizations and pool",
			},
			[]string{"provider_id", "plan_type"},
		),
		PurchasedSeats: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "seatsync",
				Name:      "purchased_seats",
				Help:      "Seats currently billed above the contractual minimum",
			},
			[]string{"provider_id", "plan_type"},
		),
		GatewayCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "seatsync",
				Name:      "gateway_calls_total",
				Help:      "Total number of subscription gateway calls",
			},
			[]string{"gateway", "call"},
		),
		GatewayFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "seatsync",
				Name:      "gateway_failures_total",
				Help:      "Total number of failed subscription gateway calls",
			},
			[]string{"gateway", "call"},
		),
		SeatDivergence: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "seatsync",
				Name:      "seat_divergence_total",
				Help:      "Reconciliations where the gateway was updated but local persistence failed",
			},
			[]string{"provider_id", "plan_type"},
		),
	}
}
