package bank

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// ActionsTotal counts finished actions by action and outcome kind
	ActionsTotal *prometheus.CounterVec
	// ActionDuration tracks action latency, wallet approval included
	ActionDuration *prometheus.HistogramVec
	// ViewAccounts is the number of accounts in the last refreshed view
	ViewAccounts prometheus.Gauge
}

// NewMetrics registers the bank action metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ActionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bank_actions_total",
				Help: "Total number of bank actions by outcome",
			},
			[]string{"action", "result"},
		),
		ActionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bank_action_duration_seconds",
				Help:    "Bank action duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		ViewAccounts: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "bank_view_accounts",
				Help: "Number of bank accounts in the current view",
			},
		),
	}
}
