// Package metrics collects Prometheus counters for a settlement run.
//
// Semantic no-ops (dropped withdrawals, missing amounts, dangling references)
// are never errors in the settlement model; counters are how a run surfaces
// them without changing outcomes. All collectors live on a private registry
// so a run never pollutes the global one.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/payrun/internal/models"
)

// Metrics holds the counters for one processing run. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	processed         *prometheus.CounterVec
	insufficientFunds prometheus.Counter
	missingAmount     prometheus.Counter
	deferred          prometheus.Counter
	unresolved        prometheus.Counter
}

// New creates a Metrics with all collectors registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		processed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "payrun_transactions_settled_total",
			Help: "Transactions settled against an account, by type.",
		}, []string{"type"}),
		insufficientFunds: factory.NewCounter(prometheus.CounterOpts{
			Name: "payrun_withdrawals_insufficient_funds_total",
			Help: "Withdrawals dropped because available funds were too low.",
		}),
		missingAmount: factory.NewCounter(prometheus.CounterOpts{
			Name: "payrun_missing_amount_total",
			Help: "Records ignored because a required amount was absent.",
		}),
		deferred: factory.NewCounter(prometheus.CounterOpts{
			Name: "payrun_deferred_total",
			Help: "Dispute-family records requeued while waiting for their referenced transaction.",
		}),
		unresolved: factory.NewCounter(prometheus.CounterOpts{
			Name: "payrun_unresolved_dropped_total",
			Help: "Dispute-family records dropped after a full pass made no progress.",
		}),
	}
}

// Handler returns an HTTP handler exposing the run's registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Settled(t models.TxType) {
	if m == nil {
		return
	}
	m.processed.WithLabelValues(string(t)).Inc()
}

func (m *Metrics) InsufficientFunds() {
	if m == nil {
		return
	}
	m.insufficientFunds.Inc()
}

func (m *Metrics) MissingAmount() {
	if m == nil {
		return
	}
	m.missingAmount.Inc()
}

func (m *Metrics) Deferred() {
	if m == nil {
		return
	}
	m.deferred.Inc()
}

func (m *Metrics) Unresolved(n int) {
	if m == nil {
		return
	}
	m.unresolved.Add(float64(n))
}
