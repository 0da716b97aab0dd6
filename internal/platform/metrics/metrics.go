// Package metrics provides Prometheus instruments for the quote store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Operation names used as the "operation" label.
const (
	OpCreate = "create"
	OpRead   = "read"
	OpDelete = "delete"
)

// Outcome names used as the "outcome" label.
const (
	OutcomeSuccess     = "success"
	OutcomeUnavailable = "unavailable"
	OutcomeError       = "error"
)

// StoreMetrics counts quote store operations per backend.
type StoreMetrics struct {
	operations *prometheus.CounterVec
	sequence   *prometheus.GaugeVec
}

// NewStoreMetrics registers the store instruments on reg.
// A nil registerer uses prometheus.DefaultRegisterer so /-/metrics exposes them.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	factory := promauto.With(reg)

	return &StoreMetrics{
		operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quote_store_operations_total",
				Help: "Total number of quote store operations by backend, operation and outcome",
			},
			[]string{"backend", "operation", "outcome"},
		),
		sequence: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "quote_store_sequence_number",
				Help: "Sequence number assigned to the most recently created quote",
			},
			[]string{"backend"},
		),
	}
}

// Observe records one operation.
func (m *StoreMetrics) Observe(backend, operation, outcome string) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(backend, operation, outcome).Inc()
}

// SetSequence records the sequence number of the latest created quote.
func (m *StoreMetrics) SetSequence(backend string, sequence int) {
	if m == nil {
		return
	}

	m.sequence.WithLabelValues(backend).Set(float64(sequence))
}
