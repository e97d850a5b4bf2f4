package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// EngineMetrics records activity inside the allocation and scheduling engine.
type EngineMetrics struct {
	cartMutations      *prometheus.CounterVec
	rescales           prometheus.Counter
	validationFailures *prometheus.CounterVec
	submissions        *prometheus.CounterVec
}

// NewEngineMetrics registers the engine metrics on the provided registerer.
func NewEngineMetrics(reg prometheus.Registerer) *EngineMetrics {
	if reg == nil {
		return &EngineMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	rescales := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_rescales_total",
		Help: "Proportional ledger rescales triggered by quantity changes.",
	})
	validationFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "allocation_validation_failures_total",
		Help: "Line items rejected at the scheduling gate, by issue kind.",
	}, []string{"kind"})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_submissions_total",
		Help: "Order submissions by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(cartMutations, rescales, validationFailures, submissions)
	return &EngineMetrics{
		cartMutations:      cartMutations,
		rescales:           rescales,
		validationFailures: validationFailures,
		submissions:        submissions,
	}
}

// IncCartMutation increments the counter for the named cart operation.
func (m *EngineMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncRescale records one proportional rescale.
func (m *EngineMetrics) IncRescale() {
	if m == nil || m.rescales == nil {
		return
	}
	m.rescales.Inc()
}

// IncValidationFailure records a line item blocked at the scheduling gate.
func (m *EngineMetrics) IncValidationFailure(kind string) {
	if m == nil || m.validationFailures == nil {
		return
	}
	m.validationFailures.WithLabelValues(normalizeLabel(kind)).Inc()
}

// IncSubmission records an order submission outcome ("ok" or "error").
func (m *EngineMetrics) IncSubmission(outcome string) {
	if m == nil || m.submissions == nil {
		return
	}
	m.submissions.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
