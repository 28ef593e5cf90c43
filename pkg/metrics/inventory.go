package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// InventoryMetrics counts stock mutations and optimistic version conflicts.
type InventoryMetrics struct {
	mutations *prometheus.CounterVec
	conflicts *prometheus.CounterVec
}

// NewInventoryMetrics registers the inventory metrics on the provided registerer.
func NewInventoryMetrics(reg prometheus.Registerer) *InventoryMetrics {
	if reg == nil {
		return &InventoryMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_mutations_total",
		Help: "Inventory mutations by operation and outcome.",
	}, []string{"operation", "outcome"})
	conflicts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "inventory_version_conflicts_total",
		Help: "Optimistic version conflicts hit while mutating inventory.",
	}, []string{"operation"})
	reg.MustRegister(mutations, conflicts)
	return &InventoryMetrics{
		mutations: mutations,
		conflicts: conflicts,
	}
}

// IncMutation records the final outcome of a mutation.
func (m *InventoryMetrics) IncMutation(operation, outcome string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Inc()
}

// IncConflict records a single lost optimistic race.
func (m *InventoryMetrics) IncConflict(operation string) {
	if m == nil || m.conflicts == nil {
		return
	}
	m.conflicts.WithLabelValues(normalizeLabel(operation)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
