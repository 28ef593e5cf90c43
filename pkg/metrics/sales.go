package metrics

import "github.com/prometheus/client_golang/prometheus"

// SalesMetrics tracks recorded sales and data quality warnings.
type SalesMetrics struct {
	recorded *prometheus.CounterVec
	mismatch prometheus.Counter
}

func NewSalesMetrics(reg prometheus.Registerer) *SalesMetrics {
	if reg == nil {
		return &SalesMetrics{}
	}
	recorded := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_recorded_total",
		Help: "Sales recorded by platform and status.",
	}, []string{"platform", "status"})
	mismatch := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_total_mismatch_total",
		Help: "Sales whose total amount differs from quantity times unit price.",
	})
	reg.MustRegister(recorded, mismatch)
	return &SalesMetrics{recorded: recorded, mismatch: mismatch}
}

func (m *SalesMetrics) IncRecorded(platform, status string) {
	if m == nil || m.recorded == nil {
		return
	}
	m.recorded.WithLabelValues(normalizeLabel(platform), normalizeLabel(status)).Inc()
}

func (m *SalesMetrics) IncTotalMismatch() {
	if m == nil || m.mismatch == nil {
		return
	}
	m.mismatch.Inc()
}
