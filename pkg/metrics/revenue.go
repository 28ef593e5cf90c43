package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// RevenueMetrics tracks revenue cache effectiveness.
type RevenueMetrics struct {
	cache *prometheus.CounterVec
}

func NewRevenueMetrics(reg prometheus.Registerer) *RevenueMetrics {
	if reg == nil {
		return &RevenueMetrics{}
	}
	cache := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "revenue_cache_requests_total",
		Help: "Revenue cache lookups by period and result.",
	}, []string{"period", "result"})
	reg.MustRegister(cache)
	return &RevenueMetrics{cache: cache}
}

func (m *RevenueMetrics) IncCache(period, result string) {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues(normalizeLabel(period), normalizeLabel(result)).Inc()
}
