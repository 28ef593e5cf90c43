package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestInventoryMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewInventoryMetrics(reg)
	m.IncMutation("adjust", OutcomeSuccess)
	m.IncMutation("adjust", OutcomeSuccess)
	m.IncMutation("restock", OutcomeRejected)
	m.IncConflict("adjust")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	assertCounter(t, mfs, "inventory_mutations_total", map[string]string{"operation": "adjust", "outcome": "success"}, 2)
	assertCounter(t, mfs, "inventory_mutations_total", map[string]string{"operation": "restock", "outcome": "rejected"}, 1)
	assertCounter(t, mfs, "inventory_version_conflicts_total", map[string]string{"operation": "adjust"}, 1)
}

func TestSalesAndRevenueMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	sales := NewSalesMetrics(reg)
	revenue := NewRevenueMetrics(reg)

	sales.IncRecorded("amazon", "completed")
	sales.IncTotalMismatch()
	revenue.IncCache("daily", CacheHit)
	revenue.IncCache("", CacheMiss)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	assertCounter(t, mfs, "sales_recorded_total", map[string]string{"platform": "amazon", "status": "completed"}, 1)
	assertCounter(t, mfs, "sales_total_mismatch_total", nil, 1)
	assertCounter(t, mfs, "revenue_cache_requests_total", map[string]string{"period": "daily", "result": "hit"}, 1)
	assertCounter(t, mfs, "revenue_cache_requests_total", map[string]string{"period": "unknown", "result": "miss"}, 1)
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	m.Observe("GET", "/api/v1/products/{productId}", 200, 120*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	assertCounter(t, mfs, "http_requests_total", map[string]string{"method": "GET", "route": "/api/v1/products/{productId}", "status": "200"}, 1)

	mf := findMetricFamily(mfs, "http_request_duration_seconds")
	if mf == nil || len(mf.GetMetric()) != 1 {
		t.Fatalf("expected one histogram series")
	}
	if sum := mf.GetMetric()[0].GetHistogram().GetSampleSum(); sum <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", sum)
	}
}

func TestNilMetricsAreNoops(t *testing.T) {
	var inv *InventoryMetrics
	inv.IncMutation("adjust", OutcomeError)
	inv.IncConflict("adjust")
	NewInventoryMetrics(nil).IncConflict("adjust")
	NewSalesMetrics(nil).IncTotalMismatch()
	NewRevenueMetrics(nil).IncCache("daily", CacheHit)
	NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Second)
}

func assertCounter(t *testing.T, mfs []*dto.MetricFamily, name string, labels map[string]string, want float64) {
	t.Helper()
	got, err := fetchCounterValue(mfs, name, labels)
	if err != nil {
		t.Fatalf("fetch %s: %v", name, err)
	}
	if got != want {
		t.Fatalf("%s%v expected %f, got %f", name, labels, want, got)
	}
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	matched := 0
	for _, pair := range pairs {
		if v, ok := want[pair.GetName()]; ok && v == pair.GetValue() {
			matched++
		}
	}
	return matched == len(want)
}
