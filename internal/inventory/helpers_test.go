package inventory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/retailops-backend/pkg/db"
	"github.com/angelmondragon/retailops-backend/pkg/db/dbtest"
	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
	"github.com/angelmondragon/retailops-backend/pkg/metrics"
)

type fixture struct {
	client  *db.Client
	svc     Service
	reg     *prometheus.Registry
	clock   *fakeClock
	repo    Repository
	metrics *metrics.InventoryMetrics
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Millisecond)
	return c.now
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := dbtest.Open(t)
	reg := prometheus.NewRegistry()
	clock := &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
	m := metrics.NewInventoryMetrics(reg)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client, Options{Metrics: m, Now: clock.Now})
	require.NoError(t, err)
	return &fixture{client: client, svc: svc, reg: reg, clock: clock, repo: repo, metrics: m}
}

func seedProduct(t *testing.T, conn *gorm.DB, sku string, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     "Product " + sku,
		Price:    decimal.RequireFromString("9.99"),
		Category: "hardware",
		SKU:      sku,
		Status:   enums.ProductStatusActive,
	}
	require.NoError(t, conn.Create(product).Error)
	row := models.NewBootstrapInventory(product.ID)
	row.CurrentStock = stock
	require.NoError(t, conn.Create(row).Error)
	return product
}

func loadRow(t *testing.T, conn *gorm.DB, productID uint) *models.Inventory {
	t.Helper()
	var row models.Inventory
	require.NoError(t, conn.WithContext(context.Background()).Where("product_id = ?", productID).First(&row).Error)
	return &row
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, metric := range mf.GetMetric() {
			matched := 0
			for _, pair := range metric.GetLabel() {
				if labels[pair.GetName()] == pair.GetValue() {
					matched++
				}
			}
			if matched == len(labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}
