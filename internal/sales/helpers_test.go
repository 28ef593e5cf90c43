package sales

import (
	"context"
	"errors"
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

var fixedNow = time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)

type stubInvalidator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubInvalidator) Invalidate(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubInvalidator) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type fixture struct {
	client      *db.Client
	svc         Service
	reg         *prometheus.Registry
	invalidator *stubInvalidator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := dbtest.Open(t)
	reg := prometheus.NewRegistry()
	inv := &stubInvalidator{}
	svc, err := NewService(NewRepository(client.DB()), client, Options{
		Invalidator: inv,
		Metrics:     metrics.NewSalesMetrics(reg),
		Now:         func() time.Time { return fixedNow },
	})
	require.NoError(t, err)
	return &fixture{client: client, svc: svc, reg: reg, invalidator: inv}
}

func seedProduct(t *testing.T, conn *gorm.DB, sku string) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     "Product " + sku,
		Price:    decimal.RequireFromString("19.99"),
		Category: "toys",
		SKU:      sku,
		Status:   enums.ProductStatusActive,
	}
	require.NoError(t, conn.Create(product).Error)
	return product
}

func validInput(productID uint, orderNumber string) RecordSaleInput {
	return RecordSaleInput{
		ProductID:   productID,
		Quantity:    2,
		UnitPrice:   decimal.RequireFromString("19.99"),
		TotalAmount: decimal.RequireFromString("39.98"),
		OrderNumber: orderNumber,
	}
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

var errCacheDown = errors.New("cache down")
