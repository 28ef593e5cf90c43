package revenue

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/retailops-backend/pkg/db/dbtest"
	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
)

type saleSeeder struct {
	t       *testing.T
	conn    *gorm.DB
	product *models.Product
	seq     int
}

func newSeeder(t *testing.T, conn *gorm.DB) *saleSeeder {
	t.Helper()
	product := &models.Product{
		Name:     "Widget",
		Price:    decimal.RequireFromString("10.00"),
		Category: "widgets",
		SKU:      "W-1",
		Status:   enums.ProductStatusActive,
	}
	require.NoError(t, conn.Create(product).Error)
	return &saleSeeder{t: t, conn: conn, product: product}
}

func (s *saleSeeder) add(amount string, when time.Time, status enums.SaleStatus) {
	s.t.Helper()
	s.seq++
	sale := &models.Sale{
		ProductID:   s.product.ID,
		Quantity:    1,
		UnitPrice:   decimal.RequireFromString(amount),
		TotalAmount: decimal.RequireFromString(amount),
		OrderNumber: fmt.Sprintf("ORD-%d", s.seq),
		SaleDate:    when.UTC(),
		Platform:    enums.SalePlatformDirect,
		Status:      status,
	}
	require.NoError(s.t, s.conn.Omit("Product").Create(sale).Error)
}

func newTestService(t *testing.T, opts Options) (Service, *saleSeeder) {
	t.Helper()
	client := dbtest.Open(t)
	svc, err := NewService(NewRepository(client.DB()), opts)
	require.NoError(t, err)
	return svc, newSeeder(t, client.DB())
}

func TestDailyEmptyWindowIsZero(t *testing.T) {
	svc, _ := newTestService(t, Options{})
	total, err := svc.Daily(context.Background(), time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.Zero), "got %s", total)
}

func TestDailyIgnoresNonCompletedSales(t *testing.T) {
	svc, seed := newTestService(t, Options{})
	day := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	seed.add("50.00", day, enums.SaleStatusPending)
	seed.add("25.00", day, enums.SaleStatusRefunded)
	seed.add("10.00", day, enums.SaleStatusCancelled)

	total, err := svc.Daily(context.Background(), day)
	require.NoError(t, err)
	assert.True(t, total.IsZero(), "got %s", total)
}

func TestDailyBoundariesInclusiveAndExact(t *testing.T) {
	svc, seed := newTestService(t, Options{})
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	seed.add("0.10", day, enums.SaleStatusCompleted)
	seed.add("0.20", time.Date(2024, 3, 10, 23, 59, 59, 999000000, time.UTC), enums.SaleStatusCompleted)
	seed.add("99.99", day.Add(-time.Millisecond), enums.SaleStatusCompleted)
	seed.add("88.88", day.Add(24*time.Hour), enums.SaleStatusCompleted)

	total, err := svc.Daily(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, "0.3", total.String())
}

func TestWeeklyMonthlyAnnual(t *testing.T) {
	svc, seed := newTestService(t, Options{})
	ctx := context.Background()
	seed.add("100.00", time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC), enums.SaleStatusCompleted)
	seed.add("40.50", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC), enums.SaleStatusCompleted)
	seed.add("9.50", time.Date(2024, 3, 6, 23, 0, 0, 0, time.UTC), enums.SaleStatusCompleted)
	seed.add("1.00", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), enums.SaleStatusCompleted)

	weekly, err := svc.Weekly(ctx, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, "150", weekly.String())

	feb, err := svc.Monthly(ctx, 2024, 2)
	require.NoError(t, err)
	assert.Equal(t, "100", feb.String())

	mar, err := svc.Monthly(ctx, 2024, 3)
	require.NoError(t, err)
	assert.Equal(t, "50", mar.String())

	year, err := svc.Annual(ctx, 2024)
	require.NoError(t, err)
	assert.Equal(t, "150", year.String())

	_, err = svc.Monthly(ctx, 2024, 13)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation), "got %v", err)
	_, err = svc.Annual(ctx, 0)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation), "got %v", err)
}

func TestSummary(t *testing.T) {
	svc, seed := newTestService(t, Options{})
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
	seed.add("10.00", start, enums.SaleStatusCompleted)
	seed.add("10.00", end.Add(20*time.Hour), enums.SaleStatusCompleted)
	seed.add("5.00", start.Add(time.Hour), enums.SaleStatusCompleted)
	seed.add("70.00", start.Add(time.Hour), enums.SaleStatusRefunded)

	summary, err := svc.Summary(ctx, start, end)
	require.NoError(t, err)
	assert.Equal(t, "25", summary.TotalRevenue.String())
	assert.Equal(t, int64(3), summary.SaleCount)
	assert.Equal(t, "8.33", summary.AverageOrderValue.String())

	empty, err := svc.Summary(ctx, end.AddDate(1, 0, 0), end.AddDate(1, 0, 1))
	require.NoError(t, err)
	assert.Zero(t, empty.SaleCount)
	assert.True(t, empty.AverageOrderValue.IsZero())

	_, err = svc.Summary(ctx, end, start)
	assert.True(t, pkgerrors.Is(err, pkgerrors.CodeValidation), "got %v", err)
}

func TestNewServiceRequiresRepository(t *testing.T) {
	_, err := NewService(nil, Options{})
	require.Error(t, err)
}
