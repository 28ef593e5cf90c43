package product

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/retailops-backend/internal/inventory"
	"github.com/angelmondragon/retailops-backend/internal/sales"
	"github.com/angelmondragon/retailops-backend/pkg/db"
	"github.com/angelmondragon/retailops-backend/pkg/db/dbtest"
	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
)

type fixture struct {
	client *db.Client
	svc    Service
	repo   *Repository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	client := dbtest.Open(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, inventory.NewRepository(client.DB()), sales.NewRepository(client.DB()), client, Options{})
	require.NoError(t, err)
	return &fixture{client: client, svc: svc, repo: repo}
}

func createInput(sku string) CreateProductInput {
	return CreateProductInput{
		Name:     "Desk Lamp " + sku,
		Price:    decimal.RequireFromString("24.50"),
		Category: "lighting",
		SKU:      sku,
	}
}

func mustCreateSale(t *testing.T, conn *gorm.DB, productID uint, orderNumber string) {
	t.Helper()
	sale := &models.Sale{
		ProductID:   productID,
		Quantity:    1,
		UnitPrice:   decimal.RequireFromString("24.50"),
		TotalAmount: decimal.RequireFromString("24.50"),
		OrderNumber: orderNumber,
		SaleDate:    time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Platform:    enums.SalePlatformDirect,
		Status:      enums.SaleStatusCompleted,
	}
	require.NoError(t, conn.Omit("Product").Create(sale).Error)
}

func countRows(t *testing.T, conn *gorm.DB, model any, productID uint) int64 {
	t.Helper()
	var count int64
	column := "product_id"
	if _, ok := model.(*models.Product); ok {
		column = "id"
	}
	require.NoError(t, conn.Model(model).Where(column+" = ?", productID).Count(&count).Error)
	return count
}
