package sales

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/retailops-backend/internal/repo"
	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
)

// Repository persists and queries sales. Reads attach the product.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

func (r *Repository) Create(ctx context.Context, sale *models.Sale) error {
	return r.DB(ctx).Omit("Product").Create(sale).Error
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Sale, error) {
	var sale models.Sale
	if err := r.DB(ctx).Preload("Product").First(&sale, id).Error; err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *Repository) newestFirst(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("Product").
		Order("sale_date DESC").
		Order("id DESC")
}

func (r *Repository) List(ctx context.Context) ([]models.Sale, error) {
	var rows []models.Sale
	err := r.newestFirst(ctx).Find(&rows).Error
	return rows, err
}

func (r *Repository) ListByProduct(ctx context.Context, productID uint) ([]models.Sale, error) {
	var rows []models.Sale
	err := r.newestFirst(ctx).Where("product_id = ?", productID).Find(&rows).Error
	return rows, err
}

// ListByDateRange returns sales with start <= sale_date <= end.
func (r *Repository) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Sale, error) {
	var rows []models.Sale
	err := r.newestFirst(ctx).
		Where("sale_date >= ? AND sale_date <= ?", start.UTC(), end.UTC()).
		Find(&rows).Error
	return rows, err
}

func (r *Repository) ListByPlatform(ctx context.Context, platform enums.SalePlatform) ([]models.Sale, error) {
	var rows []models.Sale
	err := r.newestFirst(ctx).Where("platform = ?", platform).Find(&rows).Error
	return rows, err
}

func (r *Repository) OrderNumberExists(ctx context.Context, orderNumber string) (bool, error) {
	return r.Exists(ctx, &models.Sale{}, "order_number", orderNumber)
}

func (r *Repository) ProductExists(ctx context.Context, productID uint) (bool, error) {
	return r.Exists(ctx, &models.Product{}, "id", productID)
}

// CountByProduct reports how many sales reference the product.
func (r *Repository) CountByProduct(ctx context.Context, productID uint) (int64, error) {
	return r.Count(ctx, &models.Sale{}, "product_id", productID)
}
