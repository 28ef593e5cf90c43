package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/retailops-backend/internal/repo"
	"github.com/angelmondragon/retailops-backend/pkg/db/models"
)

// Repository persists inventory rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, row *models.Inventory) error
	FindByProductID(ctx context.Context, productID uint) (*models.Inventory, error)
	List(ctx context.Context) ([]models.Inventory, error)
	ListLowStock(ctx context.Context) ([]models.Inventory, error)
	ListNeedingReorder(ctx context.Context) ([]models.Inventory, error)
	UpdateVersioned(ctx context.Context, productID uint, version int, updates map[string]any) (bool, error)
	DeleteByProductID(ctx context.Context, productID uint) error
}

type repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) Create(ctx context.Context, row *models.Inventory) error {
	return r.DB(ctx).Create(row).Error
}

// FindByProductID loads the row with its product attached.
func (r *repository) FindByProductID(ctx context.Context, productID uint) (*models.Inventory, error) {
	var row models.Inventory
	if err := r.DB(ctx).
		Preload("Product").
		Where("product_id = ?", productID).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) List(ctx context.Context) ([]models.Inventory, error) {
	var rows []models.Inventory
	err := r.DB(ctx).
		Preload("Product").
		Order("updated_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListLowStock(ctx context.Context) ([]models.Inventory, error) {
	var rows []models.Inventory
	err := r.DB(ctx).
		Preload("Product").
		Where("current_stock <= minimum_stock").
		Order("current_stock ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListNeedingReorder(ctx context.Context) ([]models.Inventory, error) {
	var rows []models.Inventory
	err := r.DB(ctx).
		Preload("Product").
		Where("current_stock <= reorder_point").
		Order("current_stock ASC").
		Order("id ASC").
		Find(&rows).Error
	return rows, err
}

// UpdateVersioned applies updates only when the stored version still matches
// and bumps it. It reports false when another writer got there first.
func (r *repository) UpdateVersioned(ctx context.Context, productID uint, version int, updates map[string]any) (bool, error) {
	fields := make(map[string]any, len(updates)+1)
	for k, v := range updates {
		fields[k] = v
	}
	fields["version"] = gorm.Expr("version + ?", 1)

	res := r.DB(ctx).
		Model(&models.Inventory{}).
		Where("product_id = ? AND version = ?", productID, version).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) DeleteByProductID(ctx context.Context, productID uint) error {
	return r.DB(ctx).Where("product_id = ?", productID).Delete(&models.Inventory{}).Error
}
