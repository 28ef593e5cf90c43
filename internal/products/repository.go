package product

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/retailops-backend/internal/repo"
	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
)

// Repository encapsulates product persistence logic.
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

// Create inserts the product row only; associations are written by their own repositories.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *Repository) withRelations(ctx context.Context) *gorm.DB {
	return r.DB(ctx).
		Preload("Sales", func(db *gorm.DB) *gorm.DB {
			return db.Order("sale_date DESC").Order("id DESC")
		}).
		Preload("Inventory")
}

// FindByID loads the product with its sales and inventory.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.withRelations(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindWithInventory loads the product with its inventory row only.
func (r *Repository) FindWithInventory(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).Preload("Inventory").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) list(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]models.Product, error) {
	var rows []models.Product
	query := r.withRelations(ctx).Order("created_at DESC").Order("id DESC")
	if scope != nil {
		query = scope(query)
	}
	err := query.Find(&rows).Error
	return rows, err
}

func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, nil)
}

func (r *Repository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", category)
	})
}

func (r *Repository) ListByStatus(ctx context.Context, status enums.ProductStatus) ([]models.Product, error) {
	return r.list(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	})
}

// Exists reports whether a product row exists.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.Base.Exists(ctx, &models.Product{}, "id", id)
}

// SKUExists reports whether another product already uses sku.
func (r *Repository) SKUExists(ctx context.Context, sku string) (bool, error) {
	return r.Base.Exists(ctx, &models.Product{}, "sku", sku)
}

// Update applies column updates to the product row.
func (r *Repository) Update(ctx context.Context, id uint, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.DB(ctx).Model(&models.Product{ID: id}).Updates(updates).Error
}

// Delete hard-deletes the product row.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.DB(ctx).Delete(&models.Product{}, id).Error
}
