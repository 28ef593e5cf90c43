package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/retailops-backend/internal/inventory"
	"github.com/angelmondragon/retailops-backend/internal/sales"
	"github.com/angelmondragon/retailops-backend/pkg/db"
	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
	"github.com/angelmondragon/retailops-backend/pkg/types"
	"github.com/angelmondragon/retailops-backend/pkg/validation"
)

// Service exposes product catalog management operations.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Get(ctx context.Context, id uint) (*ProductDTO, error)
	List(ctx context.Context) ([]ProductDTO, error)
	ListByCategory(ctx context.Context, category string) ([]ProductDTO, error)
	ListByStatus(ctx context.Context, status enums.ProductStatus) ([]ProductDTO, error)
	Update(ctx context.Context, id uint, input UpdateProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

// CreateProductInput holds the payload to create a product. Status defaults to active.
type CreateProductInput struct {
	Name        string              `validate:"required,max=255"`
	Description *string             `validate:"-"`
	Price       decimal.Decimal     `validate:"money"`
	Category    string              `validate:"required,max=100"`
	Brand       *string             `validate:"omitempty,max=100"`
	SKU         string              `validate:"required,max=50"`
	Status      enums.ProductStatus `validate:"omitempty,oneof=active inactive discontinued"`
}

// UpdateProductInput holds optional mutation values for a product. Description
// and Brand may be cleared with an explicit null.
type UpdateProductInput struct {
	Name        *string                `validate:"omitempty,min=1,max=255"`
	Description types.Nullable[string] `validate:"-"`
	Price       *decimal.Decimal       `validate:"omitempty,money"`
	Category    *string                `validate:"omitempty,min=1,max=100"`
	Brand       types.Nullable[string] `validate:"-"`
	Status      *enums.ProductStatus   `validate:"omitempty,oneof=active inactive discontinued"`
}

// Options carries the optional collaborators of the product service.
type Options struct {
	Logger *logger.Logger
}

type service struct {
	repo          *Repository
	inventoryRepo inventory.Repository
	salesRepo     *sales.Repository
	dbClient      db.TxRunner
	logg          *logger.Logger
}

// NewService constructs a product service instance.
func NewService(repo *Repository, inventoryRepo inventory.Repository, salesRepo *sales.Repository, dbClient db.TxRunner, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if salesRepo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:          repo,
		inventoryRepo: inventoryRepo,
		salesRepo:     salesRepo,
		dbClient:      dbClient,
		logg:          opts.Logger,
	}, nil
}

// Create inserts the product and its bootstrap inventory row in one transaction.
func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)
	input.SKU = strings.TrimSpace(input.SKU)
	if input.Status == "" {
		input.Status = enums.ProductStatusActive
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	var created *models.Product
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		taken, err := txRepo.SKUExists(ctx, input.SKU)
		if err != nil {
			return pkgerrors.FromStore(err, "db: check sku")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeValidation, "sku already exists").
				WithDetails(map[string]string{"sku": "must be unique"})
		}

		product := &models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Category:    input.Category,
			Brand:       input.Brand,
			SKU:         input.SKU,
			Status:      input.Status,
		}
		if err := txRepo.Create(ctx, product); err != nil {
			if db.IsUniqueViolation(err, "sku") {
				return pkgerrors.Wrap(pkgerrors.CodeIntegrity, err, "sku already exists")
			}
			return pkgerrors.FromStore(err, "db: insert product")
		}

		if err := s.inventoryRepo.WithTx(tx).Create(ctx, models.NewBootstrapInventory(product.ID)); err != nil {
			return pkgerrors.FromStore(err, "db: insert inventory")
		}

		created, err = txRepo.FindWithInventory(ctx, product.ID)
		if err != nil {
			return pkgerrors.FromStore(err, "db: reload product")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"product_id": created.ID,
		"sku":        created.SKU,
	}), "product created")
	return NewProductDTO(created), nil
}

func (s *service) Get(ctx context.Context, id uint) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapFindError(err)
	}
	return NewProductDTO(product), nil
}

func (s *service) List(ctx context.Context) ([]ProductDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: list products")
	}
	return newProductDTOs(rows), nil
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]ProductDTO, error) {
	rows, err := s.repo.ListByCategory(ctx, strings.TrimSpace(category))
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: list products by category")
	}
	return newProductDTOs(rows), nil
}

func (s *service) ListByStatus(ctx context.Context, status enums.ProductStatus) ([]ProductDTO, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status").
			WithDetails(map[string]any{"status": status})
	}
	rows, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: list products by status")
	}
	return newProductDTOs(rows), nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateProductInput) (*ProductDTO, error) {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: load product")
	}
	if !exists {
		return nil, productNotFound(id)
	}

	updates, err := buildUpdates(input)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.FromStore(err, "db: update product")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapFindError(err)
	}
	s.logg.Info(s.logg.WithProductID(ctx, id), "product updated")
	return NewProductDTO(product), nil
}

// Delete discontinues a product that has sales and removes it otherwise.
func (s *service) Delete(ctx context.Context, id uint) (bool, error) {
	soft := false
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		exists, err := txRepo.Exists(ctx, id)
		if err != nil {
			return pkgerrors.FromStore(err, "db: load product")
		}
		if !exists {
			return productNotFound(id)
		}

		count, err := s.salesRepo.WithTx(tx).CountByProduct(ctx, id)
		if err != nil {
			return pkgerrors.FromStore(err, "db: count sales")
		}
		if count > 0 {
			soft = true
			if err := txRepo.Update(ctx, id, map[string]any{"status": enums.ProductStatusDiscontinued}); err != nil {
				return pkgerrors.FromStore(err, "db: discontinue product")
			}
			return nil
		}

		if err := s.inventoryRepo.WithTx(tx).DeleteByProductID(ctx, id); err != nil {
			return pkgerrors.FromStore(err, "db: delete inventory")
		}
		if err := txRepo.Delete(ctx, id); err != nil {
			return pkgerrors.FromStore(err, "db: delete product")
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"product_id":  id,
		"soft_delete": soft,
	}), "product deleted")
	return true, nil
}

func buildUpdates(input UpdateProductInput) (map[string]any, error) {
	if input.Name != nil {
		trimmed := strings.TrimSpace(*input.Name)
		input.Name = &trimmed
	}
	if input.Category != nil {
		trimmed := strings.TrimSpace(*input.Category)
		input.Category = &trimmed
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Brand.Set && input.Brand.Value != nil {
		if err := validation.Var("brand", *input.Brand.Value, "max=100"); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description.Set {
		updates["description"] = input.Description.ColumnValue()
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Brand.Set {
		updates["brand"] = input.Brand.ColumnValue()
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	return updates, nil
}

func mapFindError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
	}
	return pkgerrors.FromStore(err, "db: load product")
}

func productNotFound(id uint) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
		WithDetails(map[string]any{"product_id": id})
}
