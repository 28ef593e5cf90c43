package product

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/retailops-backend/internal/inventory"
	"github.com/angelmondragon/retailops-backend/internal/sales"
	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
)

// ProductDTO represents the product payload returned to clients.
type ProductDTO struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	Description *string                 `json:"description"`
	Price       decimal.Decimal         `json:"price"`
	Category    string                  `json:"category"`
	Brand       *string                 `json:"brand"`
	SKU         string                  `json:"sku"`
	Status      enums.ProductStatus     `json:"status"`
	Sales       []sales.SaleDTO         `json:"sales"`
	Inventory   *inventory.InventoryDTO `json:"inventory"`
	CreatedAt   time.Time               `json:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at"`
}

// NewProductDTO builds a DTO from the persisted model. Missing relations map to
// an empty sales list and a nil inventory.
func NewProductDTO(product *models.Product) *ProductDTO {
	if product == nil {
		return nil
	}
	return &ProductDTO{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		Brand:       product.Brand,
		SKU:         product.SKU,
		Status:      product.Status,
		Sales:       sales.FromModels(product.Sales),
		Inventory:   inventory.FromModel(product.Inventory),
		CreatedAt:   product.CreatedAt.UTC(),
		UpdatedAt:   product.UpdatedAt.UTC(),
	}
}

func newProductDTOs(rows []models.Product) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewProductDTO(&rows[i]))
	}
	return out
}
