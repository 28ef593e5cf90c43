package types

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
)

// ProductSummary is the product data attached to sale and inventory reads.
type ProductSummary struct {
	ID       uint                `json:"id"`
	Name     string              `json:"name"`
	SKU      string              `json:"sku"`
	Category string              `json:"category"`
	Brand    *string             `json:"brand,omitempty"`
	Price    decimal.Decimal     `json:"price"`
	Status   enums.ProductStatus `json:"status"`
}

func SummarizeProduct(p *models.Product) *ProductSummary {
	if p == nil {
		return nil
	}
	return &ProductSummary{
		ID:       p.ID,
		Name:     p.Name,
		SKU:      p.SKU,
		Category: p.Category,
		Brand:    p.Brand,
		Price:    p.Price,
		Status:   p.Status,
	}
}
