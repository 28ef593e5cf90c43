package inventory

import (
	"time"

	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
	"github.com/angelmondragon/retailops-backend/pkg/types"
)

// InventoryDTO is the inventory view with derived stock fields.
type InventoryDTO struct {
	ID                uint                  `json:"id"`
	ProductID         uint                  `json:"product_id"`
	CurrentStock      int                   `json:"current_stock"`
	MinimumStock      int                   `json:"minimum_stock"`
	MaximumStock      *int                  `json:"maximum_stock"`
	ReorderPoint      int                   `json:"reorder_point"`
	ReorderQuantity   int                   `json:"reorder_quantity"`
	WarehouseLocation *string               `json:"warehouse_location"`
	LastRestockedAt   *time.Time            `json:"last_restocked_at"`
	LastStockCount    *time.Time            `json:"last_stock_count"`
	Notes             *string               `json:"notes"`
	StockStatus       enums.StockStatus     `json:"stock_status"`
	IsLowStock        bool                  `json:"is_low_stock"`
	NeedsReorder      bool                  `json:"needs_reorder"`
	Product           *types.ProductSummary `json:"product,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// FromModel maps the persisted row, recomputing the derived fields.
func FromModel(m *models.Inventory) *InventoryDTO {
	if m == nil {
		return nil
	}
	dto := &InventoryDTO{
		ID:                m.ID,
		ProductID:         m.ProductID,
		CurrentStock:      m.CurrentStock,
		MinimumStock:      m.MinimumStock,
		MaximumStock:      m.MaximumStock,
		ReorderPoint:      m.ReorderPoint,
		ReorderQuantity:   m.ReorderQuantity,
		WarehouseLocation: m.WarehouseLocation,
		LastRestockedAt:   utcPtr(m.LastRestockedAt),
		LastStockCount:    utcPtr(m.LastStockCount),
		Notes:             m.Notes,
		StockStatus:       ClassifyStock(m.CurrentStock, m.MinimumStock, m.MaximumStock),
		IsLowStock:        IsLowStock(m.CurrentStock, m.MinimumStock),
		NeedsReorder:      NeedsReorder(m.CurrentStock, m.ReorderPoint),
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
	}
	if m.Product != nil {
		dto.Product = types.SummarizeProduct(m.Product)
	}
	return dto
}

func fromModels(rows []models.Inventory) []InventoryDTO {
	out := make([]InventoryDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
