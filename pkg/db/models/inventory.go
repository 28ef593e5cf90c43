package models

import "time"

const (
	DefaultMinimumStock    = 10
	DefaultReorderPoint    = 20
	DefaultReorderQuantity = 50
)

// Inventory tracks stock levels for exactly one product. Version guards
// concurrent mutations: every write bumps it and is conditioned on the value read.
type Inventory struct {
	ID                uint       `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID         uint       `gorm:"column:product_id;not null;uniqueIndex"`
	Product           *Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	CurrentStock      int        `gorm:"column:current_stock;not null;index:idx_inventory_current_stock;check:chk_inventory_current_stock,current_stock >= 0"`
	MinimumStock      int        `gorm:"column:minimum_stock;not null"`
	MaximumStock      *int       `gorm:"column:maximum_stock"`
	ReorderPoint      int        `gorm:"column:reorder_point;not null"`
	ReorderQuantity   int        `gorm:"column:reorder_quantity;not null"`
	WarehouseLocation *string    `gorm:"column:warehouse_location;size:100"`
	LastRestockedAt   *time.Time `gorm:"column:last_restocked_at"`
	LastStockCount    *time.Time `gorm:"column:last_stock_count"`
	Notes             *string    `gorm:"column:notes;type:text"`
	Version           int        `gorm:"column:version;not null"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Inventory) TableName() string {
	return "inventory"
}

// NewBootstrapInventory returns the row created alongside a new product.
func NewBootstrapInventory(productID uint) *Inventory {
	return &Inventory{
		ProductID:       productID,
		CurrentStock:    0,
		MinimumStock:    DefaultMinimumStock,
		ReorderPoint:    DefaultReorderPoint,
		ReorderQuantity: DefaultReorderQuantity,
		Version:         1,
	}
}

// All lists the persisted models in dependency order.
func All() []any {
	return []any{&Product{}, &Sale{}, &Inventory{}}
}
