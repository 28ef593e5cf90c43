package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/retailops-backend/pkg/enums"
)

// Product is a catalog entry. It is never physically removed while a Sale references it.
type Product struct {
	ID          uint                `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string              `gorm:"column:name;size:255;not null"`
	Description *string             `gorm:"column:description;type:text"`
	Price       decimal.Decimal     `gorm:"column:price;type:numeric(10,2);not null"`
	Category    string              `gorm:"column:category;size:100;not null"`
	Brand       *string             `gorm:"column:brand;size:100"`
	SKU         string              `gorm:"column:sku;size:50;not null;uniqueIndex"`
	Status      enums.ProductStatus `gorm:"column:status;size:20;not null"`
	Sales       []Sale              `gorm:"foreignKey:ProductID"`
	Inventory   *Inventory          `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
