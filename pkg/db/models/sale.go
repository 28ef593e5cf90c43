package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/retailops-backend/pkg/enums"
)

// Sale is an immutable record of a customer purchase. TotalAmount is stored as
// provided and is not derived from Quantity and UnitPrice.
type Sale struct {
	ID            uint               `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID     uint               `gorm:"column:product_id;not null;index:idx_sales_product_id"`
	Product       *Product           `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Quantity      int                `gorm:"column:quantity;not null"`
	UnitPrice     decimal.Decimal    `gorm:"column:unit_price;type:numeric(10,2);not null"`
	TotalAmount   decimal.Decimal    `gorm:"column:total_amount;type:numeric(10,2);not null"`
	CustomerName  *string            `gorm:"column:customer_name;size:255"`
	CustomerEmail *string            `gorm:"column:customer_email;size:255"`
	OrderNumber   string             `gorm:"column:order_number;size:100;not null;uniqueIndex"`
	SaleDate      time.Time          `gorm:"column:sale_date;not null;index:idx_sales_sale_date"`
	Platform      enums.SalePlatform `gorm:"column:platform;size:20;not null"`
	Status        enums.SaleStatus   `gorm:"column:status;size:20;not null"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

func (Sale) TableName() string {
	return "sales"
}
