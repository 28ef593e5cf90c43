package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
	"github.com/angelmondragon/retailops-backend/pkg/types"
)

// SaleDTO is the read model for a recorded sale.
type SaleDTO struct {
	ID            uint                  `json:"id"`
	ProductID     uint                  `json:"product_id"`
	Quantity      int                   `json:"quantity"`
	UnitPrice     decimal.Decimal       `json:"unit_price"`
	TotalAmount   decimal.Decimal       `json:"total_amount"`
	CustomerName  *string               `json:"customer_name"`
	CustomerEmail *string               `json:"customer_email"`
	OrderNumber   string                `json:"order_number"`
	SaleDate      time.Time             `json:"sale_date"`
	Platform      enums.SalePlatform    `json:"platform"`
	Status        enums.SaleStatus      `json:"status"`
	Product       *types.ProductSummary `json:"product,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func FromModel(m *models.Sale) *SaleDTO {
	if m == nil {
		return nil
	}
	return &SaleDTO{
		ID:            m.ID,
		ProductID:     m.ProductID,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		TotalAmount:   m.TotalAmount,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		OrderNumber:   m.OrderNumber,
		SaleDate:      m.SaleDate.UTC(),
		Platform:      m.Platform,
		Status:        m.Status,
		Product:       types.SummarizeProduct(m.Product),
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

// FromModels maps a slice of sales, preserving order.
func FromModels(rows []models.Sale) []SaleDTO {
	out := make([]SaleDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}

// ExpectedTotal is quantity times unit price.
func ExpectedTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
