package revenue

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/retailops-backend/internal/repo"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
)

// Totals is the aggregate of completed sales in a window.
type Totals struct {
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

type amountRow struct {
	TotalAmount decimal.Decimal `gorm:"column:total_amount"`
}

// Repository reads completed sale amounts.
type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// windowQuery selects total_amount of completed sales with sale_date inside w.
func windowQuery(w Window) (string, []any, error) {
	return squirrel.Select("total_amount").
		From("sales").
		Where(squirrel.Eq{"status": string(enums.SaleStatusCompleted)}).
		Where(squirrel.GtOrEq{"sale_date": w.Start.UTC()}).
		Where(squirrel.LtOrEq{"sale_date": w.End.UTC()}).
		OrderBy("id").
		ToSql()
}

// CompletedTotals sums amounts in Go so the result is exact on every driver.
func (r *Repository) CompletedTotals(ctx context.Context, w Window) (Totals, error) {
	query, args, err := windowQuery(w)
	if err != nil {
		return Totals{}, fmt.Errorf("build revenue query: %w", err)
	}
	var rows []amountRow
	if err := r.DB(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return Totals{}, err
	}
	totals := Totals{Total: decimal.Zero}
	for _, row := range rows {
		totals.Total = totals.Total.Add(row.TotalAmount)
		totals.Count++
	}
	return totals, nil
}
