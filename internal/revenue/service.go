package revenue

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
)

const (
	periodDaily   = "daily"
	periodWeekly  = "weekly"
	periodMonthly = "monthly"
	periodAnnual  = "annual"
	periodSummary = "summary"
)

// Service aggregates completed sale revenue over calendar windows.
type Service interface {
	Daily(ctx context.Context, date time.Time) (decimal.Decimal, error)
	Weekly(ctx context.Context, startDate time.Time) (decimal.Decimal, error)
	Monthly(ctx context.Context, year, month int) (decimal.Decimal, error)
	Annual(ctx context.Context, year int) (decimal.Decimal, error)
	Summary(ctx context.Context, start, end time.Time) (*SummaryDTO, error)
}

// SummaryDTO describes completed sales inside a window.
type SummaryDTO struct {
	Start             time.Time       `json:"start"`
	End               time.Time       `json:"end"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	SaleCount         int64           `json:"sale_count"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"`
}

type service struct {
	repo  *Repository
	cache *Cache
	loc   *time.Location
	logg  *logger.Logger
}

// Options configures the revenue service. A nil Cache disables caching.
type Options struct {
	Location *time.Location
	Cache    *Cache
	Logger   *logger.Logger
}

func NewService(repo *Repository, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("revenue repository required")
	}
	return &service{
		repo:  repo,
		cache: opts.Cache,
		loc:   orUTC(opts.Location),
		logg:  opts.Logger,
	}, nil
}

func (s *service) Daily(ctx context.Context, date time.Time) (decimal.Decimal, error) {
	return s.total(ctx, periodDaily, DayWindow(date, s.loc))
}

func (s *service) Weekly(ctx context.Context, startDate time.Time) (decimal.Decimal, error) {
	return s.total(ctx, periodWeekly, WeekWindow(startDate, s.loc))
}

func (s *service) Monthly(ctx context.Context, year, month int) (decimal.Decimal, error) {
	w, err := MonthWindow(year, month, s.loc)
	if err != nil {
		return decimal.Zero, err
	}
	return s.total(ctx, periodMonthly, w)
}

func (s *service) Annual(ctx context.Context, year int) (decimal.Decimal, error) {
	w, err := YearWindow(year, s.loc)
	if err != nil {
		return decimal.Zero, err
	}
	return s.total(ctx, periodAnnual, w)
}

// Summary expands start and end to whole days. The average is rounded to cents.
func (s *service) Summary(ctx context.Context, start, end time.Time) (*SummaryDTO, error) {
	w, err := RangeWindow(start, end, s.loc)
	if err != nil {
		return nil, err
	}
	totals, err := s.totals(ctx, periodSummary, w)
	if err != nil {
		return nil, err
	}
	avg := decimal.Zero
	if totals.Count > 0 {
		avg = totals.Total.Div(decimal.NewFromInt(totals.Count)).Round(2)
	}
	return &SummaryDTO{
		Start:             w.Start,
		End:               w.End,
		TotalRevenue:      totals.Total,
		SaleCount:         totals.Count,
		AverageOrderValue: avg,
	}, nil
}

func (s *service) total(ctx context.Context, period string, w Window) (decimal.Decimal, error) {
	totals, err := s.totals(ctx, period, w)
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Total, nil
}

func (s *service) totals(ctx context.Context, period string, w Window) (Totals, error) {
	return s.cache.Fetch(ctx, period, w, func(ctx context.Context) (Totals, error) {
		totals, err := s.repo.CompletedTotals(ctx, w)
		if err != nil {
			s.logg.Error(ctx, "revenue query failed", err)
			return Totals{}, pkgerrors.FromStore(err, fmt.Sprintf("db: %s revenue", period))
		}
		return totals, nil
	})
}
