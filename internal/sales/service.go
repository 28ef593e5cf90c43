package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/retailops-backend/pkg/db"
	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	"github.com/angelmondragon/retailops-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
	"github.com/angelmondragon/retailops-backend/pkg/metrics"
	"github.com/angelmondragon/retailops-backend/pkg/validation"
)

// Service exposes sale queries and recording.
type Service interface {
	Get(ctx context.Context, id uint) (*SaleDTO, error)
	List(ctx context.Context) ([]SaleDTO, error)
	ListByProduct(ctx context.Context, productID uint) ([]SaleDTO, error)
	ListByDateRange(ctx context.Context, start, end time.Time) ([]SaleDTO, error)
	ListByPlatform(ctx context.Context, platform enums.SalePlatform) ([]SaleDTO, error)
	Record(ctx context.Context, input RecordSaleInput) (*SaleDTO, error)
}

// RecordSaleInput holds the payload for a new sale. Platform, Status and SaleDate are optional.
type RecordSaleInput struct {
	ProductID     uint               `validate:"required"`
	Quantity      int                `validate:"gte=1"`
	UnitPrice     decimal.Decimal    `validate:"money"`
	TotalAmount   decimal.Decimal    `validate:"money"`
	CustomerName  *string            `validate:"omitempty,max=255"`
	CustomerEmail *string            `validate:"omitempty,email,max=255"`
	OrderNumber   string             `validate:"required,max=100"`
	SaleDate      *time.Time         `validate:"-"`
	Platform      enums.SalePlatform `validate:"omitempty,oneof=amazon walmart direct other"`
	Status        enums.SaleStatus   `validate:"omitempty,oneof=pending completed cancelled refunded"`
}

// RevenueInvalidator is notified after a sale commits so cached revenue figures expire.
type RevenueInvalidator interface {
	Invalidate(ctx context.Context) error
}

type service struct {
	repo        *Repository
	dbClient    db.TxRunner
	invalidator RevenueInvalidator
	metrics     *metrics.SalesMetrics
	logg        *logger.Logger
	now         func() time.Time
}

// Options carries the optional collaborators of the sales service.
type Options struct {
	Invalidator RevenueInvalidator
	Metrics     *metrics.SalesMetrics
	Logger      *logger.Logger
	Now         func() time.Time
}

// NewService constructs a sales service instance.
func NewService(repo *Repository, dbClient db.TxRunner, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		repo:        repo,
		dbClient:    dbClient,
		invalidator: opts.Invalidator,
		metrics:     opts.Metrics,
		logg:        opts.Logger,
		now:         opts.Now,
	}, nil
}

func (s *service) Get(ctx context.Context, id uint) (*SaleDTO, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "sale not found")
		}
		return nil, pkgerrors.FromStore(err, "db: load sale")
	}
	return FromModel(sale), nil
}

func (s *service) List(ctx context.Context) ([]SaleDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: list sales")
	}
	return FromModels(rows), nil
}

func (s *service) ListByProduct(ctx context.Context, productID uint) ([]SaleDTO, error) {
	rows, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: list sales by product")
	}
	return FromModels(rows), nil
}

func (s *service) ListByDateRange(ctx context.Context, start, end time.Time) ([]SaleDTO, error) {
	if start.After(end) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "start date must not be after end date").
			WithDetails(map[string]any{"start_date": start, "end_date": end})
	}
	rows, err := s.repo.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: list sales by date range")
	}
	return FromModels(rows), nil
}

func (s *service) ListByPlatform(ctx context.Context, platform enums.SalePlatform) ([]SaleDTO, error) {
	if !platform.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid platform").
			WithDetails(map[string]any{"platform": platform})
	}
	rows, err := s.repo.ListByPlatform(ctx, platform)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: list sales by platform")
	}
	return FromModels(rows), nil
}

// Record stores a sale. The total amount is kept as given even when it disagrees
// with quantity times unit price; the mismatch is logged and counted.
func (s *service) Record(ctx context.Context, input RecordSaleInput) (*SaleDTO, error) {
	input.OrderNumber = strings.TrimSpace(input.OrderNumber)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	sale := buildSale(input, s.now())
	ctx = s.logg.WithFields(ctx, map[string]any{
		"product_id":   sale.ProductID,
		"order_number": sale.OrderNumber,
	})

	var created *models.Sale
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		exists, err := txRepo.ProductExists(ctx, sale.ProductID)
		if err != nil {
			return pkgerrors.FromStore(err, "db: check product")
		}
		if !exists {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": sale.ProductID})
		}

		taken, err := txRepo.OrderNumberExists(ctx, sale.OrderNumber)
		if err != nil {
			return pkgerrors.FromStore(err, "db: check order number")
		}
		if taken {
			return pkgerrors.New(pkgerrors.CodeValidation, "order number already exists").
				WithDetails(map[string]string{"order_number": "must be unique"})
		}

		if err := txRepo.Create(ctx, sale); err != nil {
			if db.IsUniqueViolation(err, "order_number") {
				return pkgerrors.Wrap(pkgerrors.CodeIntegrity, err, "order number already exists")
			}
			return pkgerrors.FromStore(err, "db: insert sale")
		}

		created, err = txRepo.FindByID(ctx, sale.ID)
		if err != nil {
			return pkgerrors.FromStore(err, "db: reload sale")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.IncRecorded(string(created.Platform), string(created.Status))
	if expected := ExpectedTotal(created.Quantity, created.UnitPrice); !expected.Equal(created.TotalAmount) {
		s.metrics.IncTotalMismatch()
		s.logg.Warn(s.logg.WithFields(ctx, map[string]any{
			"sale_id":        created.ID,
			"total_amount":   created.TotalAmount.String(),
			"expected_total": expected.String(),
		}), "sale total differs from quantity x unit price")
	}

	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx); err != nil {
			s.logg.Error(ctx, "failed to invalidate revenue cache", err)
		}
	}

	s.logg.Info(s.logg.WithSaleID(ctx, created.ID), "sale recorded")
	return FromModel(created), nil
}

func buildSale(input RecordSaleInput, now time.Time) *models.Sale {
	sale := &models.Sale{
		ProductID:     input.ProductID,
		Quantity:      input.Quantity,
		UnitPrice:     input.UnitPrice,
		TotalAmount:   input.TotalAmount,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		OrderNumber:   input.OrderNumber,
		SaleDate:      now.UTC(),
		Platform:      input.Platform,
		Status:        input.Status,
	}
	if input.SaleDate != nil {
		sale.SaleDate = input.SaleDate.UTC()
	}
	if sale.Platform == "" {
		sale.Platform = enums.SalePlatformDirect
	}
	if sale.Status == "" {
		sale.Status = enums.SaleStatusCompleted
	}
	return sale
}
