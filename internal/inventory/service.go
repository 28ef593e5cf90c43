package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/angelmondragon/retailops-backend/pkg/db"
	"github.com/angelmondragon/retailops-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
	"github.com/angelmondragon/retailops-backend/pkg/logger"
	"github.com/angelmondragon/retailops-backend/pkg/metrics"
	"github.com/angelmondragon/retailops-backend/pkg/types"
	"github.com/angelmondragon/retailops-backend/pkg/validation"
)

const (
	DefaultMaxRetries = 5

	opSetFields = "set_fields"
	opAdjust    = "adjust"
	opRestock   = "restock"
)

var errVersionConflict = errors.New("inventory version conflict")

// Service exposes stock level queries and the stock adjustment protocol.
type Service interface {
	Get(ctx context.Context, productID uint) (*InventoryDTO, error)
	List(ctx context.Context) ([]InventoryDTO, error)
	ListLowStock(ctx context.Context) ([]InventoryDTO, error)
	ListNeedingReorder(ctx context.Context) ([]InventoryDTO, error)
	SetFields(ctx context.Context, productID uint, input UpdateInventoryInput) (*InventoryDTO, error)
	AdjustStock(ctx context.Context, productID uint, delta int, reason *string) (*InventoryDTO, error)
	Restock(ctx context.Context, productID uint, quantity int) (*InventoryDTO, error)
}

// UpdateInventoryInput overwrites any subset of the stock settings. Unset fields are left alone.
type UpdateInventoryInput struct {
	CurrentStock      *int                   `validate:"omitempty,gte=0"`
	MinimumStock      *int                   `validate:"omitempty,gte=0"`
	MaximumStock      types.Nullable[int]    `validate:"-"`
	ReorderPoint      *int                   `validate:"omitempty,gte=0"`
	ReorderQuantity   *int                   `validate:"omitempty,gte=1"`
	WarehouseLocation types.Nullable[string] `validate:"-"`
	Notes             types.Nullable[string] `validate:"-"`
}

// Options tunes the service. Zero values fall back to defaults.
type Options struct {
	MaxRetries int
	Metrics    *metrics.InventoryMetrics
	Logger     *logger.Logger
	Now        func() time.Time
}

type service struct {
	repo       Repository
	tx         db.TxRunner
	maxRetries int
	metrics    *metrics.InventoryMetrics
	logg       *logger.Logger
	now        func() time.Time
}

// NewService constructs an inventory service instance.
func NewService(repo Repository, tx db.TxRunner, opts Options) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &service{
		repo:       repo,
		tx:         tx,
		maxRetries: opts.MaxRetries,
		metrics:    opts.Metrics,
		logg:       opts.Logger,
		now:        opts.Now,
	}, nil
}

func (s *service) Get(ctx context.Context, productID uint) (*InventoryDTO, error) {
	row, err := s.repo.FindByProductID(ctx, productID)
	if err != nil {
		return nil, mapFindError(err)
	}
	return FromModel(row), nil
}

func (s *service) List(ctx context.Context) ([]InventoryDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: list inventory")
	}
	return fromModels(rows), nil
}

func (s *service) ListLowStock(ctx context.Context) ([]InventoryDTO, error) {
	rows, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: list low stock")
	}
	return fromModels(rows), nil
}

func (s *service) ListNeedingReorder(ctx context.Context) ([]InventoryDTO, error) {
	rows, err := s.repo.ListNeedingReorder(ctx)
	if err != nil {
		return nil, pkgerrors.FromStore(err, "db: list reorder")
	}
	return fromModels(rows), nil
}

func (s *service) SetFields(ctx context.Context, productID uint, input UpdateInventoryInput) (*InventoryDTO, error) {
	if err := validateUpdateInput(input); err != nil {
		return nil, err
	}
	return s.mutate(ctx, opSetFields, productID, func(_ *models.Inventory, _ time.Time) (map[string]any, error) {
		return updateFields(input), nil
	})
}

func (s *service) AdjustStock(ctx context.Context, productID uint, delta int, reason *string) (*InventoryDTO, error) {
	ctx = s.logg.WithField(ctx, "delta", delta)
	return s.mutate(ctx, opAdjust, productID, func(row *models.Inventory, now time.Time) (map[string]any, error) {
		newStock := row.CurrentStock + delta
		if newStock < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidAdjustment, "cannot reduce stock below zero").
				WithDetails(map[string]any{"current_stock": row.CurrentStock, "adjustment": delta})
		}
		return map[string]any{
			"current_stock": newStock,
			"notes":         appendAudit(row.Notes, adjustmentLine(now, delta, reason)),
		}, nil
	})
}

func (s *service) Restock(ctx context.Context, productID uint, quantity int) (*InventoryDTO, error) {
	ctx = s.logg.WithField(ctx, "quantity", quantity)
	return s.mutate(ctx, opRestock, productID, func(row *models.Inventory, now time.Time) (map[string]any, error) {
		if quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "restock quantity must be greater than zero").
				WithDetails(map[string]any{"quantity": quantity})
		}
		return map[string]any{
			"current_stock":     row.CurrentStock + quantity,
			"last_restocked_at": now,
			"notes":             appendAudit(row.Notes, restockLine(now, quantity)),
		}, nil
	})
}

type mutation func(row *models.Inventory, now time.Time) (map[string]any, error)

// mutate runs read-compute-write attempts until one commits against an unchanged version.
func (s *service) mutate(ctx context.Context, op string, productID uint, apply mutation) (*InventoryDTO, error) {
	ctx = s.logg.WithOperation(s.logg.WithProductID(ctx, productID), op)

	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		var updated *models.Inventory
		err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
			txRepo := s.repo.WithTx(tx)
			row, err := txRepo.FindByProductID(ctx, productID)
			if err != nil {
				return mapFindError(err)
			}

			now := s.now().UTC()
			updates, err := apply(row, now)
			if err != nil {
				return err
			}
			updates["updated_at"] = now

			ok, err := txRepo.UpdateVersioned(ctx, productID, row.Version, updates)
			if err != nil {
				if db.IsCheckViolation(err, "current_stock") {
					return pkgerrors.Wrap(pkgerrors.CodeInvalidAdjustment, err, "cannot reduce stock below zero")
				}
				return pkgerrors.FromStore(err, "db: update inventory")
			}
			if !ok {
				return errVersionConflict
			}

			updated, err = txRepo.FindByProductID(ctx, productID)
			if err != nil {
				return pkgerrors.FromStore(err, "db: reload inventory")
			}
			return nil
		})

		switch {
		case err == nil:
			s.metrics.IncMutation(op, metrics.OutcomeSuccess)
			s.logg.Info(s.logg.WithField(ctx, "current_stock", updated.CurrentStock), "inventory updated")
			return FromModel(updated), nil
		case errors.Is(err, errVersionConflict):
			s.metrics.IncConflict(op)
			s.logg.Warn(s.logg.WithField(ctx, "attempt", attempt), "inventory version conflict, retrying")
			continue
		default:
			s.recordFailure(ctx, op, err)
			return nil, err
		}
	}

	s.metrics.IncMutation(op, metrics.OutcomeConflict)
	err := pkgerrors.New(pkgerrors.CodeConflict, "inventory was modified concurrently, retries exhausted").
		WithDetails(map[string]any{"product_id": productID, "attempts": s.maxRetries})
	s.logg.Error(ctx, "inventory mutation gave up", err)
	return nil, err
}

func (s *service) recordFailure(ctx context.Context, op string, err error) {
	switch pkgerrors.CodeOf(err) {
	case pkgerrors.CodeNotFound, pkgerrors.CodeValidation, pkgerrors.CodeInvalidAdjustment, pkgerrors.CodeInvalidQuantity:
		s.metrics.IncMutation(op, metrics.OutcomeRejected)
		s.logg.Warn(s.logg.WithField(ctx, "error", err.Error()), "inventory mutation rejected")
	default:
		s.metrics.IncMutation(op, metrics.OutcomeError)
		s.logg.Error(ctx, "inventory mutation failed", err)
	}
}

func validateUpdateInput(input UpdateInventoryInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}
	if input.MaximumStock.Value != nil && *input.MaximumStock.Value < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"maximum_stock": "must be at least 0"})
	}
	if loc := input.WarehouseLocation.Value; loc != nil && len(*loc) > 100 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"warehouse_location": "must be at most 100"})
	}
	return nil
}

func updateFields(input UpdateInventoryInput) map[string]any {
	updates := map[string]any{}
	if input.CurrentStock != nil {
		updates["current_stock"] = *input.CurrentStock
	}
	if input.MinimumStock != nil {
		updates["minimum_stock"] = *input.MinimumStock
	}
	if input.MaximumStock.Set {
		updates["maximum_stock"] = input.MaximumStock.ColumnValue()
	}
	if input.ReorderPoint != nil {
		updates["reorder_point"] = *input.ReorderPoint
	}
	if input.ReorderQuantity != nil {
		updates["reorder_quantity"] = *input.ReorderQuantity
	}
	if input.WarehouseLocation.Set {
		updates["warehouse_location"] = input.WarehouseLocation.ColumnValue()
	}
	if input.Notes.Set {
		updates["notes"] = input.Notes.ColumnValue()
	}
	return updates
}

func mapFindError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "inventory record not found for this product")
	}
	return pkgerrors.FromStore(err, "db: load inventory")
}
