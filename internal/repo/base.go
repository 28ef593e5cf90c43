package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base holds the store handle shared by domain repositories. A Base built over a
// transaction scopes every query to it.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the handle bound to ctx.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Count returns how many rows of model have column equal to value.
func (b Base) Count(ctx context.Context, model any, column string, value any) (int64, error) {
	var count int64
	err := b.DB(ctx).Model(model).Where(column+" = ?", value).Count(&count).Error
	return count, err
}

// Exists reports whether any row of model has column equal to value.
func (b Base) Exists(ctx context.Context, model any, column string, value any) (bool, error) {
	count, err := b.Count(ctx, model, column, value)
	return count > 0, err
}
