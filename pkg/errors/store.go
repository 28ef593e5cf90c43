package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// FromStore classifies a persistence error into a typed error. A missing row
// maps to NOT_FOUND, constraint violations map to INTEGRITY_ERROR and any
// other failure is reported as a DEPENDENCY_ERROR.
func FromStore(err error, message string) error {
	if err == nil {
		return nil
	}
	if typed := As(err); typed != nil {
		return typed
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(CodeNotFound, err, message)
	case IsConstraintViolation(err):
		return Wrap(CodeIntegrity, err, message)
	default:
		return Wrap(CodeDependency, err, message)
	}
}

// IsConstraintViolation reports unique, foreign key and check violations for
// postgres (pgx and pq) and sqlite drivers.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) || errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	if pg := pgFieldsOf(err); pg != nil {
		return isConstraintCode(pg.Code)
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "violates foreign key constraint")
}

func isConstraintCode(code string) bool {
	switch code {
	case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
		return true
	default:
		return false
	}
}
