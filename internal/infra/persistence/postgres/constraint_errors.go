package postgres

import (
	"profilehub/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations and rejected values.
const (
	sqlStateStringTooLong    = "22001"
	sqlStateNotNullViolation = "23502"
	sqlStateUniqueViolation  = "23505"
	sqlStateCheckViolation   = "23514"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || pgErrorCode(err) == sqlStateUniqueViolation
}

func isNotNullConstraintViolation(err error) bool {
	return pgErrorCode(err) == sqlStateNotNullViolation
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated) || pgErrorCode(err) == sqlStateCheckViolation
}

// isValueTooLong reports a value wider than its varchar column.
func isValueTooLong(err error) bool {
	return pgErrorCode(err) == sqlStateStringTooLong
}

// constraintColumn names the column a violation refers to, when the driver reports it.
func constraintColumn(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ColumnName
	}

	return ""
}
