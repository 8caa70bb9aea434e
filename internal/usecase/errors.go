package usecase

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// on a constraint whose name contains constraintName
func isDuplicateKeyError(err error, constraintName string) bool {
	return isPgError(err, "23505", constraintName)
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// on a constraint whose name contains constraintName
func isForeignKeyError(err error, constraintName string) bool {
	return isPgError(err, "23503", constraintName)
}

func isPgError(err error, code string, constraintName string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == code &&
		strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName))
}
