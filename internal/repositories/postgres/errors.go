package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/asakaida/toshokan/internal/repositories"
	"github.com/lib/pq"
)

// SQLSTATE codes raised by PostgreSQL on constraint violations
// (class 23, integrity constraint violation).
const (
	codeNotNullViolation    = "23502"
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeCheckViolation      = "23514"
)

// translateError maps driver errors onto the repository sentinel errors.
// The violated constraint name is kept in the message for diagnostics.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, repositories.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation:
			return fmt.Errorf("%s: constraint %s: %w", op, pqErr.Constraint, repositories.ErrDuplicate)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: constraint %s: %w", op, pqErr.Constraint, repositories.ErrForeignKey)
		case codeCheckViolation:
			return fmt.Errorf("%s: constraint %s: %w", op, pqErr.Constraint, repositories.ErrCheckViolation)
		case codeNotNullViolation:
			return fmt.Errorf("%s: column %s: %w", op, pqErr.Column, repositories.ErrNotNull)
		}
	}

	return fmt.Errorf("%s: %w", op, err)
}
