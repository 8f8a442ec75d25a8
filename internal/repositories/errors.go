package repositories

import "errors"

// Sentinel errors shared by all repository implementations. Implementations
// translate engine-specific constraint failures into these so callers can
// match with errors.Is without importing the driver.
var (
	// ErrNotFound is returned when a queried row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned on unique or primary key violations
	// (duplicate ISBN, category name, member email, author link).
	ErrDuplicate = errors.New("duplicate key value")

	// ErrForeignKey is returned when a referenced row does not exist or is
	// still referenced by dependents.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrCheckViolation is returned when a value falls outside a CHECK
	// constraint domain, such as an unknown loan status.
	ErrCheckViolation = errors.New("check constraint violation")

	// ErrNotNull is returned when a required column is missing.
	ErrNotNull = errors.New("not-null constraint violation")
)
