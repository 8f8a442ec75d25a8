package repositories

import (
	"context"

	"github.com/asakaida/toshokan/internal/entities"
)

// LoanFilter defines filter criteria for querying loans
type LoanFilter struct {
	Status   entities.LoanStatus // Filter by status (optional)
	MemberID int64               // Filter by member (optional)
	BookID   int64               // Filter by book (optional)
}

// LoanRepository defines the interface for loan data access
type LoanRepository interface {
	// Create inserts a new loan and sets its generated ID
	Create(ctx context.Context, loan *entities.Loan) error

	// GetByID retrieves a loan by ID
	GetByID(ctx context.Context, id int64) (*entities.Loan, error)

	// List retrieves loans matching the filter, ordered by loan date
	List(ctx context.Context, filter *LoanFilter) ([]*entities.Loan, error)

	// Update rewrites the mutable loan columns (due date, return date,
	// status) for an existing loan
	Update(ctx context.Context, loan *entities.Loan) error

	// Delete removes a loan
	Delete(ctx context.Context, id int64) error
}
