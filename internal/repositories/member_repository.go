package repositories

import (
	"context"

	"github.com/asakaida/toshokan/internal/entities"
)

// MemberRepository defines the interface for member data access
type MemberRepository interface {
	// Create inserts a new member and sets its generated ID
	Create(ctx context.Context, member *entities.Member) error

	// GetByID retrieves a member by ID
	GetByID(ctx context.Context, id int64) (*entities.Member, error)

	// GetByEmail retrieves a member by its unique email
	GetByEmail(ctx context.Context, email string) (*entities.Member, error)

	// List retrieves all members ordered by last name
	List(ctx context.Context) ([]*entities.Member, error)

	// Delete removes a member; fails while loans still reference it
	Delete(ctx context.Context, id int64) error
}
