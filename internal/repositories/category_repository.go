package repositories

import (
	"context"

	"github.com/asakaida/toshokan/internal/entities"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	// Create inserts a new category and sets its generated ID
	Create(ctx context.Context, category *entities.Category) error

	// GetByID retrieves a category by ID
	GetByID(ctx context.Context, id int64) (*entities.Category, error)

	// GetByName retrieves a category by its unique name
	GetByName(ctx context.Context, name string) (*entities.Category, error)

	// List retrieves all categories ordered by name
	List(ctx context.Context) ([]*entities.Category, error)

	// Delete removes a category; fails while books still reference it
	Delete(ctx context.Context, id int64) error
}
