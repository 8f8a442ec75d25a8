package repositories

import (
	"context"

	"github.com/asakaida/toshokan/internal/entities"
)

// AuthorRepository defines the interface for author data access
type AuthorRepository interface {
	// Create inserts a new author and sets its generated ID
	Create(ctx context.Context, author *entities.Author) error

	// GetByID retrieves an author by ID
	GetByID(ctx context.Context, id int64) (*entities.Author, error)

	// List retrieves authors, optionally filtered by exact last name
	List(ctx context.Context, lastName string) ([]*entities.Author, error)

	// Delete removes an author; fails while books still reference it
	Delete(ctx context.Context, id int64) error
}
