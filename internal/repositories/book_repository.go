package repositories

import (
	"context"

	"github.com/asakaida/toshokan/internal/entities"
)

// BookFilter defines filter criteria for querying books
type BookFilter struct {
	Title      string // Filter by exact title (optional)
	CategoryID int64  // Filter by category (optional)
	AuthorID   int64  // Filter by linked author (optional)
}

// BookRepository defines the interface for book data access
type BookRepository interface {
	// Create inserts a new book together with its author links in a single
	// transaction and sets the generated ID
	Create(ctx context.Context, book *entities.Book) error

	// GetByID retrieves a book by ID with its category and authors
	GetByID(ctx context.Context, id int64) (*entities.Book, error)

	// GetByISBN retrieves a book by its unique ISBN with category and authors
	GetByISBN(ctx context.Context, isbn string) (*entities.Book, error)

	// List retrieves books matching the filter
	List(ctx context.Context, filter *BookFilter) ([]*entities.Book, error)

	// ListByAuthorLastName retrieves the books linked to authors with the
	// given last name via the book_authors join table
	ListByAuthorLastName(ctx context.Context, lastName string) ([]*entities.Book, error)

	// AddAuthor links an author to a book
	AddAuthor(ctx context.Context, bookID, authorID int64) error

	// RemoveAuthor unlinks an author from a book
	RemoveAuthor(ctx context.Context, bookID, authorID int64) error

	// Delete removes a book; fails while loans still reference it
	Delete(ctx context.Context, id int64) error
}
