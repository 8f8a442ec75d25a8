package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asakaida/toshokan/internal/entities"
	"github.com/asakaida/toshokan/internal/repositories"
)

// PostgresAuthorRepository implements AuthorRepository using PostgreSQL
type PostgresAuthorRepository struct {
	db *sql.DB
}

// NewPostgresAuthorRepository creates a new PostgreSQL author repository
func NewPostgresAuthorRepository(db *sql.DB) repositories.AuthorRepository {
	return &PostgresAuthorRepository{db: db}
}

// Create inserts a new author and sets its generated ID
func (r *PostgresAuthorRepository) Create(ctx context.Context, author *entities.Author) error {
	if err := author.Validate(); err != nil {
		return fmt.Errorf("invalid author: %w", err)
	}

	query := `
		INSERT INTO authors (first_name, last_name)
		VALUES ($1, $2)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, author.FirstName, author.LastName).Scan(&author.ID)
	if err != nil {
		return translateError("failed to create author", err)
	}
	return nil
}

// GetByID retrieves an author by ID
func (r *PostgresAuthorRepository) GetByID(ctx context.Context, id int64) (*entities.Author, error) {
	query := `
		SELECT id, first_name, last_name
		FROM authors
		WHERE id = $1
	`
	var author entities.Author
	err := r.db.QueryRowContext(ctx, query, id).Scan(&author.ID, &author.FirstName, &author.LastName)
	if err != nil {
		return nil, translateError("failed to get author", err)
	}
	return &author, nil
}

// List retrieves authors, optionally filtered by exact last name
func (r *PostgresAuthorRepository) List(ctx context.Context, lastName string) ([]*entities.Author, error) {
	query := `
		SELECT id, first_name, last_name
		FROM authors
	`
	args := []interface{}{}
	if lastName != "" {
		query += " WHERE last_name = $1"
		args = append(args, lastName)
	}
	query += " ORDER BY last_name, first_name"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to list authors", err)
	}
	defer rows.Close()

	var authors []*entities.Author
	for rows.Next() {
		var author entities.Author
		if err := rows.Scan(&author.ID, &author.FirstName, &author.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, &author)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}
	return authors, nil
}

// Delete removes an author; fails while books still reference it
func (r *PostgresAuthorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete author", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to delete author: %w", repositories.ErrNotFound)
	}
	return nil
}
