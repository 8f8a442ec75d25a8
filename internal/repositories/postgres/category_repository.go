package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asakaida/toshokan/internal/entities"
	"github.com/asakaida/toshokan/internal/repositories"
)

// PostgresCategoryRepository implements CategoryRepository using PostgreSQL
type PostgresCategoryRepository struct {
	db *sql.DB
}

// NewPostgresCategoryRepository creates a new PostgreSQL category repository
func NewPostgresCategoryRepository(db *sql.DB) repositories.CategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// Create inserts a new category and sets its generated ID
func (r *PostgresCategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	if err := category.Validate(); err != nil {
		return fmt.Errorf("invalid category: %w", err)
	}

	query := `
		INSERT INTO categories (name)
		VALUES ($1)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, category.Name).Scan(&category.ID)
	if err != nil {
		return translateError("failed to create category", err)
	}
	return nil
}

// GetByID retrieves a category by ID
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	query := `SELECT id, name FROM categories WHERE id = $1`

	var category entities.Category
	err := r.db.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, translateError("failed to get category", err)
	}
	return &category, nil
}

// GetByName retrieves a category by its unique name
func (r *PostgresCategoryRepository) GetByName(ctx context.Context, name string) (*entities.Category, error) {
	query := `SELECT id, name FROM categories WHERE name = $1`

	var category entities.Category
	err := r.db.QueryRowContext(ctx, query, name).Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, translateError("failed to get category by name", err)
	}
	return &category, nil
}

// List retrieves all categories ordered by name
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, translateError("failed to list categories", err)
	}
	defer rows.Close()

	var categories []*entities.Category
	for rows.Next() {
		var category entities.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}
	return categories, nil
}

// Delete removes a category; fails while books still reference it
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete category", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to delete category: %w", repositories.ErrNotFound)
	}
	return nil
}
