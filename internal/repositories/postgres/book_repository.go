package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asakaida/toshokan/internal/entities"
	"github.com/asakaida/toshokan/internal/repositories"
	"github.com/lib/pq"
)

// PostgresBookRepository implements BookRepository using PostgreSQL
type PostgresBookRepository struct {
	db *sql.DB
}

// NewPostgresBookRepository creates a new PostgreSQL book repository
func NewPostgresBookRepository(db *sql.DB) repositories.BookRepository {
	return &PostgresBookRepository{db: db}
}

// Create inserts a new book together with its author links in a single
// transaction and sets the generated ID
func (r *PostgresBookRepository) Create(ctx context.Context, book *entities.Book) error {
	if err := book.Validate(); err != nil {
		return fmt.Errorf("invalid book: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO books (title, isbn, category_id, published_year, total_copies)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, query,
		book.Title, book.ISBN, book.CategoryID, book.PublishedYear, book.TotalCopies,
	).Scan(&book.ID)
	if err != nil {
		return translateError("failed to create book", err)
	}

	for _, author := range book.Authors {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`,
			book.ID, author.ID,
		)
		if err != nil {
			return translateError("failed to link author", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a book by ID with its category and authors
func (r *PostgresBookRepository) GetByID(ctx context.Context, id int64) (*entities.Book, error) {
	return r.getOne(ctx, "b.id = $1", id)
}

// GetByISBN retrieves a book by its unique ISBN with category and authors
func (r *PostgresBookRepository) GetByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	return r.getOne(ctx, "b.isbn = $1", isbn)
}

func (r *PostgresBookRepository) getOne(ctx context.Context, where string, arg interface{}) (*entities.Book, error) {
	query := fmt.Sprintf(`
		SELECT b.id, b.title, b.isbn, b.category_id, b.published_year, b.total_copies, c.name
		FROM books b
		JOIN categories c ON c.id = b.category_id
		WHERE %s
	`, where)

	var book entities.Book
	var categoryName string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&book.ID, &book.Title, &book.ISBN, &book.CategoryID,
		&book.PublishedYear, &book.TotalCopies, &categoryName,
	)
	if err != nil {
		return nil, translateError("failed to get book", err)
	}
	book.Category = &entities.Category{ID: book.CategoryID, Name: categoryName}

	if err := r.loadAuthors(ctx, []*entities.Book{&book}); err != nil {
		return nil, err
	}
	return &book, nil
}

// List retrieves books matching the filter
func (r *PostgresBookRepository) List(ctx context.Context, filter *repositories.BookFilter) ([]*entities.Book, error) {
	query := `
		SELECT b.id, b.title, b.isbn, b.category_id, b.published_year, b.total_copies, c.name
		FROM books b
		JOIN categories c ON c.id = b.category_id
	`
	args := []interface{}{}
	argIdx := 1

	// Build dynamic WHERE clause based on filter
	where := ""
	and := func(cond string) {
		if where == "" {
			where = " WHERE " + cond
		} else {
			where += " AND " + cond
		}
	}
	if filter != nil {
		if filter.Title != "" {
			and(fmt.Sprintf("b.title = $%d", argIdx))
			args = append(args, filter.Title)
			argIdx++
		}
		if filter.CategoryID != 0 {
			and(fmt.Sprintf("b.category_id = $%d", argIdx))
			args = append(args, filter.CategoryID)
			argIdx++
		}
		if filter.AuthorID != 0 {
			and(fmt.Sprintf("EXISTS (SELECT 1 FROM book_authors ba WHERE ba.book_id = b.id AND ba.author_id = $%d)", argIdx))
			args = append(args, filter.AuthorID)
			argIdx++
		}
	}
	query += where + " ORDER BY b.title"

	return r.queryBooks(ctx, query, args...)
}

// ListByAuthorLastName retrieves the books linked to authors with the given
// last name via the book_authors join table
func (r *PostgresBookRepository) ListByAuthorLastName(ctx context.Context, lastName string) ([]*entities.Book, error) {
	query := `
		SELECT DISTINCT b.id, b.title, b.isbn, b.category_id, b.published_year, b.total_copies, c.name
		FROM books b
		JOIN categories c ON c.id = b.category_id
		JOIN book_authors ba ON ba.book_id = b.id
		JOIN authors a ON a.id = ba.author_id
		WHERE a.last_name = $1
		ORDER BY b.title
	`
	return r.queryBooks(ctx, query, lastName)
}

// AddAuthor links an author to a book
func (r *PostgresBookRepository) AddAuthor(ctx context.Context, bookID, authorID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO book_authors (book_id, author_id) VALUES ($1, $2)`,
		bookID, authorID,
	)
	if err != nil {
		return translateError("failed to link author", err)
	}
	return nil
}

// RemoveAuthor unlinks an author from a book
func (r *PostgresBookRepository) RemoveAuthor(ctx context.Context, bookID, authorID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM book_authors WHERE book_id = $1 AND author_id = $2`,
		bookID, authorID,
	)
	if err != nil {
		return translateError("failed to unlink author", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to unlink author: %w", repositories.ErrNotFound)
	}
	return nil
}

// Delete removes a book and its author links; fails while loans still
// reference it
func (r *PostgresBookRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM book_authors WHERE book_id = $1`, id); err != nil {
		return translateError("failed to delete author links", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete book", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to delete book: %w", repositories.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *PostgresBookRepository) queryBooks(ctx context.Context, query string, args ...interface{}) ([]*entities.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to list books", err)
	}
	defer rows.Close()

	var books []*entities.Book
	for rows.Next() {
		var book entities.Book
		var categoryName string
		err := rows.Scan(
			&book.ID, &book.Title, &book.ISBN, &book.CategoryID,
			&book.PublishedYear, &book.TotalCopies, &categoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		book.Category = &entities.Category{ID: book.CategoryID, Name: categoryName}
		books = append(books, &book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	if err := r.loadAuthors(ctx, books); err != nil {
		return nil, err
	}
	return books, nil
}

// loadAuthors populates Authors for the given books with one query.
func (r *PostgresBookRepository) loadAuthors(ctx context.Context, books []*entities.Book) error {
	if len(books) == 0 {
		return nil
	}

	byID := make(map[int64]*entities.Book, len(books))
	ids := make([]int64, 0, len(books))
	for _, b := range books {
		byID[b.ID] = b
		ids = append(ids, b.ID)
	}

	query := `
		SELECT ba.book_id, a.id, a.first_name, a.last_name
		FROM book_authors ba
		JOIN authors a ON a.id = ba.author_id
		WHERE ba.book_id = ANY($1)
		ORDER BY a.last_name, a.first_name
	`
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("failed to load authors: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookID int64
		var author entities.Author
		if err := rows.Scan(&bookID, &author.ID, &author.FirstName, &author.LastName); err != nil {
			return fmt.Errorf("failed to scan book author: %w", err)
		}
		if book, ok := byID[bookID]; ok {
			book.Authors = append(book.Authors, &author)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating book authors: %w", err)
	}
	return nil
}
