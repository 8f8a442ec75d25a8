package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asakaida/toshokan/internal/entities"
	"github.com/asakaida/toshokan/internal/repositories"
)

// PostgresLoanRepository implements LoanRepository using PostgreSQL
type PostgresLoanRepository struct {
	db *sql.DB
}

// NewPostgresLoanRepository creates a new PostgreSQL loan repository
func NewPostgresLoanRepository(db *sql.DB) repositories.LoanRepository {
	return &PostgresLoanRepository{db: db}
}

// Create inserts a new loan and sets its generated ID
func (r *PostgresLoanRepository) Create(ctx context.Context, loan *entities.Loan) error {
	if err := loan.Validate(); err != nil {
		return fmt.Errorf("invalid loan: %w", err)
	}

	query := `
		INSERT INTO loans (book_id, member_id, loan_date, due_date, return_date, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		loan.BookID, loan.MemberID, loan.LoanDate, loan.DueDate,
		loan.ReturnDate, string(loan.Status),
	).Scan(&loan.ID)
	if err != nil {
		return translateError("failed to create loan", err)
	}
	return nil
}

// GetByID retrieves a loan by ID
func (r *PostgresLoanRepository) GetByID(ctx context.Context, id int64) (*entities.Loan, error) {
	query := `
		SELECT id, book_id, member_id, loan_date, due_date, return_date, status
		FROM loans
		WHERE id = $1
	`
	var loan entities.Loan
	var returnDate sql.NullTime
	var status string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&loan.ID, &loan.BookID, &loan.MemberID,
		&loan.LoanDate, &loan.DueDate, &returnDate, &status,
	)
	if err != nil {
		return nil, translateError("failed to get loan", err)
	}
	if returnDate.Valid {
		loan.ReturnDate = &returnDate.Time
	}
	loan.Status = entities.LoanStatus(status)
	return &loan, nil
}

// List retrieves loans matching the filter, ordered by loan date
func (r *PostgresLoanRepository) List(ctx context.Context, filter *repositories.LoanFilter) ([]*entities.Loan, error) {
	query := `
		SELECT id, book_id, member_id, loan_date, due_date, return_date, status
		FROM loans
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
		if filter.Status != "" {
			and(fmt.Sprintf("status = $%d", argIdx))
			args = append(args, string(filter.Status))
			argIdx++
		}
		if filter.MemberID != 0 {
			and(fmt.Sprintf("member_id = $%d", argIdx))
			args = append(args, filter.MemberID)
			argIdx++
		}
		if filter.BookID != 0 {
			and(fmt.Sprintf("book_id = $%d", argIdx))
			args = append(args, filter.BookID)
			argIdx++
		}
	}
	query += where + " ORDER BY loan_date, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateError("failed to list loans", err)
	}
	defer rows.Close()

	var loans []*entities.Loan
	for rows.Next() {
		var loan entities.Loan
		var returnDate sql.NullTime
		var status string
		err := rows.Scan(
			&loan.ID, &loan.BookID, &loan.MemberID,
			&loan.LoanDate, &loan.DueDate, &returnDate, &status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan loan: %w", err)
		}
		if returnDate.Valid {
			loan.ReturnDate = &returnDate.Time
		}
		loan.Status = entities.LoanStatus(status)
		loans = append(loans, &loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loans: %w", err)
	}
	return loans, nil
}

// Update rewrites the mutable loan columns for an existing loan
func (r *PostgresLoanRepository) Update(ctx context.Context, loan *entities.Loan) error {
	if err := loan.Validate(); err != nil {
		return fmt.Errorf("invalid loan: %w", err)
	}

	query := `
		UPDATE loans
		SET due_date = $1, return_date = $2, status = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		loan.DueDate, loan.ReturnDate, string(loan.Status), loan.ID,
	)
	if err != nil {
		return translateError("failed to update loan", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to update loan: %w", repositories.ErrNotFound)
	}
	return nil
}

// Delete removes a loan
func (r *PostgresLoanRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete loan", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to delete loan: %w", repositories.ErrNotFound)
	}
	return nil
}
