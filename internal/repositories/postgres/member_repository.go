package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/asakaida/toshokan/internal/entities"
	"github.com/asakaida/toshokan/internal/repositories"
)

// PostgresMemberRepository implements MemberRepository using PostgreSQL
type PostgresMemberRepository struct {
	db *sql.DB
}

// NewPostgresMemberRepository creates a new PostgreSQL member repository
func NewPostgresMemberRepository(db *sql.DB) repositories.MemberRepository {
	return &PostgresMemberRepository{db: db}
}

// Create inserts a new member and sets its generated ID
func (r *PostgresMemberRepository) Create(ctx context.Context, member *entities.Member) error {
	if err := member.Validate(); err != nil {
		return fmt.Errorf("invalid member: %w", err)
	}

	query := `
		INSERT INTO members (first_name, last_name, email, phone, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	phone := sql.NullString{String: member.Phone, Valid: member.Phone != ""}
	err := r.db.QueryRowContext(ctx, query,
		member.FirstName, member.LastName, member.Email, phone, member.JoinedAt,
	).Scan(&member.ID)
	if err != nil {
		return translateError("failed to create member", err)
	}
	return nil
}

// GetByID retrieves a member by ID
func (r *PostgresMemberRepository) GetByID(ctx context.Context, id int64) (*entities.Member, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, joined_at
		FROM members
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id), "failed to get member")
}

// GetByEmail retrieves a member by its unique email
func (r *PostgresMemberRepository) GetByEmail(ctx context.Context, email string) (*entities.Member, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, joined_at
		FROM members
		WHERE email = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email), "failed to get member by email")
}

func (r *PostgresMemberRepository) scanOne(row *sql.Row, op string) (*entities.Member, error) {
	var member entities.Member
	var phone sql.NullString
	err := row.Scan(
		&member.ID, &member.FirstName, &member.LastName,
		&member.Email, &phone, &member.JoinedAt,
	)
	if err != nil {
		return nil, translateError(op, err)
	}
	if phone.Valid {
		member.Phone = phone.String
	}
	return &member, nil
}

// List retrieves all members ordered by last name
func (r *PostgresMemberRepository) List(ctx context.Context) ([]*entities.Member, error) {
	query := `
		SELECT id, first_name, last_name, email, phone, joined_at
		FROM members
		ORDER BY last_name, first_name
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, translateError("failed to list members", err)
	}
	defer rows.Close()

	var members []*entities.Member
	for rows.Next() {
		var member entities.Member
		var phone sql.NullString
		err := rows.Scan(
			&member.ID, &member.FirstName, &member.LastName,
			&member.Email, &phone, &member.JoinedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		if phone.Valid {
			member.Phone = phone.String
		}
		members = append(members, &member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}
	return members, nil
}

// Delete removes a member; fails while loans still reference it
func (r *PostgresMemberRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete member", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("failed to delete member: %w", repositories.ErrNotFound)
	}
	return nil
}
