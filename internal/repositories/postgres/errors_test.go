package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/asakaida/toshokan/internal/repositories"
	"github.com/lib/pq"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "nil error",
			err:  nil,
			want: nil,
		},
		{
			name: "no rows",
			err:  sql.ErrNoRows,
			want: repositories.ErrNotFound,
		},
		{
			name: "unique violation",
			err:  &pq.Error{Code: "23505", Constraint: "books_isbn_key"},
			want: repositories.ErrDuplicate,
		},
		{
			name: "foreign key violation",
			err:  &pq.Error{Code: "23503", Constraint: "books_category_id_fkey"},
			want: repositories.ErrForeignKey,
		},
		{
			name: "check violation",
			err:  &pq.Error{Code: "23514", Constraint: "loans_status_check"},
			want: repositories.ErrCheckViolation,
		},
		{
			name: "not null violation",
			err:  &pq.Error{Code: "23502", Column: "email"},
			want: repositories.ErrNotNull,
		},
		{
			name: "wrapped driver error",
			err:  fmt.Errorf("exec: %w", &pq.Error{Code: "23505"}),
			want: repositories.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateError("op", tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("translateError() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("translateError() = %v, want errors.Is(%v)", got, tt.want)
			}
		})
	}
}

func TestTranslateError_UnknownError(t *testing.T) {
	cause := errors.New("connection reset")
	got := translateError("failed to list books", cause)
	if !errors.Is(got, cause) {
		t.Errorf("translateError() should wrap the original error, got %v", got)
	}
	for _, sentinel := range []error{
		repositories.ErrNotFound,
		repositories.ErrDuplicate,
		repositories.ErrForeignKey,
		repositories.ErrCheckViolation,
		repositories.ErrNotNull,
	} {
		if errors.Is(got, sentinel) {
			t.Errorf("translateError() should not match sentinel %v", sentinel)
		}
	}
}
