package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/asakaida/toshokan/internal/entities"
	"github.com/qawatake/fixify"
)

// Fixture connectors in the fixify style: parents insert before children,
// and foreign keys are wired once the parent's ID is known.

func categoryFixture(name string) *fixify.Model[entities.Category] {
	return fixify.NewModel(&entities.Category{Name: name})
}

func authorFixture(firstName, lastName string) *fixify.Model[entities.Author] {
	return fixify.NewModel(&entities.Author{FirstName: firstName, LastName: lastName})
}

func bookFixture(title, isbn string) *fixify.Model[entities.Book] {
	book := &entities.Book{Title: title, ISBN: isbn, PublishedYear: 2000, TotalCopies: 1}
	return fixify.NewModel(book,
		fixify.ConnectorFunc(func(t testing.TB, childModel *entities.Book, parentModel *entities.Category) {
			childModel.CategoryID = parentModel.ID
		}),
	)
}

func memberFixture(email string) *fixify.Model[entities.Member] {
	member := &entities.Member{
		FirstName: "Test",
		LastName:  "Member",
		Email:     email,
		JoinedAt:  time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	return fixify.NewModel(member)
}

func loanFixture(status entities.LoanStatus) *fixify.Model[entities.Loan] {
	loanDate := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	loan := &entities.Loan{
		LoanDate: loanDate,
		DueDate:  loanDate.AddDate(0, 0, 14),
		Status:   status,
	}
	return fixify.NewModel(loan,
		fixify.ConnectorFunc(func(t testing.TB, childModel *entities.Loan, parentModel *entities.Book) {
			childModel.BookID = parentModel.ID
		}),
		fixify.ConnectorFunc(func(t testing.TB, childModel *entities.Loan, parentModel *entities.Member) {
			childModel.MemberID = parentModel.ID
		}),
	)
}

// bookAuthorLink joins a book and an author in the book_authors table.
// It has two parents, like the follow model in fixify's examples.
type bookAuthorLink struct {
	BookID   int64
	AuthorID int64
}

func bookAuthorFixture() *fixify.Model[bookAuthorLink] {
	return fixify.NewModel(&bookAuthorLink{},
		fixify.ConnectorFunc(func(t testing.TB, childModel *bookAuthorLink, parentModel *entities.Book) {
			childModel.BookID = parentModel.ID
		}),
		fixify.ConnectorFunc(func(t testing.TB, childModel *bookAuthorLink, parentModel *entities.Author) {
			childModel.AuthorID = parentModel.ID
		}),
	)
}

// insertFixtures visits the fixture graph in dependency order and inserts
// each model through the repository layer.
func insertFixtures(t *testing.T, db *sql.DB, f *fixify.Fixture) {
	t.Helper()
	ctx := context.Background()

	authorRepo := NewPostgresAuthorRepository(db)
	categoryRepo := NewPostgresCategoryRepository(db)
	bookRepo := NewPostgresBookRepository(db)
	memberRepo := NewPostgresMemberRepository(db)
	loanRepo := NewPostgresLoanRepository(db)

	f.Apply(func(model any) error {
		switch m := model.(type) {
		case *entities.Category:
			return categoryRepo.Create(ctx, m)
		case *entities.Author:
			return authorRepo.Create(ctx, m)
		case *entities.Book:
			return bookRepo.Create(ctx, m)
		case *entities.Member:
			return memberRepo.Create(ctx, m)
		case *entities.Loan:
			return loanRepo.Create(ctx, m)
		case *bookAuthorLink:
			return bookRepo.AddAuthor(ctx, m.BookID, m.AuthorID)
		default:
			return fmt.Errorf("unknown fixture model %T", model)
		}
	})
}
