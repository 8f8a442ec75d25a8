package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/asakaida/toshokan/internal/entities"
	"github.com/asakaida/toshokan/internal/infrastructure/metrics"
	"github.com/asakaida/toshokan/internal/repositories"
)

// Mock BookRepository
type mockBookRepository struct {
	books  map[int64]*entities.Book
	nextID int64
}

func newMockBookRepository() *mockBookRepository {
	return &mockBookRepository{books: make(map[int64]*entities.Book), nextID: 1}
}

func (m *mockBookRepository) Create(ctx context.Context, book *entities.Book) error {
	for _, b := range m.books {
		if b.ISBN == book.ISBN {
			return fmt.Errorf("books_isbn_key: %w", repositories.ErrDuplicate)
		}
	}
	book.ID = m.nextID
	m.nextID++
	m.books[book.ID] = book
	return nil
}

func (m *mockBookRepository) GetByID(ctx context.Context, id int64) (*entities.Book, error) {
	book, ok := m.books[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return book, nil
}

func (m *mockBookRepository) GetByISBN(ctx context.Context, isbn string) (*entities.Book, error) {
	for _, b := range m.books {
		if b.ISBN == isbn {
			return b, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockBookRepository) List(ctx context.Context, filter *repositories.BookFilter) ([]*entities.Book, error) {
	var books []*entities.Book
	for _, b := range m.books {
		books = append(books, b)
	}
	return books, nil
}

func (m *mockBookRepository) ListByAuthorLastName(ctx context.Context, lastName string) ([]*entities.Book, error) {
	var books []*entities.Book
	for _, b := range m.books {
		for _, a := range b.Authors {
			if a.LastName == lastName {
				books = append(books, b)
				break
			}
		}
	}
	return books, nil
}

func (m *mockBookRepository) AddAuthor(ctx context.Context, bookID, authorID int64) error {
	return nil
}

func (m *mockBookRepository) RemoveAuthor(ctx context.Context, bookID, authorID int64) error {
	return nil
}

func (m *mockBookRepository) Delete(ctx context.Context, id int64) error {
	delete(m.books, id)
	return nil
}

// Mock AuthorRepository
type mockAuthorRepository struct {
	authors map[int64]*entities.Author
	nextID  int64
}

func newMockAuthorRepository() *mockAuthorRepository {
	return &mockAuthorRepository{authors: make(map[int64]*entities.Author), nextID: 1}
}

func (m *mockAuthorRepository) Create(ctx context.Context, author *entities.Author) error {
	author.ID = m.nextID
	m.nextID++
	m.authors[author.ID] = author
	return nil
}

func (m *mockAuthorRepository) GetByID(ctx context.Context, id int64) (*entities.Author, error) {
	author, ok := m.authors[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return author, nil
}

func (m *mockAuthorRepository) List(ctx context.Context, lastName string) ([]*entities.Author, error) {
	var authors []*entities.Author
	for _, a := range m.authors {
		if lastName == "" || a.LastName == lastName {
			authors = append(authors, a)
		}
	}
	return authors, nil
}

func (m *mockAuthorRepository) Delete(ctx context.Context, id int64) error {
	delete(m.authors, id)
	return nil
}

// Mock CategoryRepository
type mockCategoryRepository struct {
	categories map[int64]*entities.Category
	nextID     int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{categories: make(map[int64]*entities.Category), nextID: 1}
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	for _, c := range m.categories {
		if c.Name == category.Name {
			return fmt.Errorf("categories_name_key: %w", repositories.ErrDuplicate)
		}
	}
	category.ID = m.nextID
	m.nextID++
	m.categories[category.ID] = category
	return nil
}

func (m *mockCategoryRepository) GetByID(ctx context.Context, id int64) (*entities.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return category, nil
}

func (m *mockCategoryRepository) GetByName(ctx context.Context, name string) (*entities.Category, error) {
	for _, c := range m.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockCategoryRepository) List(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	for _, c := range m.categories {
		categories = append(categories, c)
	}
	return categories, nil
}

func (m *mockCategoryRepository) Delete(ctx context.Context, id int64) error {
	delete(m.categories, id)
	return nil
}

func newTestService() (*CatalogService, *mockBookRepository, *mockAuthorRepository, *mockCategoryRepository, *metrics.Collector) {
	bookRepo := newMockBookRepository()
	authorRepo := newMockAuthorRepository()
	categoryRepo := newMockCategoryRepository()
	collector := metrics.NewCollector()
	service := NewCatalogService(bookRepo, authorRepo, categoryRepo, collector, nil)
	return service, bookRepo, authorRepo, categoryRepo, collector
}

func TestCatalogService_EnsureCategory(t *testing.T) {
	service, _, _, categoryRepo, _ := newTestService()
	ctx := context.Background()

	first, err := service.EnsureCategory(ctx, "Science Fiction")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID == 0 {
		t.Fatal("expected category ID to be set")
	}

	// Second call returns the existing category
	second, err := service.EnsureCategory(ctx, "Science Fiction")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same category ID, got %d and %d", first.ID, second.ID)
	}
	if len(categoryRepo.categories) != 1 {
		t.Errorf("expected 1 category, got %d", len(categoryRepo.categories))
	}
}

func TestCatalogService_EnsureCategory_EmptyName(t *testing.T) {
	service, _, _, _, _ := newTestService()

	if _, err := service.EnsureCategory(context.Background(), ""); err == nil {
		t.Error("expected error for empty category name")
	}
}

func TestCatalogService_RegisterBook(t *testing.T) {
	service, bookRepo, authorRepo, _, collector := newTestService()
	ctx := context.Background()

	category, err := service.EnsureCategory(ctx, "Classics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	book := &entities.Book{
		Title:         "Kokoro",
		ISBN:          "978-4101010137",
		CategoryID:    category.ID,
		PublishedYear: 1914,
		TotalCopies:   2,
	}
	authors := []*entities.Author{
		{FirstName: "Soseki", LastName: "Natsume"},
	}

	if err := service.RegisterBook(ctx, book, authors); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if book.ID == 0 {
		t.Error("expected book ID to be set")
	}
	if authors[0].ID == 0 {
		t.Error("expected author ID to be set")
	}
	if len(bookRepo.books) != 1 {
		t.Errorf("expected 1 book, got %d", len(bookRepo.books))
	}
	if len(authorRepo.authors) != 1 {
		t.Errorf("expected 1 author, got %d", len(authorRepo.authors))
	}

	m := collector.GetOperationMetrics()
	if got := m.RequestCounts["CatalogService.RegisterBook"]; got != 1 {
		t.Errorf("RequestCounts[RegisterBook] = %d, want 1", got)
	}
}

func TestCatalogService_RegisterBook_ReusesExistingAuthors(t *testing.T) {
	service, _, authorRepo, _, _ := newTestService()
	ctx := context.Background()

	existing := &entities.Author{FirstName: "Soseki", LastName: "Natsume"}
	if err := authorRepo.Create(ctx, existing); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	category, err := service.EnsureCategory(ctx, "Classics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	book := &entities.Book{
		Title:       "Botchan",
		ISBN:        "978-4101010021",
		CategoryID:  category.ID,
		TotalCopies: 1,
	}
	if err := service.RegisterBook(ctx, book, []*entities.Author{existing}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(authorRepo.authors) != 1 {
		t.Errorf("expected author to be reused, got %d authors", len(authorRepo.authors))
	}
}

func TestCatalogService_RegisterBook_Invalid(t *testing.T) {
	service, _, _, _, collector := newTestService()

	book := &entities.Book{Title: "", ISBN: "x", CategoryID: 1, TotalCopies: 1}
	if err := service.RegisterBook(context.Background(), book, nil); err == nil {
		t.Fatal("expected validation error")
	}

	m := collector.GetOperationMetrics()
	if got := m.ErrorCounts["CatalogService.RegisterBook"]; got != 1 {
		t.Errorf("ErrorCounts[RegisterBook] = %d, want 1", got)
	}
}

func TestCatalogService_GetBook_NotFound(t *testing.T) {
	service, _, _, _, _ := newTestService()

	_, err := service.GetBook(context.Background(), 12345)
	if err == nil {
		t.Fatal("expected error for missing book")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalogService_FindBooksByAuthor(t *testing.T) {
	service, _, _, _, _ := newTestService()
	ctx := context.Background()

	category, err := service.EnsureCategory(ctx, "Classics")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	natsume := &entities.Author{FirstName: "Soseki", LastName: "Natsume"}
	if err := service.RegisterBook(ctx, &entities.Book{
		Title: "Kokoro", ISBN: "isbn-1", CategoryID: category.ID, TotalCopies: 1,
	}, []*entities.Author{natsume}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := service.RegisterBook(ctx, &entities.Book{
		Title: "Rashomon", ISBN: "isbn-2", CategoryID: category.ID, TotalCopies: 1,
	}, []*entities.Author{{FirstName: "Ryunosuke", LastName: "Akutagawa"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	books, err := service.FindBooksByAuthor(ctx, "Natsume")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(books) != 1 {
		t.Fatalf("expected 1 book, got %d", len(books))
	}
	if books[0].Title != "Kokoro" {
		t.Errorf("expected Kokoro, got %s", books[0].Title)
	}
}
