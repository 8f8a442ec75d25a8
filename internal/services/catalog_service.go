package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/asakaida/toshokan/internal/entities"
	"github.com/asakaida/toshokan/internal/infrastructure/metrics"
	"github.com/asakaida/toshokan/internal/repositories"
)

// CatalogServiceInterface defines the interface for catalog management operations
type CatalogServiceInterface interface {
	EnsureCategory(ctx context.Context, name string) (*entities.Category, error)
	RegisterBook(ctx context.Context, book *entities.Book, authors []*entities.Author) error
	GetBook(ctx context.Context, id int64) (*entities.Book, error)
	GetBookByISBN(ctx context.Context, isbn string) (*entities.Book, error)
	FindBooksByAuthor(ctx context.Context, lastName string) ([]*entities.Book, error)
}

// CatalogService handles catalog management operations: registering books
// with their authors and categories, and the read paths over them.
type CatalogService struct {
	bookRepo     repositories.BookRepository
	authorRepo   repositories.AuthorRepository
	categoryRepo repositories.CategoryRepository

	collector *metrics.Collector
	exporter  *metrics.PrometheusExporter
}

// NewCatalogService creates a new CatalogService.
// collector and exporter may be nil to disable instrumentation.
func NewCatalogService(
	bookRepo repositories.BookRepository,
	authorRepo repositories.AuthorRepository,
	categoryRepo repositories.CategoryRepository,
	collector *metrics.Collector,
	exporter *metrics.PrometheusExporter,
) *CatalogService {
	return &CatalogService{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
		collector:    collector,
		exporter:     exporter,
	}
}

// record reports one operation to the collector and the Prometheus exporter.
func (s *CatalogService) record(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()

	s.collector.RecordRequest(operation)
	s.collector.RecordDuration(operation, duration)
	if err != nil {
		s.collector.RecordError(operation)
	}

	if s.exporter != nil {
		s.exporter.RecordRequest(operation)
		s.exporter.RecordDuration(operation, duration)
		if err != nil {
			s.exporter.RecordError(operation)
		}
	}
}

// EnsureCategory returns the category with the given name, creating it if it
// does not exist yet.
func (s *CatalogService) EnsureCategory(ctx context.Context, name string) (category *entities.Category, err error) {
	start := time.Now()
	defer func() { s.record("CatalogService.EnsureCategory", start, err) }()

	if name == "" {
		return nil, fmt.Errorf("category name is required")
	}

	category, err = s.categoryRepo.GetByName(ctx, name)
	if err == nil {
		return category, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}

	category = &entities.Category{Name: name}
	if err = s.categoryRepo.Create(ctx, category); err != nil {
		// A concurrent writer may have created the same name first.
		if errors.Is(err, repositories.ErrDuplicate) {
			return s.categoryRepo.GetByName(ctx, name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// RegisterBook creates the book and links it to the given authors.
// Authors without an ID are created first; authors with an ID are reused.
func (s *CatalogService) RegisterBook(ctx context.Context, book *entities.Book, authors []*entities.Author) (err error) {
	start := time.Now()
	defer func() { s.record("CatalogService.RegisterBook", start, err) }()

	if book == nil {
		return fmt.Errorf("book is required")
	}
	if err = book.Validate(); err != nil {
		return fmt.Errorf("invalid book: %w", err)
	}

	for _, author := range authors {
		if author.ID != 0 {
			continue
		}
		if err = s.authorRepo.Create(ctx, author); err != nil {
			return fmt.Errorf("failed to create author: %w", err)
		}
	}

	book.Authors = authors
	if err = s.bookRepo.Create(ctx, book); err != nil {
		return fmt.Errorf("failed to register book: %w", err)
	}
	return nil
}

// GetBook retrieves a book by ID with its category and authors.
func (s *CatalogService) GetBook(ctx context.Context, id int64) (book *entities.Book, err error) {
	start := time.Now()
	defer func() { s.record("CatalogService.GetBook", start, err) }()

	book, err = s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get book: %w", err)
	}
	return book, nil
}

// GetBookByISBN retrieves a book by its unique ISBN.
func (s *CatalogService) GetBookByISBN(ctx context.Context, isbn string) (book *entities.Book, err error) {
	start := time.Now()
	defer func() { s.record("CatalogService.GetBookByISBN", start, err) }()

	if isbn == "" {
		return nil, fmt.Errorf("ISBN is required")
	}
	book, err = s.bookRepo.GetByISBN(ctx, isbn)
	if err != nil {
		return nil, fmt.Errorf("failed to get book by ISBN: %w", err)
	}
	return book, nil
}

// FindBooksByAuthor retrieves the books written by authors with the given
// last name.
func (s *CatalogService) FindBooksByAuthor(ctx context.Context, lastName string) (books []*entities.Book, err error) {
	start := time.Now()
	defer func() { s.record("CatalogService.FindBooksByAuthor", start, err) }()

	if lastName == "" {
		return nil, fmt.Errorf("author last name is required")
	}
	books, err = s.bookRepo.ListByAuthorLastName(ctx, lastName)
	if err != nil {
		return nil, fmt.Errorf("failed to find books by author: %w", err)
	}
	return books, nil
}
