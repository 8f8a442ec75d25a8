package entities

import "fmt"

// Book represents a title held by the library.
// A book belongs to exactly one category and may have any number of authors.
// ISBNs are unique across the catalog.
type Book struct {
	ID            int64
	Title         string
	ISBN          string
	CategoryID    int64
	PublishedYear int
	TotalCopies   int

	// Category and Authors are populated on joined reads by the repository
	// layer; they are nil/empty on plain inserts.
	Category *Category
	Authors  []*Author
}

// String returns a string representation of the book
// Format: "Title" (year) [isbn]
func (b *Book) String() string {
	return fmt.Sprintf("%q (%d) [%s]", b.Title, b.PublishedYear, b.ISBN)
}

// Validate checks if the book is valid
func (b *Book) Validate() error {
	if b.Title == "" {
		return fmt.Errorf("title is required")
	}
	if b.ISBN == "" {
		return fmt.Errorf("ISBN is required")
	}
	if b.CategoryID == 0 {
		return fmt.Errorf("category ID is required")
	}
	if b.TotalCopies < 1 {
		return fmt.Errorf("total copies must be at least 1")
	}
	return nil
}
