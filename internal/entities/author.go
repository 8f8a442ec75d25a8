package entities

import "fmt"

// Author represents a person who wrote one or more books in the catalog.
// Authors are linked to books through the book_authors join table.
type Author struct {
	ID        int64
	FirstName string
	LastName  string
}

// FullName returns the author's display name.
func (a *Author) FullName() string {
	return fmt.Sprintf("%s %s", a.FirstName, a.LastName)
}

// Validate checks if the author is valid
func (a *Author) Validate() error {
	if a.FirstName == "" {
		return fmt.Errorf("first name is required")
	}
	if a.LastName == "" {
		return fmt.Errorf("last name is required")
	}
	return nil
}
