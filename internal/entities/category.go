package entities

import "fmt"

// Category represents a catalog classification. Category names are unique
// across the library.
type Category struct {
	ID   int64
	Name string
}

// Validate checks if the category is valid
func (c *Category) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("category name is required")
	}
	return nil
}
