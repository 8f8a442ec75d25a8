package entities

import (
	"fmt"
	"time"
)

// Member represents a registered library member. Emails are unique across
// all members.
type Member struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
	JoinedAt  time.Time
}

// FullName returns the member's display name.
func (m *Member) FullName() string {
	return fmt.Sprintf("%s %s", m.FirstName, m.LastName)
}

// Validate checks if the member is valid
func (m *Member) Validate() error {
	if m.FirstName == "" {
		return fmt.Errorf("first name is required")
	}
	if m.LastName == "" {
		return fmt.Errorf("last name is required")
	}
	if m.Email == "" {
		return fmt.Errorf("email is required")
	}
	if m.JoinedAt.IsZero() {
		return fmt.Errorf("join date is required")
	}
	return nil
}
