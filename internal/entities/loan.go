package entities

import (
	"fmt"
	"time"
)

// LoanStatus is the circulation state of a loan.
// The database backs this with a CHECK constraint on the loans table.
type LoanStatus string

const (
	LoanStatusBorrowed LoanStatus = "borrowed"
	LoanStatusReturned LoanStatus = "returned"
	LoanStatusOverdue  LoanStatus = "overdue"
)

// IsValid reports whether the status is one of the enumerated values.
func (s LoanStatus) IsValid() bool {
	switch s {
	case LoanStatusBorrowed, LoanStatusReturned, LoanStatusOverdue:
		return true
	}
	return false
}

// String returns the status as stored in the database.
func (s LoanStatus) String() string {
	return string(s)
}

// Loan represents a single lending of a book copy to a member.
// ReturnDate is nil while the book is out.
type Loan struct {
	ID         int64
	BookID     int64
	MemberID   int64
	LoanDate   time.Time
	DueDate    time.Time
	ReturnDate *time.Time
	Status     LoanStatus
}

// Validate checks if the loan is valid
func (l *Loan) Validate() error {
	if l.BookID == 0 {
		return fmt.Errorf("book ID is required")
	}
	if l.MemberID == 0 {
		return fmt.Errorf("member ID is required")
	}
	if l.LoanDate.IsZero() {
		return fmt.Errorf("loan date is required")
	}
	if l.DueDate.IsZero() {
		return fmt.Errorf("due date is required")
	}
	if l.DueDate.Before(l.LoanDate) {
		return fmt.Errorf("due date must not be before loan date")
	}
	if !l.Status.IsValid() {
		return fmt.Errorf("invalid loan status: %q", l.Status)
	}
	return nil
}
