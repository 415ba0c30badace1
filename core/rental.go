package core

import (
	"time"

	"github.com/google/uuid"
)

const (
	// MaxActiveRentalsPerUser is the hard limit on simultaneously open
	// rentals for one user.
	MaxActiveRentalsPerUser = 3

	// LoanPeriod is the fixed loan period: the due date is always the
	// rental date plus this duration.
	LoanPeriod = 14 * 24 * time.Hour

	// OverdueFineCentsPerDay is the reported fine for each full day past
	// the due date. Fine collection itself is out of scope; the amount is
	// only computed for reporting and stored on returned rentals.
	OverdueFineCentsPerDay = 50
)

// BookRental is the obligation a user incurs by checking out a book copy.
// It is created atomically with a decrement of the book's available copies
// and closed atomically with the matching increment.
type BookRental struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	BookID     uuid.UUID
	RentalDate Timestamp
	DueDate    Timestamp
	ReturnDate *time.Time
	Status     RentalStatus
	FineCents  int64
	Notes      string
	Version    uint
}

// IsOverdueAt reports whether the rental is open and past due at the given
// time. Overdue is derived at query time; no scheduled job flips statuses.
func (r BookRental) IsOverdueAt(asOf time.Time) bool {
	return r.Status == RentalActive && asOf.After(r.DueDate)
}

// OverdueFineAt computes the reported fine in cents accrued at the given
// time. Rentals returned on time and open rentals within the loan period
// accrue nothing.
func (r BookRental) OverdueFineAt(asOf time.Time) int64 {
	if !r.IsOverdueAt(asOf) {
		return 0
	}

	daysLate := int64(asOf.Sub(r.DueDate) / (24 * time.Hour))
	if daysLate < 1 {
		daysLate = 1
	}

	return daysLate * OverdueFineCentsPerDay
}

// ReportedStatus returns the status as it should be reported at the given
// time: Active rentals past due read as Overdue without being rewritten.
func (r BookRental) ReportedStatus(asOf time.Time) RentalStatus {
	if r.IsOverdueAt(asOf) {
		return RentalOverdue
	}

	return r.Status
}
