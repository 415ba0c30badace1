package overduerentals

import (
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

// OverdueRentalInfo describes one overdue rental together with its derived
// reporting fields.
type OverdueRentalInfo struct {
	RentalID   uuid.UUID
	UserID     uuid.UUID
	BookID     uuid.UUID
	RentalDate time.Time
	DueDate    time.Time
	DaysLate   int64
	FineCents  int64
	Status     core.RentalStatus
}

// OverdueRentals represents the query result containing all overdue rentals
// at the requested point in time.
type OverdueRentals struct {
	Rentals []OverdueRentalInfo
	Count   int
	AsOf    time.Time
}
