package overduerentals

import (
	"github.com/readhall/circulation-go/core"
)

// Project implements the query logic to derive the overdue view from a list
// of candidate rentals. This is a pure function with no side effects - it
// takes the loaded rentals and the query and returns the projected result.
//
// Query Logic:
//
//	GIVEN: All Active rentals due before the as-of time
//	WHEN: OverdueRentals query is executed
//	THEN: Each rental is reported with its days late and accrued fine
//	EXCLUDES: Rentals that are not overdue at the as-of time
//	DETAILS: Status reads as Overdue; the stored row stays Active
func Project(rentals []core.BookRental, query Query) OverdueRentals {
	infos := make([]OverdueRentalInfo, 0, len(rentals))

	for _, rental := range rentals {
		if !rental.IsOverdueAt(query.AsOf) {
			continue
		}

		fine := rental.OverdueFineAt(query.AsOf)

		infos = append(infos, OverdueRentalInfo{
			RentalID:   rental.ID,
			UserID:     rental.UserID,
			BookID:     rental.BookID,
			RentalDate: rental.RentalDate,
			DueDate:    rental.DueDate,
			DaysLate:   fine / core.OverdueFineCentsPerDay,
			FineCents:  fine,
			Status:     rental.ReportedStatus(query.AsOf),
		})
	}

	return OverdueRentals{
		Rentals: infos,
		Count:   len(infos),
		AsOf:    query.AsOf,
	}
}
