package returnbook

import (
	"github.com/readhall/circulation-go/core"
)

// State is the slice of stored state this decision reads.
type State struct {
	RentalFound bool
	Rental      core.BookRental
	BookFound   bool
	Book        core.Book
}

// Decide implements the business logic to determine whether a rental should
// be closed.
//
// Business Rules:
//
//	GIVEN: A user with an Active rental for the book
//	WHEN: ReturnBook command is received
//	THEN: The rental is closed Returned and one copy goes back to the book
//	ERROR: "active rental not found" if the user has no open rental for this book
//	ERROR: "book not found" if the book row disappeared underneath the rental
//	ERROR: over-return if the increment would exceed total copies
func Decide(s State, _ Command) core.DecisionResult {
	if !s.RentalFound {
		return core.ErrorDecision(core.ErrRentalNotFound)
	}

	if !s.BookFound {
		return core.ErrorDecision(core.ErrBookNotFound)
	}

	// The lifecycle never increments without a prior decrement, so this
	// guards against data corruption, not against users.
	if s.Book.AvailableCopies >= s.Book.TotalCopies {
		return core.ErrorDecision(core.ErrOverReturn)
	}

	return core.SuccessDecision()
}
