package updatebook

import (
	"github.com/readhall/circulation-go/core"
)

// State is the slice of stored state this decision reads. The handler loads
// it; tests construct it directly.
type State struct {
	BookFound bool
	Book      core.Book
}

// Decide implements the business logic to determine whether a catalog edit
// should be applied. This is a pure function with no side effects - it takes
// the loaded state and a command and returns the decision.
//
// Business Rules:
//
//	GIVEN: An admin principal and a book with BookID
//	WHEN: UpdateBook command is received
//	THEN: The descriptive fields are replaced and available copies are
//	      recomputed as the new total minus the copies currently out
//	ERROR: "book not found" if the book does not exist
//	ERROR: invalid book data if title or author is empty
//	ERROR: invalid copy count if total copies is below 1
//	ERROR: below rented floor if the new total is less than the copies out
func Decide(s State, command Command) core.DecisionResult {
	if !s.BookFound {
		return core.ErrorDecision(core.ErrBookNotFound)
	}

	if command.Title == "" || command.Author == "" {
		return core.ErrorDecision(core.ErrInvalidBookData)
	}

	if command.TotalCopies < 1 {
		return core.ErrorDecision(core.ErrInvalidCopyCount)
	}

	if rented := s.Book.RentedCopies(); command.TotalCopies < rented {
		return core.ErrorDecision(core.BelowRentedFloor(rented))
	}

	return core.SuccessDecision()
}
