package removebook

import (
	"github.com/readhall/circulation-go/core"
)

// State is the slice of stored state this decision reads. The handler loads
// it; tests construct it directly.
type State struct {
	BookFound        bool
	Book             core.Book
	HasActiveRentals bool
}

// Decide implements the business logic to determine whether a title can be
// deleted. This is a pure function with no side effects - it takes the
// loaded state and a command and returns the decision.
//
// Business Rules:
//
//	GIVEN: An admin principal and a book with BookID
//	WHEN: RemoveBook command is received
//	THEN: The book row is deleted
//	ERROR: "book not found" if the book does not exist
//	ERROR: active rentals conflict if any copy is still checked out
func Decide(s State, _ Command) core.DecisionResult {
	if !s.BookFound {
		return core.ErrorDecision(core.ErrBookNotFound)
	}

	if s.HasActiveRentals {
		return core.ErrorDecision(core.ErrBookHasActiveRentals)
	}

	return core.SuccessDecision()
}
