package rentbook

import (
	"github.com/readhall/circulation-go/core"
)

// State is the slice of stored state this decision reads. The handler loads
// it; tests construct it directly.
type State struct {
	UserFound           bool
	User                core.User
	BookFound           bool
	Book                core.Book
	ActiveRentalCount   int
	AlreadyRentedByUser bool
}

// Decide implements the business logic to determine whether a book rental
// should be created. This is a pure function with no side effects - it takes
// the loaded state and a command and returns the decision.
//
// Business Rules:
//
//	GIVEN: A user with UserID and a book with BookID
//	WHEN: RentBook command is received
//	THEN: An Active rental is created and one copy is taken from the book
//	ERROR: "user not found" if the user does not exist or is deactivated
//	ERROR: "book not found" if the book does not exist
//	ERROR: rental limit if the user already has the maximum number of open rentals
//	ERROR: duplicate rental if the user already has this book out
//	ERROR: no copy available if every copy is checked out
func Decide(s State, _ Command) core.DecisionResult {
	if !s.UserFound || !s.User.IsActive {
		return core.ErrorDecision(core.ErrUserNotFound)
	}

	if !s.BookFound {
		return core.ErrorDecision(core.ErrBookNotFound)
	}

	if s.ActiveRentalCount >= core.MaxActiveRentalsPerUser {
		return core.ErrorDecision(core.ErrRentalLimitExceeded)
	}

	if s.AlreadyRentedByUser {
		return core.ErrorDecision(core.ErrDuplicateRental)
	}

	if !s.Book.IsAvailable() {
		return core.ErrorDecision(core.ErrNoCopyAvailable)
	}

	return core.SuccessDecision()
}
