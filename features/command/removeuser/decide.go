package removeuser

import (
	"github.com/readhall/circulation-go/core"
)

// State is the slice of stored state this decision reads. The handler loads
// it; tests construct it directly.
type State struct {
	UserFound            bool
	User                 core.User
	ActiveRentalCount    int
	HasActiveReservation bool
}

// Decide implements the business logic to determine whether a member account
// can be deleted. This is a pure function with no side effects - it takes
// the loaded state and a command and returns the decision.
//
// Business Rules:
//
//	GIVEN: An admin principal and a user with UserID
//	WHEN: RemoveUser command is received
//	THEN: The user row is deleted
//	ERROR: "user not found" if the user does not exist
//	ERROR: admin protected if the target is an admin account
//	ERROR: open obligations if an active rental or reservation remains
func Decide(s State, _ Command) core.DecisionResult {
	if !s.UserFound {
		return core.ErrorDecision(core.ErrUserNotFound)
	}

	if s.User.Role.IsProtected() {
		return core.ErrorDecision(core.ErrAdminProtected)
	}

	if s.ActiveRentalCount > 0 || s.HasActiveReservation {
		return core.ErrorDecision(core.ErrOpenObligations)
	}

	return core.SuccessDecision()
}
