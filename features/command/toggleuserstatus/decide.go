package toggleuserstatus

import (
	"github.com/readhall/circulation-go/core"
)

// State is the slice of stored state this decision reads. The handler loads
// it; tests construct it directly.
type State struct {
	UserFound bool
	User      core.User
}

// Decide implements the business logic to determine whether a member's
// active flag can be flipped. This is a pure function with no side effects -
// it takes the loaded state and a command and returns the decision.
//
// Business Rules:
//
//	GIVEN: An admin principal and a user with UserID
//	WHEN: ToggleUserStatus command is received
//	THEN: The user's active flag is inverted
//	ERROR: "user not found" if the user does not exist
//	ERROR: admin protected if the target is an admin account
func Decide(s State, _ Command) core.DecisionResult {
	if !s.UserFound {
		return core.ErrorDecision(core.ErrUserNotFound)
	}

	if s.User.Role.IsProtected() {
		return core.ErrorDecision(core.ErrAdminProtected)
	}

	return core.SuccessDecision()
}
