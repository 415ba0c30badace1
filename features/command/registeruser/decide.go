package registeruser

import (
	"github.com/readhall/circulation-go/core"
)

// State is the slice of stored state this decision reads. The handler loads
// it; tests construct it directly.
type State struct {
	EmailTaken bool
}

// Decide implements the business logic to determine whether a member account
// should be created. This is a pure function with no side effects - it takes
// the loaded state and a command and returns the decision.
//
// Business Rules:
//
//	GIVEN: No existing user with the requested email
//	WHEN: RegisterUser command is received
//	THEN: An active member account with the User role is created
//	ERROR: invalid registration if email or password is empty
//	ERROR: email taken if the address is already registered
func Decide(s State, command Command) core.DecisionResult {
	if command.Email == "" || command.Password == "" {
		return core.ErrorDecision(core.ErrInvalidRegistration)
	}

	if s.EmailTaken {
		return core.ErrorDecision(core.ErrEmailTaken)
	}

	return core.SuccessDecision()
}
