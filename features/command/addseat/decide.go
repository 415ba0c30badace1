package addseat

import (
	"github.com/readhall/circulation-go/core"
)

// Decide implements the business logic to determine whether a new seat can
// be added. This is a pure function with no side effects - the insert cannot
// conflict with stored state, so the decision only validates the command
// itself.
//
// Business Rules:
//
//	GIVEN: An admin principal
//	WHEN: AddSeat command is received
//	THEN: A vacant seat is created
//	ERROR: invalid seat data if the seat number is empty
func Decide(command Command) core.DecisionResult {
	if command.SeatNumber == "" {
		return core.ErrorDecision(core.ErrInvalidSeatData)
	}

	return core.SuccessDecision()
}
