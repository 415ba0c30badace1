package reserveseat

import (
	"github.com/readhall/circulation-go/core"
)

// State is the slice of stored state this decision reads.
type State struct {
	UserFound            bool
	User                 core.User
	SeatFound            bool
	Seat                 core.Seat
	HasActiveReservation bool
}

// Decide implements the business logic to determine whether a seat
// reservation should be created.
//
// Business Rules:
//
//	GIVEN: A user with UserID and a seat with SeatID
//	WHEN: ReserveSeat command is received
//	THEN: An Active reservation is created and the seat flips to occupied
//	ERROR: "user not found" if the user does not exist or is deactivated
//	ERROR: existing reservation if the user already holds an open reservation
//	ERROR: "seat not found" if the seat does not exist
//	ERROR: invalid window if the end time does not come after the start time
//	ERROR: seat unavailable if the seat is occupied
func Decide(s State, command Command) core.DecisionResult {
	if !s.UserFound || !s.User.IsActive {
		return core.ErrorDecision(core.ErrUserNotFound)
	}

	if s.HasActiveReservation {
		return core.ErrorDecision(core.ErrExistingReservation)
	}

	if !s.SeatFound {
		return core.ErrorDecision(core.ErrSeatNotFound)
	}

	if !command.EndTime.After(command.StartTime) {
		return core.ErrorDecision(core.ErrInvalidReservationWindow)
	}

	if !s.Seat.IsAvailable {
		return core.ErrorDecision(core.ErrSeatUnavailable)
	}

	return core.SuccessDecision()
}
