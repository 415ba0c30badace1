package cancelreservation

import (
	"github.com/readhall/circulation-go/core"
)

// State is the slice of stored state this decision reads. Seat fields are
// only populated when the reservation is Active, the only case where the
// seat gets vacated.
type State struct {
	ReservationFound bool
	Reservation      core.SeatReservation
	SeatFound        bool
	Seat             core.Seat
}

// Decide implements the business logic to determine whether a reservation
// should be cancelled.
//
// Business Rules:
//
//	GIVEN: A reservation owned by the calling user
//	WHEN: CancelReservation command is received
//	THEN: The reservation becomes Cancelled; an Active one also vacates its seat
//	ERROR: "reservation not found" if it does not exist or belongs to someone else
//	ERROR: "seat not found" if an Active reservation references a missing seat
//	IDEMPOTENCY: An already-Cancelled reservation is a no-op
func Decide(s State, command Command) core.DecisionResult {
	if !s.ReservationFound || s.Reservation.UserID != command.UserID {
		return core.ErrorDecision(core.ErrReservationNotFound)
	}

	if s.Reservation.Status == core.ReservationCancelled {
		return core.IdempotentDecision()
	}

	if s.Reservation.Status == core.ReservationActive && !s.SeatFound {
		return core.ErrorDecision(core.ErrSeatNotFound)
	}

	return core.SuccessDecision()
}
