package cancelreservation_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/cancelreservation"
)

func Test_Decide_Success_WhenReservationIsActive(t *testing.T) {
	// arrange
	userID := uuid.New()
	seatID := uuid.New()

	state := cancelreservation.State{
		ReservationFound: true,
		Reservation:      givenReservation(userID, seatID, core.ReservationActive),
		SeatFound:        true,
		Seat:             givenOccupiedSeat(seatID),
	}

	command := cancelreservation.BuildCommand(userID, state.Reservation.ID, time.Now())

	// act
	result := cancelreservation.Decide(state, command)

	// assert
	assertSuccessDecision(t, result)
}

func Test_Decide_Success_WhenReservationIsCompleted(t *testing.T) {
	// arrange - cancelling a completed reservation only rewrites the status,
	// the seat was already released when the visit ended
	userID := uuid.New()
	seatID := uuid.New()

	state := cancelreservation.State{
		ReservationFound: true,
		Reservation:      givenReservation(userID, seatID, core.ReservationCompleted),
	}

	command := cancelreservation.BuildCommand(userID, state.Reservation.ID, time.Now())

	// act
	result := cancelreservation.Decide(state, command)

	// assert
	assertSuccessDecision(t, result)
}

func Test_Decide_Idempotent_WhenReservationAlreadyCancelled(t *testing.T) {
	// arrange
	userID := uuid.New()
	seatID := uuid.New()

	state := cancelreservation.State{
		ReservationFound: true,
		Reservation:      givenReservation(userID, seatID, core.ReservationCancelled),
	}

	command := cancelreservation.BuildCommand(userID, state.Reservation.ID, time.Now())

	// act
	result := cancelreservation.Decide(state, command)

	// assert
	assertIdempotentDecision(t, result)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	userID := uuid.New()
	otherUserID := uuid.New()
	seatID := uuid.New()

	testCases := []struct {
		name        string
		state       cancelreservation.State
		callerID    uuid.UUID
		expectedErr error
	}{
		{
			name:        "reservation does not exist",
			state:       cancelreservation.State{},
			callerID:    userID,
			expectedErr: core.ErrReservationNotFound,
		},
		{
			name: "reservation belongs to someone else",
			state: cancelreservation.State{
				ReservationFound: true,
				Reservation:      givenReservation(otherUserID, seatID, core.ReservationActive),
				SeatFound:        true,
				Seat:             givenOccupiedSeat(seatID),
			},
			callerID:    userID,
			expectedErr: core.ErrReservationNotFound,
		},
		{
			name: "active reservation references a missing seat",
			state: cancelreservation.State{
				ReservationFound: true,
				Reservation:      givenReservation(userID, seatID, core.ReservationActive),
			},
			callerID:    userID,
			expectedErr: core.ErrSeatNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := cancelreservation.BuildCommand(tc.callerID, tc.state.Reservation.ID, time.Now())

			// act
			result := cancelreservation.Decide(tc.state, command)

			// assert
			assertErrorDecision(t, result, tc.expectedErr)
		})
	}
}

/*** Test helpers ***/

func givenReservation(userID, seatID uuid.UUID, status core.ReservationStatus) core.SeatReservation {
	now := core.ToTimestamp(time.Now())

	return core.SeatReservation{
		ID:              uuid.New(),
		UserID:          userID,
		SeatID:          seatID,
		ReservationDate: now,
		StartTime:       now,
		EndTime:         now.Add(2 * time.Hour),
		Status:          status,
		CreatedAt:       now,
		Version:         1,
	}
}

func givenOccupiedSeat(seatID uuid.UUID) core.Seat {
	return core.Seat{
		ID:          seatID,
		SeatNumber:  "B-07",
		Floor:       1,
		Section:     "Reading Hall",
		Type:        "Standard",
		IsAvailable: false,
		Version:     2,
	}
}

func assertSuccessDecision(t *testing.T, result core.DecisionResult) {
	t.Helper()

	assert.True(t, result.ShouldApply(), "expected the decision to apply")
	assert.NoError(t, result.HasError())
	assert.False(t, result.IsIdempotent())
}

func assertIdempotentDecision(t *testing.T, result core.DecisionResult) {
	t.Helper()

	assert.True(t, result.IsIdempotent(), "expected an idempotent decision")
	assert.False(t, result.ShouldApply())
	assert.NoError(t, result.HasError())
}

func assertErrorDecision(t *testing.T, result core.DecisionResult, expectedErr error) {
	t.Helper()

	assert.False(t, result.ShouldApply(), "expected the decision to be rejected")
	assert.ErrorIs(t, result.HasError(), expectedErr)
}
