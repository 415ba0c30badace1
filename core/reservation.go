package core

import (
	"github.com/google/uuid"
)

// SeatReservation is the obligation a user incurs by reserving a
// reading-room seat. Creation flips the seat to occupied; cancellation
// vacates it again.
type SeatReservation struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	SeatID          uuid.UUID
	ReservationDate Timestamp
	StartTime       Timestamp
	EndTime         Timestamp
	Status          ReservationStatus
	CreatedAt       Timestamp
	Version         uint
}
