package core

import "github.com/google/uuid"

// Seat is a reading-room seat. Unlike books, a seat has no copy count:
// IsAvailable is a plain occupancy flag, flipped exclusively by reservation
// create and cancel.
type Seat struct {
	ID          uuid.UUID
	SeatNumber  string
	Floor       int
	Section     string
	Type        string
	IsAvailable bool
	Version     uint
}
