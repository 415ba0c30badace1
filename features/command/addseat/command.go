package addseat

import (
	"github.com/google/uuid"
)

const (
	commandType = "AddSeat"
)

// Command represents the intent to add a reading-room seat.
type Command struct {
	SeatID     uuid.UUID
	SeatNumber string
	Floor      int
	Section    string
	Type       string
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(seatID uuid.UUID, seatNumber string, floor int, section string, seatType string) Command {
	return Command{
		SeatID:     seatID,
		SeatNumber: seatNumber,
		Floor:      floor,
		Section:    section,
		Type:       seatType,
	}
}
