package reserveseat

import (
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

const (
	commandType = "ReserveSeat"
)

// Command represents the intent to reserve a reading-room seat for a time window.
type Command struct {
	ReservationID uuid.UUID
	UserID        uuid.UUID
	SeatID        uuid.UUID
	StartTime     core.Timestamp
	EndTime       core.Timestamp
	OccurredAt    core.Timestamp
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	reservationID uuid.UUID,
	userID uuid.UUID,
	seatID uuid.UUID,
	startTime time.Time,
	endTime time.Time,
	occurredAt time.Time,
) Command {

	return Command{
		ReservationID: reservationID,
		UserID:        userID,
		SeatID:        seatID,
		StartTime:     core.ToTimestamp(startTime),
		EndTime:       core.ToTimestamp(endTime),
		OccurredAt:    core.ToTimestamp(occurredAt),
	}
}
