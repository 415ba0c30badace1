package cancelreservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

const (
	commandType = "CancelReservation"
)

// Command represents the intent to cancel a seat reservation.
type Command struct {
	UserID        uuid.UUID
	ReservationID uuid.UUID
	OccurredAt    core.Timestamp
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID uuid.UUID, reservationID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		UserID:        userID,
		ReservationID: reservationID,
		OccurredAt:    core.ToTimestamp(occurredAt),
	}
}
