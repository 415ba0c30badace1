package rentbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

const (
	commandType = "RentBook"
)

// Command represents the intent to rent a book.
// It encapsulates all the necessary information required to execute the rent book use case.
type Command struct {
	RentalID   uuid.UUID
	UserID     uuid.UUID
	BookID     uuid.UUID
	OccurredAt core.Timestamp
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(rentalID uuid.UUID, userID uuid.UUID, bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		RentalID:   rentalID,
		UserID:     userID,
		BookID:     bookID,
		OccurredAt: core.ToTimestamp(occurredAt),
	}
}
