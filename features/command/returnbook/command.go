package returnbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to return a rented book.
type Command struct {
	UserID     uuid.UUID
	BookID     uuid.UUID
	OccurredAt core.Timestamp
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID uuid.UUID, bookID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		UserID:     userID,
		BookID:     bookID,
		OccurredAt: core.ToTimestamp(occurredAt),
	}
}
