package toggleuserstatus

import (
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

const (
	commandType = "ToggleUserStatus"
)

// Command represents the intent to flip a member's active flag.
type Command struct {
	UserID     uuid.UUID
	OccurredAt core.Timestamp
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID uuid.UUID, occurredAt time.Time) Command {
	return Command{
		UserID:     userID,
		OccurredAt: core.ToTimestamp(occurredAt),
	}
}
