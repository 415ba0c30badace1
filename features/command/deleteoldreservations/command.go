package deleteoldreservations

import (
	"github.com/google/uuid"
)

const (
	commandType = "DeleteOldReservations"
)

// Command represents the intent to erase a user's finished reservations.
type Command struct {
	UserID uuid.UUID
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(userID uuid.UUID) Command {
	return Command{
		UserID: userID,
	}
}
