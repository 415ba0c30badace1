package removebook

import (
	"github.com/google/uuid"
)

const (
	commandType = "RemoveBook"
)

// Command represents the intent to delete a title from the catalog.
type Command struct {
	BookID uuid.UUID
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID uuid.UUID) Command {
	return Command{
		BookID: bookID,
	}
}
