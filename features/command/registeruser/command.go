package registeruser

import (
	"time"

	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

const (
	commandType = "RegisterUser"
)

// Command represents the intent to create a member account. Password is the
// clear text credential; it is hashed inside the handler and never stored.
type Command struct {
	UserID      uuid.UUID
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	OccurredAt  core.Timestamp
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(
	userID uuid.UUID,
	email string,
	password string,
	firstName string,
	lastName string,
	phoneNumber string,
	occurredAt time.Time,
) Command {
	return Command{
		UserID:      userID,
		Email:       email,
		Password:    password,
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phoneNumber,
		OccurredAt:  core.ToTimestamp(occurredAt),
	}
}
