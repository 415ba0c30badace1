package core

import (
	"time"

	"github.com/google/uuid"
)

// User is a library member or administrator. Credentials are stored as a
// salted argon2id hash, never in clear text.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	PasswordSalt string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Role         Role
	IsActive     bool
	CreatedAt    Timestamp
	UpdatedAt    *time.Time
	Version      uint
}

// FullName returns the display name of the user.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
