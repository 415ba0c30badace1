package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a rejected operation so the transport layer can map
// it to a status code without inspecting individual sentinel errors.
type ErrorKind uint8

const (
	// KindUnknown covers everything that is not a domain rejection,
	// typically a persistence failure surfaced as a generic error.
	KindUnknown ErrorKind = iota

	// KindNotFound means a referenced entity does not exist.
	KindNotFound

	// KindUnauthorized means the capability check failed.
	KindUnauthorized

	// KindRuleViolation means a business rule rejected the operation.
	KindRuleViolation

	// KindConflict means open obligations block a structural deletion.
	KindConflict
)

// DomainError is a sentinel error carrying its taxonomy kind and a
// human-readable message. Domain rejections are expected outcomes: they are
// returned to the caller and never logged as faults.
type DomainError struct {
	kind ErrorKind
	msg  string
}

// Error returns the human-readable message.
func (e *DomainError) Error() string {
	return e.msg
}

// Kind returns the taxonomy classification of the error.
func (e *DomainError) Kind() ErrorKind {
	return e.kind
}

var (
	// ErrUserNotFound is returned when the referenced user does not exist
	// or is inactive.
	ErrUserNotFound = &DomainError{KindNotFound, "user not found"}

	// ErrBookNotFound is returned when the referenced book does not exist.
	ErrBookNotFound = &DomainError{KindNotFound, "book not found"}

	// ErrSeatNotFound is returned when the referenced seat does not exist.
	ErrSeatNotFound = &DomainError{KindNotFound, "seat not found"}

	// ErrRentalNotFound is returned when no Active rental exists with the
	// given identifier. Returning an already-returned rental is rejected
	// with this error, not silently accepted.
	ErrRentalNotFound = &DomainError{KindNotFound, "active rental not found"}

	// ErrReservationNotFound is returned when the referenced reservation
	// does not exist.
	ErrReservationNotFound = &DomainError{KindNotFound, "reservation not found"}

	// ErrUnauthorized is returned by the admin gate before any protected
	// read or mutation happens.
	ErrUnauthorized = &DomainError{KindUnauthorized, "operation requires an admin session"}

	// ErrRentalLimitExceeded is returned when a user already holds the
	// maximum number of active rentals.
	ErrRentalLimitExceeded = &DomainError{KindRuleViolation,
		fmt.Sprintf("rental limit reached: at most %d books can be rented at once, return one first", MaxActiveRentalsPerUser)}

	// ErrDuplicateRental is returned when the user already has an Active
	// rental for the same book.
	ErrDuplicateRental = &DomainError{KindRuleViolation, "this book is already rented by the user, return it first"}

	// ErrNoCopyAvailable is returned when every copy of the book is
	// checked out.
	ErrNoCopyAvailable = &DomainError{KindRuleViolation, "no copy of this book is currently available"}

	// ErrExistingReservation is returned when the user already holds an
	// Active seat reservation anywhere in the building.
	ErrExistingReservation = &DomainError{KindRuleViolation, "user already holds an active reservation, cancel it first"}

	// ErrSeatUnavailable is returned when the seat is occupied.
	ErrSeatUnavailable = &DomainError{KindRuleViolation, "this seat is currently not available"}

	// ErrAdminProtected is returned when an administrative mutation targets
	// an Admin user.
	ErrAdminProtected = &DomainError{KindRuleViolation, "admin users cannot be modified or deleted"}

	// ErrEmailTaken is returned when registering a user with an email that
	// is already in use.
	ErrEmailTaken = &DomainError{KindRuleViolation, "email is already registered"}

	// ErrOverReturn is returned when an increment would push available
	// copies past total copies. The lifecycle never calls increment without
	// a matching prior decrement, so this guards against bugs, not users.
	ErrOverReturn = &DomainError{KindRuleViolation, "available copies would exceed total copies"}

	// ErrBelowRentedFloor is the sentinel matched by errors.Is for copy
	// count updates below the number of checked-out copies. Use
	// BelowRentedFloor to build the error with the computed floor.
	ErrBelowRentedFloor = &DomainError{KindRuleViolation, "total copies below the number of rented copies"}

	// ErrOpenObligations blocks user deletion while an Active rental or
	// reservation references the user.
	ErrOpenObligations = &DomainError{KindConflict, "user has an active rental or reservation, close those first"}

	// ErrBookHasActiveRentals blocks book deletion while an Active rental
	// references the book.
	ErrBookHasActiveRentals = &DomainError{KindConflict, "book has active rentals, close those first"}

	// ErrInvalidBookData rejects catalog entries without the required fields.
	ErrInvalidBookData = &DomainError{KindRuleViolation, "title and author are required"}

	// ErrInvalidCopyCount rejects catalog entries without at least one copy.
	ErrInvalidCopyCount = &DomainError{KindRuleViolation, "total copies must be at least 1"}

	// ErrInvalidSeatData rejects seats without a seat number.
	ErrInvalidSeatData = &DomainError{KindRuleViolation, "seat number is required"}

	// ErrInvalidReservationWindow rejects reservations whose end does not
	// come after their start.
	ErrInvalidReservationWindow = &DomainError{KindRuleViolation, "reservation end time must be after start time"}

	// ErrInvalidRegistration rejects registrations without email or password.
	ErrInvalidRegistration = &DomainError{KindRuleViolation, "email and password are required"}

	// ErrInvalidCredentials is returned on login with an unknown email or a
	// wrong password. The message deliberately does not say which.
	ErrInvalidCredentials = &DomainError{KindUnauthorized, "invalid email or password"}

	// ErrAccountDisabled is returned on login for a deactivated account.
	ErrAccountDisabled = &DomainError{KindUnauthorized, "account is disabled"}
)

// belowRentedFloorError carries the computed floor so the message can tell
// the administrator the minimum acceptable total.
type belowRentedFloorError struct {
	rented int
}

func (e *belowRentedFloorError) Error() string {
	return fmt.Sprintf("total copies must be at least %d: %d copies are currently rented", e.rented, e.rented)
}

// Kind returns the taxonomy classification of the error.
func (e *belowRentedFloorError) Kind() ErrorKind {
	return KindRuleViolation
}

// Is makes the error match the ErrBelowRentedFloor sentinel.
func (e *belowRentedFloorError) Is(target error) bool {
	return target == ErrBelowRentedFloor
}

// BelowRentedFloor builds the rejection for a total-copies update below the
// number of currently checked-out copies.
func BelowRentedFloor(rented int) error {
	return &belowRentedFloorError{rented: rented}
}

// kinder is implemented by every error that knows its taxonomy kind.
type kinder interface {
	Kind() ErrorKind
}

// KindOf walks the error chain and returns the taxonomy kind of the first
// classified error, or KindUnknown for unexpected (persistence) failures.
func KindOf(err error) ErrorKind {
	var k kinder
	if errors.As(err, &k) {
		return k.Kind()
	}

	return KindUnknown
}
