package core

import "fmt"

// RentalStatus is the closed set of book rental states.
type RentalStatus uint8

const (
	// RentalActive marks an open rental: the copy is checked out.
	RentalActive RentalStatus = iota

	// RentalReturned is the single terminal rental state.
	RentalReturned

	// RentalOverdue is a derived, reporting-only state: an Active rental
	// whose due date has passed. It is never written to storage; overdue
	// detection is a query, not a scheduled transition.
	RentalOverdue
)

const (
	rentalActiveString   = "Active"
	rentalReturnedString = "Returned"
	rentalOverdueString  = "Overdue"
)

// String returns the stored representation of the status.
func (s RentalStatus) String() string {
	switch s {
	case RentalReturned:
		return rentalReturnedString
	case RentalOverdue:
		return rentalOverdueString
	default:
		return rentalActiveString
	}
}

// IsOpen reports whether the rental still counts as an outstanding
// obligation. Overdue rentals are still open: the copy is out.
func (s RentalStatus) IsOpen() bool {
	return s != RentalReturned
}

// ParseRentalStatus converts a stored status string back into a RentalStatus.
func ParseRentalStatus(str string) (RentalStatus, error) {
	switch str {
	case rentalActiveString:
		return RentalActive, nil
	case rentalReturnedString:
		return RentalReturned, nil
	case rentalOverdueString:
		return RentalOverdue, nil
	default:
		return RentalActive, fmt.Errorf("unknown rental status: %q", str)
	}
}

// ReservationStatus is the closed set of seat reservation states.
type ReservationStatus uint8

const (
	// ReservationActive marks an open reservation: the seat is occupied.
	ReservationActive ReservationStatus = iota

	// ReservationCompleted is a terminal state: the visit took place.
	ReservationCompleted

	// ReservationCancelled is a terminal state: the user gave the seat up.
	ReservationCancelled
)

const (
	reservationActiveString    = "Active"
	reservationCompletedString = "Completed"
	reservationCancelledString = "Cancelled"
)

// String returns the stored representation of the status.
func (s ReservationStatus) String() string {
	switch s {
	case ReservationCompleted:
		return reservationCompletedString
	case ReservationCancelled:
		return reservationCancelledString
	default:
		return reservationActiveString
	}
}

// IsOpen reports whether the reservation still counts as an outstanding
// obligation against the seat.
func (s ReservationStatus) IsOpen() bool {
	return s == ReservationActive
}

// ParseReservationStatus converts a stored status string back into a
// ReservationStatus.
func ParseReservationStatus(str string) (ReservationStatus, error) {
	switch str {
	case reservationActiveString:
		return ReservationActive, nil
	case reservationCompletedString:
		return ReservationCompleted, nil
	case reservationCancelledString:
		return ReservationCancelled, nil
	default:
		return ReservationActive, fmt.Errorf("unknown reservation status: %q", str)
	}
}
