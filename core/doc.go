// Package core contains the pure domain model of the circulation system:
// the entities (Book, Seat, User, BookRental, SeatReservation), the closed
// status and role enumerations, the domain error taxonomy, and the
// DecisionResult type returned by the Decide functions of the feature
// packages.
//
// Nothing in this package performs I/O. All state is loaded by the feature
// command handlers and passed in; every function here is deterministic and
// side-effect free, which keeps the business rules trivially unit-testable.
package core
