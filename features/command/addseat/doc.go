// Package addseat implements the Add Seat use case.
//
// Adding a seat is an administrative operation. A new seat starts vacant and
// at version 1; no state snapshot is needed because the insert cannot
// conflict with anything.
package addseat
