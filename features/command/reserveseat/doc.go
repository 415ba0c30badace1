// Package reserveseat implements the Reserve Seat use case.
//
// A user holds at most one open reservation anywhere in the building, and a
// seat holds at most one open reservation. Creation pairs the new
// reservation row with flipping the seat to occupied in one guarded
// transaction, so two users racing for the last seat cannot both win.
package reserveseat
