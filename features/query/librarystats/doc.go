// Package librarystats implements the Library Stats query use case.
//
// The result is a dashboard summary: total books, seats and users plus the
// number of open rentals and reservations. All five counts come back from a
// single round trip so the snapshot is internally consistent.
package librarystats
