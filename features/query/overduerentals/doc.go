// Package overduerentals implements the Overdue Rentals query use case.
//
// Overdue is a derived, reporting-only view: an Active rental past its due
// date reads as Overdue and accrues a fine, but nothing is ever written
// back. There is no scheduled job flipping statuses; the projection computes
// everything from the due date and the as-of time it is handed.
package overduerentals
