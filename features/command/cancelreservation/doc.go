// Package cancelreservation implements the Cancel Reservation use case.
//
// Cancelling an Active reservation vacates its seat in the same guarded
// transaction. Cancelling a Completed reservation only rewrites the status:
// the seat was already released when the visit ended, so vacating again
// could free a seat someone else now holds. Cancelling an already-Cancelled
// reservation is an idempotent no-op.
package cancelreservation
