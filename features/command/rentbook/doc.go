// Package rentbook implements the Rent Book use case.
//
// Renting pairs two effects that must land together: a new Active rental row
// and the decrement of the book's available copies. The decision runs
// against a loaded state snapshot; the paired write is guarded by the book
// and user versions that snapshot carried, so a concurrent rental of the
// last copy or a concurrent fourth rental by the same user rolls back and is
// retried against fresh state.
//
// Business rules: the user must exist and be active, the book must exist
// with a free copy, the user must not already have this book out, and the
// user must be under the rental limit.
package rentbook
