// Package updatebook implements the Update Book use case.
//
// Checked-out copies put a floor under the total: the new total may never
// drop below the number of copies currently out, and the new available count
// is derived as total minus rented so the inventory invariant survives the
// edit. The write is guarded by the book version captured with the snapshot,
// so a rental racing the edit rolls the update back for a retry against
// fresh counts.
package updatebook
