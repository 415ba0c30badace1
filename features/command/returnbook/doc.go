// Package returnbook implements the Return Book use case.
//
// Returning closes the Active rental and puts the copy back into the book's
// available count in one guarded transaction. An overdue return also stamps
// the reported fine onto the closed rental. Returning a book the user does
// not have out is rejected, not silently accepted.
package returnbook
