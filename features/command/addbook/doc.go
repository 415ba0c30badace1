// Package addbook implements the Add Book use case.
//
// Adding a title is an administrative operation: the caller's principal is
// checked before anything else. A new book starts with every copy available
// and version 1; no state snapshot is needed because the insert cannot
// conflict with anything.
//
// Business rules: title and author are required, and the catalog entry must
// carry at least one copy.
package addbook
