// Package removebook implements the Remove Book use case.
//
// A title can only leave the catalog when no copy is out. The delete is
// guarded by the book version, so a rental racing the removal makes the
// delete miss and the decision re-runs against the new state, where the
// active rental now blocks it.
package removebook
