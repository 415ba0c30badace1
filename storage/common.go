package storage

import "errors"

var (
	// ErrNotFound is returned by point lookups when no row matches.
	ErrNotFound = errors.New("record not found")

	// ErrConcurrencyConflict is returned when a version-guarded mutation
	// affected fewer rows than expected: another writer got there first.
	// This is the only retryable storage error.
	ErrConcurrencyConflict = errors.New("concurrency conflict, a guarded mutation affected no rows")

	// ErrNilDatabaseConnection is returned by the engine constructors when
	// no database handle is supplied.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrBuildingQueryFailed wraps SQL builder failures.
	ErrBuildingQueryFailed = errors.New("building sql query failed")

	// ErrQueryFailed wraps database read failures.
	ErrQueryFailed = errors.New("database query failed")

	// ErrExecFailed wraps database write failures.
	ErrExecFailed = errors.New("database execution failed")

	// ErrScanningRowFailed wraps row scan failures.
	ErrScanningRowFailed = errors.New("scanning database row failed")

	// ErrGettingRowsAffectedFailed wraps failures reading the affected row
	// count of a mutation.
	ErrGettingRowsAffectedFailed = errors.New("getting rows affected count failed")
)

// Counts is the dashboard summary of the library's state.
type Counts struct {
	Books              int
	Seats              int
	Users              int
	ActiveRentals      int
	ActiveReservations int
}
