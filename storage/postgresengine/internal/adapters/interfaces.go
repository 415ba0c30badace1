package adapters

import (
	"context"
	"errors"
)

// ErrTxRowCountMismatch is returned by ExecTx when the summed affected row
// count differs from the expected count. The transaction is rolled back, so
// none of the statements took effect.
var ErrTxRowCountMismatch = errors.New("transaction affected an unexpected number of rows")

// DBAdapter defines the interface for database operations needed by the
// store. ExecTx runs several statements in one transaction; a version guard
// that matched no rows shows up as a short row count, which aborts the whole
// transaction so paired mutations stay all-or-nothing.
type DBAdapter interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	ExecTx(ctx context.Context, queries []string, expectedRows int64) (int64, error)
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
