package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXAdapter implements DBAdapter for sqlx.DB.
type SQLXAdapter struct {
	db *sqlx.DB
}

// NewSQLXAdapter creates a new SQLX adapter.
func NewSQLXAdapter(db *sqlx.DB) *SQLXAdapter {
	return &SQLXAdapter{db: db}
}

// Query executes a query using the sqlx.DB and returns wrapped rows.
func (s *SQLXAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

// Exec executes a statement using the sqlx.DB and returns wrapped result.
func (s *SQLXAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

// ExecTx executes all statements in one transaction and returns the summed
// affected row count. A count short of expectedRows or any error rolls the
// transaction back.
func (s *SQLXAdapter) ExecTx(ctx context.Context, queries []string, expectedRows int64) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var total int64

	for _, query := range queries {
		result, execErr := tx.ExecContext(ctx, query)
		if execErr != nil {
			return 0, execErr
		}

		affected, affectedErr := result.RowsAffected()
		if affectedErr != nil {
			return 0, affectedErr
		}

		total += affected
	}

	if total != expectedRows {
		return total, ErrTxRowCountMismatch
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return 0, commitErr
	}

	return total, nil
}
