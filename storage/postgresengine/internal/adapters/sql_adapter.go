package adapters

import (
	"context"
	"database/sql"
)

// SQLAdapter implements DBAdapter for sql.DB.
type SQLAdapter struct {
	db *sql.DB
}

// NewSQLAdapter creates a new SQL adapter.
func NewSQLAdapter(db *sql.DB) *SQLAdapter {
	return &SQLAdapter{db: db}
}

func (s *SQLAdapter) Query(ctx context.Context, query string) (DBRows, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdRows{rows: rows}, nil
}

func (s *SQLAdapter) Exec(ctx context.Context, query string) (DBResult, error) {
	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return nil, err
	}

	return &stdResult{result: result}, nil
}

func (s *SQLAdapter) ExecTx(ctx context.Context, queries []string, expectedRows int64) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
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
