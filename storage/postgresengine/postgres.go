package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"time"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/readhall/circulation-go/storage"
	"github.com/readhall/circulation-go/storage/postgresengine/internal/adapters"
)

const (
	tableBooks        = "books"
	tableSeats        = "seats"
	tableUsers        = "users"
	tableRentals      = "book_rentals"
	tableReservations = "seat_reservations"

	dialectPostgres = "postgres"

	logMsgBuildQueryFailed    = "failed to build sql query"
	logMsgDBQueryFailed       = "database query execution failed"
	logMsgDBExecFailed        = "database execution failed"
	logMsgCloseRowsFailed     = "failed to close database rows"
	logMsgScanRowFailed       = "failed to scan database row"
	logMsgRowsAffectedFailed  = "failed to get rows affected count"
	logMsgConcurrencyConflict = "concurrency conflict detected"
	logMsgSQLExecuted         = "executed sql for: "
	logMsgOperation           = "store operation: "

	logAttrError        = "error"
	logAttrQuery        = "query"
	logAttrDurationMS   = "duration_ms"
	logAttrRowsAffected = "rows_affected"
	logAttrExpectedRows = "expected_rows"
	logAttrOperation    = "operation"

	metricQueryDuration    = "circulationstore_query_duration_seconds"
	metricMutationDuration = "circulationstore_mutation_duration_seconds"
	metricConflictsTotal   = "circulationstore_concurrency_conflicts_total"
	metricErrorsTotal      = "circulationstore_errors_total"

	labelOperation = "operation"
	labelStatus    = "status"

	spanNamePrefix     = "circulationstore."
	spanStatusOK       = "ok"
	spanStatusError    = "error"
	spanStatusConflict = "conflict"
)

type sqlQueryString = string

// Store persists the library's circulating inventory and obligations in
// Postgres. All mutations that a business decision depends on are guarded by
// the row versions the decision was made against; a guard that matches no
// rows surfaces as storage.ErrConcurrencyConflict and the caller re-reads,
// re-decides, and retries.
type Store struct {
	db               adapters.DBAdapter
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewStoreFromPGXPool creates a new Store using a pgx pool with optional configuration.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, storage.ErrNilDatabaseConnection
	}

	return applyOptions(Store{db: adapters.NewPGXAdapter(db)}, options)
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, storage.ErrNilDatabaseConnection
	}

	return applyOptions(Store{db: adapters.NewSQLAdapter(db)}, options)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, storage.ErrNilDatabaseConnection
	}

	return applyOptions(Store{db: adapters.NewSQLXAdapter(db)}, options)
}

func applyOptions(s Store, options []Option) (Store, error) {
	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// executeQuery executes a select statement and returns the rows with timing.
func (s Store) executeQuery(ctx context.Context, operation string, sqlQuery sqlQueryString) (adapters.DBRows, error) {
	ctx, span := s.startSpan(ctx, operation)

	start := time.Now()
	rows, queryErr := s.db.Query(ctx, sqlQuery)
	duration := time.Since(start)

	s.logQueryWithDuration(ctx, sqlQuery, operation, duration)
	s.recordDuration(metricQueryDuration, duration, operation)

	if queryErr != nil {
		s.logError(ctx, logMsgDBQueryFailed, logAttrError, queryErr.Error(), logAttrQuery, sqlQuery)
		s.incrementCounter(metricErrorsTotal, operation)
		s.finishSpan(span, spanStatusError)

		return nil, errors.Join(storage.ErrQueryFailed, queryErr)
	}

	s.finishSpan(span, spanStatusOK)

	return rows, nil
}

// executeMutation executes a single statement and returns the affected row count.
func (s Store) executeMutation(ctx context.Context, operation string, sqlQuery sqlQueryString) (int64, error) {
	ctx, span := s.startSpan(ctx, operation)

	start := time.Now()
	result, execErr := s.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)

	s.logQueryWithDuration(ctx, sqlQuery, operation, duration)
	s.recordDuration(metricMutationDuration, duration, operation)

	if execErr != nil {
		s.logError(ctx, logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrQuery, sqlQuery)
		s.incrementCounter(metricErrorsTotal, operation)
		s.finishSpan(span, spanStatusError)

		return 0, errors.Join(storage.ErrExecFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		s.logError(ctx, logMsgRowsAffectedFailed, logAttrError, rowsAffectedErr.Error())
		s.finishSpan(span, spanStatusError)

		return 0, errors.Join(storage.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	s.finishSpan(span, spanStatusOK)

	return rowsAffected, nil
}

// executeGuardedMutation executes a single version-guarded statement that
// must affect exactly one row; zero affected rows is a concurrency conflict.
func (s Store) executeGuardedMutation(ctx context.Context, operation string, sqlQuery sqlQueryString) error {
	rowsAffected, execErr := s.executeMutation(ctx, operation, sqlQuery)
	if execErr != nil {
		return execErr
	}

	if rowsAffected == 0 {
		s.logOperation(ctx, logMsgConcurrencyConflict, logAttrOperation, operation)
		s.incrementCounter(metricConflictsTotal, operation)

		return storage.ErrConcurrencyConflict
	}

	return nil
}

// executeGuardedTx executes several guarded statements in one transaction.
// Each statement must affect exactly one row; a short total count means some
// guard did not match, the transaction is rolled back, and the shortfall is
// reported as a concurrency conflict.
func (s Store) executeGuardedTx(ctx context.Context, operation string, queries []sqlQueryString) error {
	ctx, span := s.startSpan(ctx, operation)

	expectedRows := int64(len(queries))

	start := time.Now()
	rowsAffected, execErr := s.db.ExecTx(ctx, queries, expectedRows)
	duration := time.Since(start)

	for _, sqlQuery := range queries {
		s.logQueryWithDuration(ctx, sqlQuery, operation, duration)
	}
	s.recordDuration(metricMutationDuration, duration, operation)

	if execErr != nil {
		if errors.Is(execErr, adapters.ErrTxRowCountMismatch) {
			s.logOperation(ctx, logMsgConcurrencyConflict,
				logAttrOperation, operation,
				logAttrExpectedRows, expectedRows,
				logAttrRowsAffected, rowsAffected)
			s.incrementCounter(metricConflictsTotal, operation)
			s.finishSpan(span, spanStatusConflict)

			return storage.ErrConcurrencyConflict
		}

		s.logError(ctx, logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrOperation, operation)
		s.incrementCounter(metricErrorsTotal, operation)
		s.finishSpan(span, spanStatusError)

		return errors.Join(storage.ErrExecFailed, execErr)
	}

	s.finishSpan(span, spanStatusOK)

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (s Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarn(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func (s Store) logQueryWithDuration(ctx context.Context, sqlQuery sqlQueryString, operation string, duration time.Duration) {
	args := []any{logAttrDurationMS, durationToMilliseconds(duration), logAttrQuery, sqlQuery}

	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+operation, args...)
	case s.logger != nil:
		s.logger.Debug(logMsgSQLExecuted+operation, args...)
	}
}

func (s Store) logOperation(ctx context.Context, action string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	case s.logger != nil:
		s.logger.Info(logMsgOperation+action, args...)
	}
}

func (s Store) logWarn(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.WarnContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Warn(msg, args...)
	}
}

func (s Store) logError(ctx context.Context, msg string, args ...any) {
	switch {
	case s.contextualLogger != nil:
		s.contextualLogger.ErrorContext(ctx, msg, args...)
	case s.logger != nil:
		s.logger.Error(msg, args...)
	}
}

func (s Store) recordDuration(metric string, duration time.Duration, operation string) {
	if s.metricsCollector != nil {
		s.metricsCollector.RecordDuration(metric, duration, map[string]string{labelOperation: operation})
	}
}

func (s Store) incrementCounter(metric string, operation string) {
	if s.metricsCollector != nil {
		s.metricsCollector.IncrementCounter(metric, map[string]string{labelOperation: operation})
	}
}

func (s Store) startSpan(ctx context.Context, operation string) (context.Context, SpanContext) {
	if s.tracingCollector == nil {
		return ctx, nil
	}

	return s.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{labelOperation: operation})
}

func (s Store) finishSpan(span SpanContext, status string) {
	if s.tracingCollector == nil || span == nil {
		return
	}

	s.tracingCollector.FinishSpan(span, status, map[string]string{labelStatus: status})
}

// durationToMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func durationToMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
