package postgreswrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/readhall/circulation-go/shell/config"
	"github.com/readhall/circulation-go/storage/postgresengine"
)

const (
	envTestWithPostgres = "CIRCULATION_TEST_WITH_POSTGRES"
	envTestAdapter      = "CIRCULATION_TEST_ADAPTER"

	typePGX   = "pgx"
	typeSQLDB = "sqldb"
	typeSQLX  = "sqlx"
)

// Wrapper abstracts over the adapter-specific connection handles.
type Wrapper interface {
	GetStore() postgresengine.Store
	Close()
}

// PGXPoolWrapper wraps pgxpool-based testing.
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store postgresengine.Store
}

func (w *PGXPoolWrapper) GetStore() postgresengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB-based testing.
type SQLDBWrapper struct {
	db    *sql.DB
	store postgresengine.Store
}

func (w *SQLDBWrapper) GetStore() postgresengine.Store {
	return w.store
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close()
}

// SQLXWrapper wraps sqlx-based testing.
type SQLXWrapper struct {
	db    *sqlx.DB
	store postgresengine.Store
}

func (w *SQLXWrapper) GetStore() postgresengine.Store {
	return w.store
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close()
}

// SkipUnlessPostgres skips the test unless the environment opts in to
// Postgres-backed integration tests.
func SkipUnlessPostgres(t testing.TB) {
	t.Helper()

	if os.Getenv(envTestWithPostgres) == "" {
		t.Skipf("set %s to run Postgres integration tests", envTestWithPostgres)
	}
}

// CreateWrapperWithTestConfig creates the wrapper selected by the
// CIRCULATION_TEST_ADAPTER environment variable, defaulting to pgx.
func CreateWrapperWithTestConfig(t testing.TB) Wrapper {
	t.Helper()

	adapterFromEnv := strings.ToLower(os.Getenv(envTestAdapter))

	switch adapterFromEnv {
	case typePGX, "":
		pool, err := pgxpool.NewWithConfig(context.Background(), config.PostgresPGXPoolTestConfig())
		require.NoError(t, err, "error connecting to DB pool in test setup")

		store, err := postgresengine.NewStoreFromPGXPool(pool)
		require.NoError(t, err, "error creating store in test setup")

		return &PGXPoolWrapper{pool: pool, store: store}

	case typeSQLDB:
		db := config.PostgresSQLDBTestConfig()

		store, err := postgresengine.NewStoreFromSQLDB(db)
		require.NoError(t, err, "error creating store in test setup")

		return &SQLDBWrapper{db: db, store: store}

	case typeSQLX:
		db := config.PostgresSQLXTestConfig()

		store, err := postgresengine.NewStoreFromSQLX(db)
		require.NoError(t, err, "error creating store in test setup")

		return &SQLXWrapper{db: db, store: store}

	default:
		panic(fmt.Sprintf("unsupported adapter type from env: %s", adapterFromEnv))
	}
}

// CleanUp empties every circulation table so tests start from a clean slate.
func CleanUp(t testing.TB, wrapper Wrapper) {
	t.Helper()

	const truncate = "TRUNCATE TABLE book_rentals, seat_reservations, books, seats, users"

	switch w := wrapper.(type) {
	case *PGXPoolWrapper:
		_, err := w.pool.Exec(context.Background(), truncate)
		require.NoError(t, err, "error cleaning up tables")

	case *SQLDBWrapper:
		_, err := w.db.ExecContext(context.Background(), truncate)
		require.NoError(t, err, "error cleaning up tables")

	case *SQLXWrapper:
		_, err := w.db.ExecContext(context.Background(), truncate)
		require.NoError(t, err, "error cleaning up tables")
	}
}
