// Package postgreswrapper abstracts over the three database adapters for
// integration tests.
//
// Adapter selection is controlled by the CIRCULATION_TEST_ADAPTER environment
// variable (pgx, sqldb, sqlx), so the full engine test suite can be run once
// per adapter against the same schema. Tests using this package skip unless
// CIRCULATION_TEST_WITH_POSTGRES is set, because they need a reachable
// Postgres instance with the circulation schema applied.
package postgreswrapper
