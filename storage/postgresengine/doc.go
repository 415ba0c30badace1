// Package postgresengine implements the circulation store on PostgreSQL.
//
// Every row carries a version column. Reads hand the versions to the
// decision layer; writes repeat them in their WHERE clauses, so a mutation
// based on a stale read matches no rows. Paired mutations (a rental plus its
// inventory decrement, a reservation plus its seat flip) run as one
// transaction whose total affected row count must equal the statement count,
// otherwise the transaction is rolled back and the caller gets
// storage.ErrConcurrencyConflict to retry on.
//
// The engine builds all SQL with goqu and runs it through a small adapter
// interface, so pgx pools, database/sql, and sqlx handles are
// interchangeable. Logging, metrics, and tracing are optional and
// dependency-free: wire any backend by implementing the small collector
// interfaces and passing the matching Option.
package postgresengine
