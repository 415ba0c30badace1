// Package adapters abstracts the concrete database access libraries
// (pgxpool, database/sql, sqlx) behind one small interface so the store
// engine builds SQL once and runs it against whichever handle the caller
// wired in.
package adapters
