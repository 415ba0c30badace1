// Package storage declares the types shared between the persistence engine
// and its callers: the error sentinels (including the optimistic concurrency
// conflict that command handlers retry on) and small result types.
//
// The actual Postgres implementation lives in storage/postgresengine; test
// code uses the in-memory double from testutil/storefake. Both honor the
// same contract: every paired obligation+inventory mutation is all-or-nothing
// and version-guarded.
package storage
