package core

import (
	"time"
)

// Instead of implementing full value objects, alias types and helper
// functions keep the entity fields self-describing.

// Timestamp represents a point in time stored by the system.
type Timestamp = time.Time

// ToTimestamp normalizes a time to UTC with microsecond precision,
// matching what Postgres stores in a "timestamp with time zone" column.
func ToTimestamp(t time.Time) Timestamp {
	return t.UTC().Truncate(time.Microsecond)
}
