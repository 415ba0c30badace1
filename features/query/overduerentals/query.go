package overduerentals

import (
	"time"

	"github.com/readhall/circulation-go/core"
)

const (
	queryType = "OverdueRentals"
)

// Query asks for every rental that is overdue at the given point in time.
type Query struct {
	AsOf core.Timestamp
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(asOf time.Time) Query {
	return Query{
		AsOf: core.ToTimestamp(asOf),
	}
}
