package authenticateuser

const (
	queryType = "AuthenticateUser"
)

// Query carries the presented credentials. Password is the clear text
// credential; it is verified against the stored hash and never persisted.
type Query struct {
	Email    string
	Password string
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query with the provided parameters.
func BuildQuery(email string, password string) Query {
	return Query{
		Email:    email,
		Password: password,
	}
}
