package shell

import (
	"github.com/google/uuid"

	"github.com/readhall/circulation-go/core"
)

// Principal identifies the caller of a privileged operation. Handlers that
// guard administrative functionality take the Principal explicitly instead
// of digging a role out of ambient session state, so the authorization check
// is visible in the call signature and testable without any transport.
type Principal struct {
	UserID uuid.UUID
	Role   core.Role
}

// IsAdmin reports whether the caller holds the administrative role.
func (p Principal) IsAdmin() bool {
	return p.Role.IsAdmin()
}

// RequireAdmin returns core.ErrUnauthorized unless the caller is an admin.
// It is the first check in every administrative handler: authorization
// failures win over not-found and business-rule failures.
func RequireAdmin(p Principal) error {
	if !p.IsAdmin() {
		return core.ErrUnauthorized
	}

	return nil
}
