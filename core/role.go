package core

import "fmt"

// Role is the closed set of user roles. The original system dispatched on a
// free-form role string; modeling it as a closed enumeration means an
// unrecognized role can never reach business logic.
type Role uint8

const (
	// RoleUser is a regular library member.
	RoleUser Role = iota

	// RoleAdmin is a librarian with access to the administrative surface.
	// Admin users are protected: they can neither be deleted nor have their
	// active flag toggled.
	RoleAdmin
)

const (
	roleUserString  = "User"
	roleAdminString = "Admin"
)

// String returns the stored representation of the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return roleAdminString
	default:
		return roleUserString
	}
}

// IsAdmin reports whether the role grants administrative capabilities.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// IsProtected reports whether entities with this role are shielded from
// administrative mutation (deletion, status toggling).
func (r Role) IsProtected() bool {
	return r == RoleAdmin
}

// ParseRole converts a stored role string back into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case roleUserString:
		return RoleUser, nil
	case roleAdminString:
		return RoleAdmin, nil
	default:
		return RoleUser, fmt.Errorf("unknown role: %q", s)
	}
}
