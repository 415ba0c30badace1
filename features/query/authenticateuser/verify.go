package authenticateuser

import (
	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/shell"
)

// Verify implements the credential check against a loaded user. It has no
// side effects - it takes the loaded state and the query and returns the
// authenticated user or a rejection.
//
// Query Logic:
//
//	GIVEN: A user loaded by email, if one exists
//	WHEN: AuthenticateUser query is executed
//	THEN: The user is returned for session issuance
//	ERROR: invalid credentials if the email is unknown or the password wrong
//	ERROR: account disabled if the credentials match a deactivated account
func Verify(userFound bool, user core.User, query Query) (core.User, error) {
	if !userFound {
		return core.User{}, core.ErrInvalidCredentials
	}

	matches, err := shell.VerifyPassword(query.Password, user.PasswordSalt, user.PasswordHash)
	if err != nil {
		return core.User{}, err
	}

	if !matches {
		return core.User{}, core.ErrInvalidCredentials
	}

	if !user.IsActive {
		return core.User{}, core.ErrAccountDisabled
	}

	return user, nil
}
