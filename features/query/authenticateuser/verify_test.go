package authenticateuser_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/query/authenticateuser"
	"github.com/readhall/circulation-go/shell"
)

const testPassword = "correct horse battery staple"

func Test_Verify_Success_WithMatchingCredentials(t *testing.T) {
	// arrange
	user := givenUserWithPassword(t, testPassword, true)
	query := authenticateuser.BuildQuery(user.Email, testPassword)

	// act
	authenticated, err := authenticateuser.Verify(true, user, query)

	// assert
	require.NoError(t, err)
	assert.Equal(t, user.ID, authenticated.ID)
	assert.Equal(t, user.Email, authenticated.Email)
}

func Test_Verify_InvalidCredentials_WhenEmailUnknown(t *testing.T) {
	// arrange
	query := authenticateuser.BuildQuery("nobody@example.com", testPassword)

	// act
	_, err := authenticateuser.Verify(false, core.User{}, query)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func Test_Verify_InvalidCredentials_WhenPasswordWrong(t *testing.T) {
	// arrange
	user := givenUserWithPassword(t, testPassword, true)
	query := authenticateuser.BuildQuery(user.Email, "not the password")

	// act
	_, err := authenticateuser.Verify(true, user, query)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidCredentials)
}

func Test_Verify_AccountDisabled_OnlyAfterPasswordMatches(t *testing.T) {
	// arrange
	user := givenUserWithPassword(t, testPassword, false)

	// act - wrong password on a disabled account must not reveal the state
	_, wrongPasswordErr := authenticateuser.Verify(
		true, user, authenticateuser.BuildQuery(user.Email, "not the password"))

	// act - correct password on a disabled account names the real reason
	_, disabledErr := authenticateuser.Verify(
		true, user, authenticateuser.BuildQuery(user.Email, testPassword))

	// assert
	assert.ErrorIs(t, wrongPasswordErr, core.ErrInvalidCredentials)
	assert.ErrorIs(t, disabledErr, core.ErrAccountDisabled)
}

func givenUserWithPassword(t *testing.T, password string, active bool) core.User {
	t.Helper()

	hash, salt, err := shell.HashPassword(password)
	require.NoError(t, err)

	return core.User{
		ID:           uuid.New(),
		Email:        "reader@example.com",
		PasswordHash: hash,
		PasswordSalt: salt,
		Role:         core.RoleUser,
		IsActive:     active,
		Version:      1,
	}
}
