package registeruser_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/registeruser"
)

func Test_Decide_Success_WhenEmailIsFree(t *testing.T) {
	// arrange
	state := registeruser.State{}
	command := givenCommand("new.reader@example.com", "s3cret-passphrase")

	// act
	result := registeruser.Decide(state, command)

	// assert
	assert.True(t, result.ShouldApply(), "expected the decision to apply")
	assert.NoError(t, result.HasError())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	testCases := []struct {
		name        string
		state       registeruser.State
		email       string
		password    string
		expectedErr error
	}{
		{
			name:        "missing email",
			state:       registeruser.State{},
			email:       "",
			password:    "s3cret-passphrase",
			expectedErr: core.ErrInvalidRegistration,
		},
		{
			name:        "missing password",
			state:       registeruser.State{},
			email:       "new.reader@example.com",
			password:    "",
			expectedErr: core.ErrInvalidRegistration,
		},
		{
			name:        "email already registered",
			state:       registeruser.State{EmailTaken: true},
			email:       "taken@example.com",
			password:    "s3cret-passphrase",
			expectedErr: core.ErrEmailTaken,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := givenCommand(tc.email, tc.password)

			// act
			result := registeruser.Decide(tc.state, command)

			// assert
			assert.False(t, result.ShouldApply(), "expected the decision to be rejected")
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}

func givenCommand(email, password string) registeruser.Command {
	return registeruser.BuildCommand(
		uuid.New(), email, password,
		"Ada", "Lovelace", "+44 20 7946 0000",
		time.Now(),
	)
}
