package removeuser_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/removeuser"
)

func Test_Decide_Success_WhenAllObligationsClosed(t *testing.T) {
	// arrange
	userID := uuid.New()

	state := removeuser.State{
		UserFound: true,
		User:      givenMember(userID),
	}

	command := removeuser.BuildCommand(userID)

	// act
	result := removeuser.Decide(state, command)

	// assert
	assert.True(t, result.ShouldApply(), "expected the decision to apply")
	assert.NoError(t, result.HasError())
}

func Test_Decide_Success_ForDeactivatedMemberWithoutObligations(t *testing.T) {
	// arrange - deactivation does not block deletion, only open obligations do
	userID := uuid.New()

	user := givenMember(userID)
	user.IsActive = false

	state := removeuser.State{
		UserFound: true,
		User:      user,
	}

	command := removeuser.BuildCommand(userID)

	// act
	result := removeuser.Decide(state, command)

	// assert
	assert.True(t, result.ShouldApply())
	assert.NoError(t, result.HasError())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	userID := uuid.New()

	testCases := []struct {
		name        string
		state       removeuser.State
		expectedErr error
	}{
		{
			name:        "user does not exist",
			state:       removeuser.State{},
			expectedErr: core.ErrUserNotFound,
		},
		{
			name: "target is an admin account",
			state: removeuser.State{
				UserFound: true,
				User:      givenAdmin(userID),
			},
			expectedErr: core.ErrAdminProtected,
		},
		{
			name: "user still has an active rental",
			state: removeuser.State{
				UserFound:         true,
				User:              givenMember(userID),
				ActiveRentalCount: 1,
			},
			expectedErr: core.ErrOpenObligations,
		},
		{
			name: "user still holds a reservation",
			state: removeuser.State{
				UserFound:            true,
				User:                 givenMember(userID),
				HasActiveReservation: true,
			},
			expectedErr: core.ErrOpenObligations,
		},
		{
			name: "admin protection wins over open obligations",
			state: removeuser.State{
				UserFound:         true,
				User:              givenAdmin(userID),
				ActiveRentalCount: 2,
			},
			expectedErr: core.ErrAdminProtected,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := removeuser.BuildCommand(userID)

			// act
			result := removeuser.Decide(tc.state, command)

			// assert
			assert.False(t, result.ShouldApply(), "expected the decision to be rejected")
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}

/*** Test helpers ***/

func givenMember(userID uuid.UUID) core.User {
	return core.User{
		ID:       userID,
		Email:    "member@example.com",
		Role:     core.RoleUser,
		IsActive: true,
		Version:  1,
	}
}

func givenAdmin(userID uuid.UUID) core.User {
	user := givenMember(userID)
	user.Email = "librarian@example.com"
	user.Role = core.RoleAdmin

	return user
}
