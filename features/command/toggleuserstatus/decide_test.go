package toggleuserstatus_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/toggleuserstatus"
)

func Test_Decide_Success_ForActiveMember(t *testing.T) {
	// arrange
	userID := uuid.New()

	state := toggleuserstatus.State{
		UserFound: true,
		User: core.User{
			ID:       userID,
			Role:     core.RoleUser,
			IsActive: true,
			Version:  1,
		},
	}

	command := toggleuserstatus.BuildCommand(userID, time.Now())

	// act
	result := toggleuserstatus.Decide(state, command)

	// assert
	assert.True(t, result.ShouldApply(), "expected the decision to apply")
	assert.NoError(t, result.HasError())
}

func Test_Decide_Success_ForDeactivatedMember(t *testing.T) {
	// arrange - the toggle goes both ways
	userID := uuid.New()

	state := toggleuserstatus.State{
		UserFound: true,
		User: core.User{
			ID:       userID,
			Role:     core.RoleUser,
			IsActive: false,
			Version:  4,
		},
	}

	command := toggleuserstatus.BuildCommand(userID, time.Now())

	// act
	result := toggleuserstatus.Decide(state, command)

	// assert
	assert.True(t, result.ShouldApply())
	assert.NoError(t, result.HasError())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	userID := uuid.New()

	testCases := []struct {
		name        string
		state       toggleuserstatus.State
		expectedErr error
	}{
		{
			name:        "user does not exist",
			state:       toggleuserstatus.State{},
			expectedErr: core.ErrUserNotFound,
		},
		{
			name: "target is an admin account",
			state: toggleuserstatus.State{
				UserFound: true,
				User: core.User{
					ID:       userID,
					Role:     core.RoleAdmin,
					IsActive: true,
					Version:  1,
				},
			},
			expectedErr: core.ErrAdminProtected,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := toggleuserstatus.BuildCommand(userID, time.Now())

			// act
			result := toggleuserstatus.Decide(tc.state, command)

			// assert
			assert.False(t, result.ShouldApply(), "expected the decision to be rejected")
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}
