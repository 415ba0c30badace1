package registeruser_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/registeruser"
	"github.com/readhall/circulation-go/shell"
	"github.com/readhall/circulation-go/testutil/storefake"
)

func Test_Handle_Success_CreatesActiveMemberWithHashedPassword(t *testing.T) {
	// arrange
	store := storefake.New()
	userID := uuid.New()

	handler := registeruser.NewCommandHandler(store)
	command := registeruser.BuildCommand(
		userID, "ada@example.com", "s3cret-passphrase",
		"Ada", "Lovelace", "", time.Now(),
	)

	// act
	_, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)

	user, err := store.GetUserByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, core.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.Equal(t, uint(1), user.Version)

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEmpty(t, user.PasswordSalt)
	assert.NotContains(t, user.PasswordHash, "s3cret-passphrase")

	matches, err := shell.VerifyPassword("s3cret-passphrase", user.PasswordSalt, user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, matches, "the stored hash must verify against the original password")
}

func Test_Handle_Error_WhenEmailAlreadyRegistered(t *testing.T) {
	// arrange
	store := storefake.New()

	store.SeedUser(core.User{
		ID:       uuid.New(),
		Email:    "ada@example.com",
		Role:     core.RoleUser,
		IsActive: true,
		Version:  1,
	})

	handler := registeruser.NewCommandHandler(store)
	command := registeruser.BuildCommand(
		uuid.New(), "ada@example.com", "s3cret-passphrase",
		"Ada", "Lovelace", "", time.Now(),
	)

	// act
	_, err := handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, core.ErrEmailTaken)
}

func Test_Handle_Error_WhenPasswordMissing(t *testing.T) {
	// arrange
	store := storefake.New()
	handler := registeruser.NewCommandHandler(store)
	command := registeruser.BuildCommand(
		uuid.New(), "ada@example.com", "",
		"Ada", "Lovelace", "", time.Now(),
	)

	// act
	_, err := handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, core.ErrInvalidRegistration)
}
