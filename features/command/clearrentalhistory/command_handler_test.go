package clearrentalhistory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/clearrentalhistory"
	"github.com/readhall/circulation-go/testutil/storefake"
)

func Test_Handle_DeletesOnlyReturnedRentals(t *testing.T) {
	// arrange
	store := storefake.New()
	userID := uuid.New()
	now := time.Now()

	store.SeedUser(core.User{ID: userID, Role: core.RoleUser, IsActive: true, Version: 1})

	returnedAt := now.Add(-time.Hour)
	returned := givenRental(userID, core.RentalReturned)
	returned.ReturnDate = &returnedAt
	open := givenRental(userID, core.RentalActive)

	store.SeedRental(returned)
	store.SeedRental(open)

	handler := clearrentalhistory.NewCommandHandler(store)
	command := clearrentalhistory.BuildCommand(userID)

	// act
	deleted, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = store.GetRentalByID(context.Background(), open.ID)
	assert.NoError(t, err, "the open rental must survive")
}

func Test_Handle_SucceedsWithZeroWhenHistoryIsEmpty(t *testing.T) {
	// arrange
	store := storefake.New()
	userID := uuid.New()

	store.SeedUser(core.User{ID: userID, Role: core.RoleUser, IsActive: true, Version: 1})

	handler := clearrentalhistory.NewCommandHandler(store)
	command := clearrentalhistory.BuildCommand(userID)

	// act
	deleted, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func Test_Handle_Error_WhenUserUnknown(t *testing.T) {
	// arrange
	store := storefake.New()
	handler := clearrentalhistory.NewCommandHandler(store)
	command := clearrentalhistory.BuildCommand(uuid.New())

	// act
	_, err := handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, core.ErrUserNotFound)
}

func givenRental(userID uuid.UUID, status core.RentalStatus) core.BookRental {
	rentalDate := core.ToTimestamp(time.Now().Add(-72 * time.Hour))

	return core.BookRental{
		ID:         uuid.New(),
		UserID:     userID,
		BookID:     uuid.New(),
		RentalDate: rentalDate,
		DueDate:    rentalDate.Add(core.LoanPeriod),
		Status:     status,
		Version:    1,
	}
}
