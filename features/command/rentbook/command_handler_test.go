package rentbook_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/rentbook"
	"github.com/readhall/circulation-go/shell"
	"github.com/readhall/circulation-go/testutil/storefake"
)

func Test_Handle_Success_CreatesRentalAndTakesACopy(t *testing.T) {
	// arrange
	store := storefake.New()
	userID := uuid.New()
	bookID := uuid.New()
	rentalID := uuid.New()
	now := time.Now()

	store.SeedUser(givenActiveUser(userID))
	store.SeedBook(givenBook(bookID, 3, 2))

	handler := rentbook.NewCommandHandler(store)
	command := rentbook.BuildCommand(rentalID, userID, bookID, now)

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)

	rental, err := store.GetRentalByID(context.Background(), rentalID)
	require.NoError(t, err)
	assert.Equal(t, core.RentalActive, rental.Status)
	assert.Equal(t, rental.RentalDate.Add(core.LoanPeriod), rental.DueDate)

	book, err := store.GetBookByID(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, 1, book.AvailableCopies)
	assert.Equal(t, uint(2), book.Version)

	user, err := store.GetUserByID(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, uint(2), user.Version)
}

func Test_Handle_RetriesAfterConcurrencyConflict(t *testing.T) {
	// arrange
	store := storefake.New()
	userID := uuid.New()
	bookID := uuid.New()
	now := time.Now()

	store.SeedUser(givenActiveUser(userID))
	store.SeedBook(givenBook(bookID, 3, 2))
	store.ForceConflicts(2)

	handler := rentbook.NewCommandHandler(store,
		rentbook.WithRetryOptions(shell.WithBaseDelay(time.Millisecond)),
	)
	command := rentbook.BuildCommand(uuid.New(), userID, bookID, now)

	// act
	result, err := handler.Handle(context.Background(), command)

	// assert
	require.NoError(t, err)
	assert.Equal(t, 3, result.RetryAttempts, "two conflicts plus the final success")

	book, err := store.GetBookByID(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, 1, book.AvailableCopies)
}

func Test_Handle_Error_WhenUserUnknown(t *testing.T) {
	// arrange
	store := storefake.New()
	bookID := uuid.New()

	store.SeedBook(givenBook(bookID, 3, 2))

	handler := rentbook.NewCommandHandler(store)
	command := rentbook.BuildCommand(uuid.New(), uuid.New(), bookID, time.Now())

	// act
	_, err := handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, core.ErrUserNotFound)

	book, getErr := store.GetBookByID(context.Background(), bookID)
	require.NoError(t, getErr)
	assert.Equal(t, 2, book.AvailableCopies, "a rejected rental must not take a copy")
}

func Test_Handle_Error_WhenUserAtTheRentalLimit(t *testing.T) {
	// arrange
	store := storefake.New()
	userID := uuid.New()
	bookID := uuid.New()
	now := time.Now()

	store.SeedUser(givenActiveUser(userID))
	store.SeedBook(givenBook(bookID, 3, 3))

	for i := 0; i < core.MaxActiveRentalsPerUser; i++ {
		otherBookID := uuid.New()
		store.SeedBook(givenBook(otherBookID, 1, 0))
		store.SeedRental(core.BookRental{
			ID:         uuid.New(),
			UserID:     userID,
			BookID:     otherBookID,
			RentalDate: core.ToTimestamp(now.Add(-time.Hour)),
			DueDate:    core.ToTimestamp(now.Add(-time.Hour)).Add(core.LoanPeriod),
			Status:     core.RentalActive,
			Version:    1,
		})
	}

	handler := rentbook.NewCommandHandler(store)
	command := rentbook.BuildCommand(uuid.New(), userID, bookID, now)

	// act
	_, err := handler.Handle(context.Background(), command)

	// assert
	assert.ErrorIs(t, err, core.ErrRentalLimitExceeded)
}
