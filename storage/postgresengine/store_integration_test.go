package postgresengine_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/storage"
	"github.com/readhall/circulation-go/testutil/postgreswrapper"
)

func Test_Store_BookRoundTripAndVersionGuard(t *testing.T) {
	postgreswrapper.SkipUnlessPostgres(t)

	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)

	store := wrapper.GetStore()
	ctx := context.Background()

	book := core.Book{
		ID:              uuid.New(),
		Title:           "The Pragmatic Programmer",
		Author:          "Hunt",
		TotalCopies:     3,
		AvailableCopies: 3,
		CreatedAt:       core.ToTimestamp(time.Now()),
		Version:         1,
	}

	// act
	require.NoError(t, store.InsertBook(ctx, book))

	// assert
	loaded, err := store.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book.Title, loaded.Title)
	assert.Equal(t, uint(1), loaded.Version)

	updated := loaded
	updated.Author = "Hunt and Thomas"
	require.NoError(t, store.UpdateBook(ctx, updated, loaded.Version))

	// a second write against the now stale version must conflict
	err = store.UpdateBook(ctx, updated, loaded.Version)
	assert.ErrorIs(t, err, storage.ErrConcurrencyConflict)
}

func Test_Store_GetBookByID_NotFound(t *testing.T) {
	postgreswrapper.SkipUnlessPostgres(t)

	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)

	// act
	_, err := wrapper.GetStore().GetBookByID(context.Background(), uuid.New())

	// assert
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func Test_Store_RentalLifecycle(t *testing.T) {
	postgreswrapper.SkipUnlessPostgres(t)

	// arrange
	wrapper := postgreswrapper.CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	postgreswrapper.CleanUp(t, wrapper)

	store := wrapper.GetStore()
	ctx := context.Background()
	now := core.ToTimestamp(time.Now())

	book := core.Book{
		ID: uuid.New(), Title: "Dune", Author: "Herbert",
		TotalCopies: 1, AvailableCopies: 1, CreatedAt: now, Version: 1,
	}
	require.NoError(t, store.InsertBook(ctx, book))

	user := core.User{
		ID: uuid.New(), Email: "m@example.com", PasswordHash: "h", PasswordSalt: "s",
		Role: core.RoleUser, IsActive: true, CreatedAt: now, Version: 1,
	}
	require.NoError(t, store.InsertUser(ctx, user))

	rental := core.BookRental{
		ID: uuid.New(), UserID: user.ID, BookID: book.ID,
		RentalDate: now, DueDate: now.Add(core.LoanPeriod),
		Status: core.RentalActive, Version: 1,
	}

	// act
	require.NoError(t, store.CreateRental(ctx, rental, book.Version, user.Version))

	// assert
	afterRent, err := store.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, afterRent.AvailableCopies)
	assert.Equal(t, uint(2), afterRent.Version)

	// renting the last copy again must conflict on the stale book version
	err = store.CreateRental(ctx, core.BookRental{
		ID: uuid.New(), UserID: user.ID, BookID: book.ID,
		RentalDate: now, DueDate: now.Add(core.LoanPeriod),
		Status: core.RentalActive, Version: 1,
	}, book.Version, user.Version)
	assert.ErrorIs(t, err, storage.ErrConcurrencyConflict)

	require.NoError(t, store.CloseRental(ctx, rental.ID, rental.Version, book.ID, afterRent.Version, now.Add(time.Hour), 0))

	afterReturn, err := store.GetBookByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, afterReturn.AvailableCopies)

	deleted, err := store.DeleteReturnedRentals(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
