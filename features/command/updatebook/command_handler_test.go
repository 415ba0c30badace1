package updatebook_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/updatebook"
	"github.com/readhall/circulation-go/shell"
	"github.com/readhall/circulation-go/testutil/storefake"
)

func Test_Handle_Success_RecomputesAvailableCopies(t *testing.T) {
	// arrange - 2 of 5 copies are out, the new total of 8 must leave 6 free
	store := storefake.New()
	bookID := uuid.New()

	store.SeedBook(givenBook(bookID, 5, 3))

	handler := updatebook.NewCommandHandler(store)
	command := givenCommand(bookID, 8)

	// act
	_, err := handler.Handle(context.Background(), givenAdminPrincipal(), command)

	// assert
	require.NoError(t, err)

	book, err := store.GetBookByID(context.Background(), bookID)
	require.NoError(t, err)
	assert.Equal(t, 8, book.TotalCopies)
	assert.Equal(t, 6, book.AvailableCopies)
	assert.Equal(t, uint(4), book.Version)
}

func Test_Handle_Error_WhenPrincipalIsNotAdmin(t *testing.T) {
	// arrange
	store := storefake.New()
	bookID := uuid.New()

	store.SeedBook(givenBook(bookID, 5, 5))

	handler := updatebook.NewCommandHandler(store)
	command := givenCommand(bookID, 8)

	member := shell.Principal{UserID: uuid.New(), Role: core.RoleUser}

	// act
	_, err := handler.Handle(context.Background(), member, command)

	// assert
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	book, getErr := store.GetBookByID(context.Background(), bookID)
	require.NoError(t, getErr)
	assert.Equal(t, 5, book.TotalCopies, "an unauthorized call must not write")
}

func Test_Handle_Error_WhenTotalFallsBelowRentedCopies(t *testing.T) {
	// arrange - 4 copies are out
	store := storefake.New()
	bookID := uuid.New()

	store.SeedBook(givenBook(bookID, 5, 1))

	handler := updatebook.NewCommandHandler(store)
	command := givenCommand(bookID, 2)

	// act
	_, err := handler.Handle(context.Background(), givenAdminPrincipal(), command)

	// assert
	assert.ErrorIs(t, err, core.ErrBelowRentedFloor)
}

func givenAdminPrincipal() shell.Principal {
	return shell.Principal{UserID: uuid.New(), Role: core.RoleAdmin}
}
