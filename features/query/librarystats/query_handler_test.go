package librarystats_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/query/librarystats"
	"github.com/readhall/circulation-go/shell"
	"github.com/readhall/circulation-go/testutil/storefake"
)

func Test_Handle_CountsOnlyOpenObligations(t *testing.T) {
	// arrange
	store := storefake.New()
	now := core.ToTimestamp(time.Now())

	store.SeedBook(core.Book{ID: uuid.New(), Title: "A", Author: "B", TotalCopies: 1, AvailableCopies: 1, Version: 1})
	store.SeedBook(core.Book{ID: uuid.New(), Title: "C", Author: "D", TotalCopies: 2, AvailableCopies: 1, Version: 1})
	store.SeedSeat(core.Seat{ID: uuid.New(), SeatNumber: "A-01", IsAvailable: true, Version: 1})

	userID := uuid.New()
	store.SeedUser(core.User{ID: userID, Email: "m@example.com", Role: core.RoleUser, IsActive: true, Version: 1})

	returnedAt := now.Add(-time.Hour)
	store.SeedRental(core.BookRental{
		ID: uuid.New(), UserID: userID, BookID: uuid.New(),
		RentalDate: now.Add(-48 * time.Hour), DueDate: now.Add(-48 * time.Hour).Add(core.LoanPeriod),
		Status: core.RentalActive, Version: 1,
	})
	store.SeedRental(core.BookRental{
		ID: uuid.New(), UserID: userID, BookID: uuid.New(),
		RentalDate: now.Add(-96 * time.Hour), DueDate: now.Add(-96 * time.Hour).Add(core.LoanPeriod),
		ReturnDate: &returnedAt, Status: core.RentalReturned, Version: 2,
	})

	store.SeedReservation(core.SeatReservation{
		ID: uuid.New(), UserID: userID, SeatID: uuid.New(),
		ReservationDate: now, StartTime: now, EndTime: now.Add(time.Hour),
		Status: core.ReservationCancelled, CreatedAt: now, Version: 2,
	})

	handler := librarystats.NewQueryHandler(store)

	// act
	stats, err := handler.Handle(context.Background(), givenAdminPrincipal())

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBooks)
	assert.Equal(t, 1, stats.TotalSeats)
	assert.Equal(t, 1, stats.TotalUsers)
	assert.Equal(t, 1, stats.ActiveRentals, "returned rentals do not count")
	assert.Equal(t, 0, stats.ActiveReservations, "cancelled reservations do not count")
}

func Test_Handle_Error_WhenCallerIsNotAdmin(t *testing.T) {
	// arrange
	store := storefake.New()
	handler := librarystats.NewQueryHandler(store)

	member := shell.Principal{UserID: uuid.New(), Role: core.RoleUser}

	// act
	_, err := handler.Handle(context.Background(), member)

	// assert
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func givenAdminPrincipal() shell.Principal {
	return shell.Principal{UserID: uuid.New(), Role: core.RoleAdmin}
}
