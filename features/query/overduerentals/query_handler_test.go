package overduerentals_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/query/overduerentals"
	"github.com/readhall/circulation-go/shell"
	"github.com/readhall/circulation-go/testutil/storefake"
)

func Test_Handle_ReportsOverdueRentals(t *testing.T) {
	// arrange
	store := storefake.New()
	asOf := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	userID := uuid.New()
	store.SeedUser(core.User{ID: userID, Email: "m@example.com", Role: core.RoleUser, IsActive: true, Version: 1})

	overdue := givenActiveRentalDue(asOf.Add(-48 * time.Hour))
	overdue.UserID = userID
	store.SeedRental(overdue)

	onTime := givenActiveRentalDue(asOf.Add(24 * time.Hour))
	onTime.UserID = userID
	store.SeedRental(onTime)

	handler := overduerentals.NewQueryHandler(store)
	admin := shell.Principal{UserID: uuid.New(), Role: core.RoleAdmin}

	// act
	report, err := handler.Handle(context.Background(), admin, overduerentals.BuildQuery(asOf))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, report.Count)
	assert.Equal(t, overdue.ID, report.Rentals[0].RentalID)
	assert.Equal(t, int64(2), report.Rentals[0].DaysLate)
}

func Test_Handle_Error_WhenCallerIsNotAdmin(t *testing.T) {
	// arrange
	store := storefake.New()
	handler := overduerentals.NewQueryHandler(store)

	member := shell.Principal{UserID: uuid.New(), Role: core.RoleUser}

	// act
	_, err := handler.Handle(context.Background(), member, overduerentals.BuildQuery(time.Now()))

	// assert
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}
