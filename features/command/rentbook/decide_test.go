package rentbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/rentbook"
)

func Test_Decide_Success_WhenAllPreconditionsMet(t *testing.T) {
	// arrange
	userID := uuid.New()
	bookID := uuid.New()
	now := time.Now()

	state := rentbook.State{
		UserFound: true,
		User:      givenActiveUser(userID),
		BookFound: true,
		Book:      givenBook(bookID, 3, 2),
	}

	command := rentbook.BuildCommand(uuid.New(), userID, bookID, now)

	// act
	result := rentbook.Decide(state, command)

	// assert
	assertSuccessDecision(t, result)
}

func Test_Decide_Success_WhenUserIsOneUnderTheLimit(t *testing.T) {
	// arrange
	userID := uuid.New()
	bookID := uuid.New()
	now := time.Now()

	state := rentbook.State{
		UserFound:         true,
		User:              givenActiveUser(userID),
		BookFound:         true,
		Book:              givenBook(bookID, 3, 1),
		ActiveRentalCount: core.MaxActiveRentalsPerUser - 1,
	}

	command := rentbook.BuildCommand(uuid.New(), userID, bookID, now)

	// act
	result := rentbook.Decide(state, command)

	// assert
	assertSuccessDecision(t, result)
}

func Test_Decide_Success_WhenLastCopyIsTaken(t *testing.T) {
	// arrange
	userID := uuid.New()
	bookID := uuid.New()
	now := time.Now()

	state := rentbook.State{
		UserFound: true,
		User:      givenActiveUser(userID),
		BookFound: true,
		Book:      givenBook(bookID, 5, 1),
	}

	command := rentbook.BuildCommand(uuid.New(), userID, bookID, now)

	// act
	result := rentbook.Decide(state, command)

	// assert
	assertSuccessDecision(t, result)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	userID := uuid.New()
	bookID := uuid.New()
	now := time.Now()

	testCases := []struct {
		name        string
		state       rentbook.State
		expectedErr error
	}{
		{
			name:        "user never registered",
			state:       rentbook.State{BookFound: true, Book: givenBook(bookID, 3, 2)},
			expectedErr: core.ErrUserNotFound,
		},
		{
			name: "user deactivated",
			state: rentbook.State{
				UserFound: true,
				User:      givenInactiveUser(userID),
				BookFound: true,
				Book:      givenBook(bookID, 3, 2),
			},
			expectedErr: core.ErrUserNotFound,
		},
		{
			name: "book not in catalog",
			state: rentbook.State{
				UserFound: true,
				User:      givenActiveUser(userID),
			},
			expectedErr: core.ErrBookNotFound,
		},
		{
			name: "user already has this book out",
			state: rentbook.State{
				UserFound:           true,
				User:                givenActiveUser(userID),
				BookFound:           true,
				Book:                givenBook(bookID, 3, 2),
				AlreadyRentedByUser: true,
			},
			expectedErr: core.ErrDuplicateRental,
		},
		{
			name: "user at the rental limit",
			state: rentbook.State{
				UserFound:         true,
				User:              givenActiveUser(userID),
				BookFound:         true,
				Book:              givenBook(bookID, 3, 2),
				ActiveRentalCount: core.MaxActiveRentalsPerUser,
			},
			expectedErr: core.ErrRentalLimitExceeded,
		},
		{
			name: "every copy checked out",
			state: rentbook.State{
				UserFound: true,
				User:      givenActiveUser(userID),
				BookFound: true,
				Book:      givenBook(bookID, 3, 0),
			},
			expectedErr: core.ErrNoCopyAvailable,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := rentbook.BuildCommand(uuid.New(), userID, bookID, now)

			// act
			result := rentbook.Decide(tc.state, command)

			// assert
			assertErrorDecision(t, result, tc.expectedErr)
		})
	}
}

func Test_Decide_RentalLimitWinsOverDuplicateRental(t *testing.T) {
	// arrange
	userID := uuid.New()
	bookID := uuid.New()
	now := time.Now()

	// a user at the limit re-requesting a book they already hold fails on
	// the limit, the earlier precondition
	state := rentbook.State{
		UserFound:           true,
		User:                givenActiveUser(userID),
		BookFound:           true,
		Book:                givenBook(bookID, 3, 2),
		AlreadyRentedByUser: true,
		ActiveRentalCount:   core.MaxActiveRentalsPerUser,
	}

	command := rentbook.BuildCommand(uuid.New(), userID, bookID, now)

	// act
	result := rentbook.Decide(state, command)

	// assert
	assertErrorDecision(t, result, core.ErrRentalLimitExceeded)
}

/*** Test helpers ***/

func givenActiveUser(userID uuid.UUID) core.User {
	return core.User{
		ID:       userID,
		Email:    "reader@example.com",
		Role:     core.RoleUser,
		IsActive: true,
		Version:  1,
	}
}

func givenInactiveUser(userID uuid.UUID) core.User {
	user := givenActiveUser(userID)
	user.IsActive = false

	return user
}

func givenBook(bookID uuid.UUID, total, available int) core.Book {
	return core.Book{
		ID:              bookID,
		Title:           "The Go Programming Language",
		Author:          "Donovan & Kernighan",
		TotalCopies:     total,
		AvailableCopies: available,
		Version:         1,
	}
}

func assertSuccessDecision(t *testing.T, result core.DecisionResult) {
	t.Helper()

	assert.True(t, result.ShouldApply(), "expected the decision to apply")
	assert.NoError(t, result.HasError())
	assert.False(t, result.IsIdempotent())
}

func assertErrorDecision(t *testing.T, result core.DecisionResult, expectedErr error) {
	t.Helper()

	assert.False(t, result.ShouldApply(), "expected the decision to be rejected")
	assert.ErrorIs(t, result.HasError(), expectedErr)
}
