package updatebook_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/updatebook"
)

func Test_Decide_Success_WhenTotalStaysAboveRentedCopies(t *testing.T) {
	// arrange - 2 of 5 copies are out, shrinking to 3 keeps them covered
	bookID := uuid.New()

	state := updatebook.State{
		BookFound: true,
		Book:      givenBook(bookID, 5, 3),
	}

	command := givenCommand(bookID, 3)

	// act
	result := updatebook.Decide(state, command)

	// assert
	assertSuccessDecision(t, result)
}

func Test_Decide_Success_WhenTotalEqualsRentedCopies(t *testing.T) {
	// arrange - every remaining copy is out, the floor is exactly met
	bookID := uuid.New()

	state := updatebook.State{
		BookFound: true,
		Book:      givenBook(bookID, 5, 2),
	}

	command := givenCommand(bookID, 3)

	// act
	result := updatebook.Decide(state, command)

	// assert
	assertSuccessDecision(t, result)
}

func Test_Decide_Success_WhenGrowingTheInventory(t *testing.T) {
	// arrange
	bookID := uuid.New()

	state := updatebook.State{
		BookFound: true,
		Book:      givenBook(bookID, 5, 5),
	}

	command := givenCommand(bookID, 12)

	// act
	result := updatebook.Decide(state, command)

	// assert
	assertSuccessDecision(t, result)
}

func Test_Decide_BusinessErrors(t *testing.T) {
	bookID := uuid.New()

	testCases := []struct {
		name        string
		state       updatebook.State
		mutate      func(c *updatebook.Command)
		expectedErr error
	}{
		{
			name:        "book does not exist",
			state:       updatebook.State{},
			mutate:      func(*updatebook.Command) {},
			expectedErr: core.ErrBookNotFound,
		},
		{
			name:        "missing title",
			state:       updatebook.State{BookFound: true, Book: givenBook(bookID, 5, 5)},
			mutate:      func(c *updatebook.Command) { c.Title = "" },
			expectedErr: core.ErrInvalidBookData,
		},
		{
			name:        "missing author",
			state:       updatebook.State{BookFound: true, Book: givenBook(bookID, 5, 5)},
			mutate:      func(c *updatebook.Command) { c.Author = "" },
			expectedErr: core.ErrInvalidBookData,
		},
		{
			name:        "zero copies",
			state:       updatebook.State{BookFound: true, Book: givenBook(bookID, 5, 5)},
			mutate:      func(c *updatebook.Command) { c.TotalCopies = 0 },
			expectedErr: core.ErrInvalidCopyCount,
		},
		{
			name:  "total below the rented floor",
			state: updatebook.State{BookFound: true, Book: givenBook(bookID, 5, 1)},
			// 4 copies are out, shrinking to 2 would strand two of them
			mutate:      func(c *updatebook.Command) { c.TotalCopies = 2 },
			expectedErr: core.ErrBelowRentedFloor,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := givenCommand(bookID, 5)
			tc.mutate(&command)

			// act
			result := updatebook.Decide(tc.state, command)

			// assert
			assert.False(t, result.ShouldApply(), "expected the decision to be rejected")
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}

func Test_Decide_BelowRentedFloorMessageNamesTheFloor(t *testing.T) {
	// arrange - 4 copies are out
	bookID := uuid.New()

	state := updatebook.State{
		BookFound: true,
		Book:      givenBook(bookID, 5, 1),
	}

	command := givenCommand(bookID, 2)

	// act
	result := updatebook.Decide(state, command)

	// assert
	err := result.HasError()
	assert.ErrorIs(t, err, core.ErrBelowRentedFloor)
	assert.Contains(t, err.Error(), "at least 4")
}

/*** Test helpers ***/

func givenBook(bookID uuid.UUID, total, available int) core.Book {
	return core.Book{
		ID:              bookID,
		Title:           "The Pragmatic Programmer",
		Author:          "Hunt & Thomas",
		TotalCopies:     total,
		AvailableCopies: available,
		Version:         3,
	}
}

func givenCommand(bookID uuid.UUID, totalCopies int) updatebook.Command {
	return updatebook.BuildCommand(
		bookID,
		"The Pragmatic Programmer, 20th Anniversary Edition",
		"Hunt & Thomas",
		"978-0135957059",
		"Software Engineering",
		"Addison-Wesley",
		nil,
		352,
		"Your journey to mastery.",
		totalCopies,
	)
}

func assertSuccessDecision(t *testing.T, result core.DecisionResult) {
	t.Helper()

	assert.True(t, result.ShouldApply(), "expected the decision to apply")
	assert.NoError(t, result.HasError())
}
