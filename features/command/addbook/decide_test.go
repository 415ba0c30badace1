package addbook_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/addbook"
)

func Test_Decide_Success_WhenCommandIsValid(t *testing.T) {
	// arrange
	command := givenValidCommand()

	// act
	result := addbook.Decide(command)

	// assert
	assert.True(t, result.ShouldApply(), "expected the decision to apply")
	assert.NoError(t, result.HasError())
}

func Test_Decide_Success_WithSingleCopyAndNoOptionalFields(t *testing.T) {
	// arrange
	command := addbook.BuildCommand(
		uuid.New(), "Clean Architecture", "Robert C. Martin",
		"", "", "", nil, 0, "", 1, time.Now(),
	)

	// act
	result := addbook.Decide(command)

	// assert
	assert.True(t, result.ShouldApply())
	assert.NoError(t, result.HasError())
}

func Test_Decide_BusinessErrors(t *testing.T) {
	testCases := []struct {
		name        string
		mutate      func(c *addbook.Command)
		expectedErr error
	}{
		{
			name:        "missing title",
			mutate:      func(c *addbook.Command) { c.Title = "" },
			expectedErr: core.ErrInvalidBookData,
		},
		{
			name:        "missing author",
			mutate:      func(c *addbook.Command) { c.Author = "" },
			expectedErr: core.ErrInvalidBookData,
		},
		{
			name:        "zero copies",
			mutate:      func(c *addbook.Command) { c.TotalCopies = 0 },
			expectedErr: core.ErrInvalidCopyCount,
		},
		{
			name:        "negative copies",
			mutate:      func(c *addbook.Command) { c.TotalCopies = -3 },
			expectedErr: core.ErrInvalidCopyCount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			command := givenValidCommand()
			tc.mutate(&command)

			// act
			result := addbook.Decide(command)

			// assert
			assert.False(t, result.ShouldApply(), "expected the decision to be rejected")
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
		})
	}
}

func givenValidCommand() addbook.Command {
	published := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)

	return addbook.BuildCommand(
		uuid.New(),
		"Designing Data-Intensive Applications",
		"Martin Kleppmann",
		"978-1449373320",
		"Databases",
		"O'Reilly",
		&published,
		616,
		"The big ideas behind reliable, scalable systems.",
		4,
		time.Now(),
	)
}
