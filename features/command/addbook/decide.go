package addbook

import (
	"github.com/readhall/circulation-go/core"
)

// Decide implements the business logic to determine whether a new title can
// enter the catalog. This is a pure function with no side effects - the
// insert cannot conflict with stored state, so the decision only validates
// the command itself.
//
// Business Rules:
//
//	GIVEN: An admin principal
//	WHEN: AddBook command is received
//	THEN: A book is created with all copies available
//	ERROR: invalid book data if title or author is empty
//	ERROR: invalid copy count if total copies is below 1
func Decide(command Command) core.DecisionResult {
	if command.Title == "" || command.Author == "" {
		return core.ErrorDecision(core.ErrInvalidBookData)
	}

	if command.TotalCopies < 1 {
		return core.ErrorDecision(core.ErrInvalidCopyCount)
	}

	return core.SuccessDecision()
}
