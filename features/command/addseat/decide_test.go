package addseat_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/readhall/circulation-go/core"
	"github.com/readhall/circulation-go/features/command/addseat"
)

func Test_Decide_Success_WhenSeatNumberPresent(t *testing.T) {
	// arrange
	command := addseat.BuildCommand(uuid.New(), "C-03", 3, "Group Study", "Desk")

	// act
	result := addseat.Decide(command)

	// assert
	assert.True(t, result.ShouldApply(), "expected the decision to apply")
	assert.NoError(t, result.HasError())
}

func Test_Decide_Error_WhenSeatNumberMissing(t *testing.T) {
	// arrange
	command := addseat.BuildCommand(uuid.New(), "", 3, "Group Study", "Desk")

	// act
	result := addseat.Decide(command)

	// assert
	assert.False(t, result.ShouldApply(), "expected the decision to be rejected")
	assert.ErrorIs(t, result.HasError(), core.ErrInvalidSeatData)
}
