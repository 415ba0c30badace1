package core

// DecisionResult represents the outcome of a business decision in a Decide
// function.
//
// DecisionResult should only be constructed using the provided factory
// functions: IdempotentDecision(), SuccessDecision(), or ErrorDecision(err).
type DecisionResult struct {
	Outcome string // "idempotent", "success", or "error"
	Err     error
}

const (
	idempotentOutcome = "idempotent"
	successOutcome    = "success"
	errorOutcome      = "error"
)

// IdempotentDecision creates a DecisionResult indicating no state change is
// needed.
func IdempotentDecision() DecisionResult {
	return DecisionResult{Outcome: idempotentOutcome}
}

// SuccessDecision creates a DecisionResult indicating the operation passed
// every precondition and its effects should be applied.
func SuccessDecision() DecisionResult {
	return DecisionResult{Outcome: successOutcome}
}

// ErrorDecision creates a DecisionResult indicating a rejected precondition.
func ErrorDecision(err error) DecisionResult {
	return DecisionResult{Outcome: errorOutcome, Err: err}
}

// ShouldApply returns true if the decision's effects must be written.
func (r DecisionResult) ShouldApply() bool {
	return r.Outcome == successOutcome
}

// IsIdempotent returns true if no state change is needed.
func (r DecisionResult) IsIdempotent() bool {
	return r.Outcome == idempotentOutcome
}

// HasError returns the rejection if there is one, otherwise nil.
func (r DecisionResult) HasError() error {
	if r.Outcome == errorOutcome {
		return r.Err
	}

	return nil
}
