package lifecycle

import (
	"fmt"

	"github.com/ironbee/predicate/diag"
)

// StateError wraps a diag.Issue describing why assert_valid's internal
// consistency audit failed (spec.md §4.4 step 1/4: "on failure, log and
// abort context close with an invalid-state error").
type StateError struct {
	Issue diag.Issue
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid state: %s", e.Issue.Message())
}

// NonconvergentError reports that transform-to-fixpoint hit its iteration
// cap without reaching a fixpoint (spec.md §4.4 step 3, E_TRANSFORM_NONCONVERGENT).
type NonconvergentError struct {
	Issue diag.Issue
}

func (e *NonconvergentError) Error() string {
	return fmt.Sprintf("transform did not converge: %s", e.Issue.Message())
}
