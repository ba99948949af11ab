package dag

import (
	"fmt"

	"github.com/ironbee/predicate/diag"
)

// StateError wraps a diag.Issue coded under CategoryState: a MergeGraph
// mutation that was refused because performing it would have violated an
// invariant (a cycle, a parent/child inconsistency, a duplicate
// representative). The graph is left unchanged when a StateError is
// returned.
type StateError struct {
	Issue diag.Issue
}

func (e *StateError) Error() string {
	return fmt.Sprintf("invalid state: %s", e.Issue.Message())
}

func newStateError(code diag.Code, message string, details ...diag.Detail) *StateError {
	issue := diag.NewIssue(diag.Error, code, message).WithDetails(details...).Build()
	return &StateError{Issue: issue}
}

func cycleError(parentText, descendantText string) *StateError {
	return newStateError(diag.E_STATE_CYCLE,
		fmt.Sprintf("mutation refused: %s would become reachable from its own descendant %s", parentText, descendantText),
		diag.Detail{Key: diag.DetailKeyReason, Value: "cycle"},
		diag.Detail{Key: diag.DetailKeyNodeText, Value: parentText},
	)
}
