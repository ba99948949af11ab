package template

import (
	"fmt"

	"github.com/ironbee/predicate/diag"
)

// DefinitionError wraps a diag.Issue explaining why Define refused a
// template: an undeclared-parameter ref, or a name collision with an
// existing call.
type DefinitionError struct {
	Issue diag.Issue
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid template definition: %s", e.Issue.Message())
}
