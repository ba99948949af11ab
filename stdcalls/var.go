package stdcalls

import (
	"fmt"

	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/node"
)

// varImpl looks up an external field by name, per-transaction, via the
// Environment a PerTransaction is constructed with. Its single argument is
// the field name, evaluated like any other sub-expression so it may itself
// be a template substitution result, not necessarily a bare literal.
type varImpl struct{}

func (varImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {
	if phase != node.PhasePost || n.Arity() == 1 {
		return
	}
	result.Collect(diag.NewIssue(diag.Error, diag.E_VALIDATE_NODE, "\"var\" takes exactly one argument").
		WithExpectedGot("1", fmt.Sprintf("%d", n.Arity())).
		WithDetails(diag.CallNode(n.Name(), n.String())...).
		WithOrigins(n.Origins()).
		Build())
}

func (varImpl) Transform(n *node.Node, m node.Mutator) bool { return false }
func (varImpl) PreEvaluate(n *node.Node, env node.Environment) error {
	return nil
}

func (varImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	if n.Arity() != 1 {
		return node.Null(), fmt.Errorf("stdcalls: var: want 1 argument, got %d", n.Arity())
	}
	nameNode := n.ChildAt(0)
	nameVal, err := state.Eval(nameNode)
	if err != nil {
		return node.Null(), err
	}
	if !state.Finished(nameNode) {
		return node.Null(), nil
	}
	name, _ := nameVal.AsString()

	var result node.Value
	if env != nil {
		if v, ok := env.Field(name); ok {
			result = v
		} else {
			result = node.Null()
		}
	} else {
		result = node.Null()
	}
	state.SetValue(n, result)
	return result, nil
}
