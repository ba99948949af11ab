package stdcalls

import (
	"fmt"

	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/node"
)

// streqImpl compares two string-valued arguments for equality.
type streqImpl struct{}

func (streqImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {
	if phase != node.PhasePost || n.Arity() == 2 {
		return
	}
	result.Collect(diag.NewIssue(diag.Error, diag.E_VALIDATE_NODE, "\"streq\" takes exactly two arguments").
		WithExpectedGot("2", fmt.Sprintf("%d", n.Arity())).
		WithDetails(diag.CallNode(n.Name(), n.String())...).
		WithOrigins(n.Origins()).
		Build())
}

func (streqImpl) Transform(n *node.Node, m node.Mutator) bool { return false }
func (streqImpl) PreEvaluate(n *node.Node, env node.Environment) error {
	return nil
}

func (streqImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	if n.Arity() != 2 {
		return node.Null(), fmt.Errorf("stdcalls: streq: want 2 arguments, got %d", n.Arity())
	}
	left, right := n.ChildAt(0), n.ChildAt(1)

	a, err := state.Eval(left)
	if err != nil {
		return node.Null(), err
	}
	b, err := state.Eval(right)
	if err != nil {
		return node.Null(), err
	}

	as, _ := a.AsString()
	bs, _ := b.AsString()
	result := node.Int(0)
	if as == bs {
		result = node.Int(1)
	}
	if state.Finished(left) && state.Finished(right) {
		state.SetValue(n, result)
	}
	return result, nil
}
