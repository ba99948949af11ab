package stdcalls

import (
	"fmt"

	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/node"
)

// boolConstImpl implements the nullary true/false calls: a fixed value,
// no children, nothing to transform or prepare.
type boolConstImpl struct {
	value int64
}

func (b boolConstImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {
	if phase != node.PhasePost || n.Arity() == 0 {
		return
	}
	result.Collect(diag.NewIssue(diag.Error, diag.E_VALIDATE_NODE,
		fmt.Sprintf("%q takes no arguments", n.Name())).
		WithExpectedGot("0", fmt.Sprintf("%d", n.Arity())).
		WithDetails(diag.CallNode(n.Name(), n.String())...).
		WithOrigins(n.Origins()).
		Build())
}

func (boolConstImpl) Transform(n *node.Node, m node.Mutator) bool { return false }
func (boolConstImpl) PreEvaluate(n *node.Node, env node.Environment) error {
	return nil
}

func (b boolConstImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	v := node.Int(b.value)
	state.SetValue(n, v)
	return v, nil
}

// andOrImpl implements the short-circuiting and/or combinators. For and,
// shortCircuitOn is false: the first falsy child determines a false
// result without evaluating the rest. For or, shortCircuitOn is true: the
// first truthy child determines a true result without evaluating the rest.
type andOrImpl struct {
	name           string
	shortCircuitOn bool
}

func (a andOrImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {
	if phase != node.PhasePost || n.Arity() > 0 {
		return
	}
	result.Collect(diag.NewIssue(diag.Error, diag.E_VALIDATE_NODE,
		fmt.Sprintf("%q requires at least one argument", a.name)).
		WithDetails(diag.CallNode(n.Name(), n.String())...).
		WithOrigins(n.Origins()).
		Build())
}

// Transform folds away a child that already statically determines the
// combinator's result (the mechanism spec.md §8 scenario S2 describes),
// and folds an all-constant combinator into a single true/false call.
func (a andOrImpl) Transform(n *node.Node, m node.Mutator) bool {
	determining := FalseCallName
	if a.shortCircuitOn {
		determining = TrueCallName
	}
	opposite := TrueCallName
	if a.shortCircuitOn {
		opposite = FalseCallName
	}

	allOpposite := n.Arity() > 0
	for _, c := range n.Children() {
		if isBoolConst(c, determining) {
			canon := m.Merge(node.NewCall(determining, nil))
			if err := m.Replace(n, canon); err != nil {
				return false
			}
			return true
		}
		if !isBoolConst(c, opposite) {
			allOpposite = false
		}
	}
	if allOpposite {
		canon := m.Merge(node.NewCall(opposite, nil))
		if err := m.Replace(n, canon); err != nil {
			return false
		}
		return true
	}
	return false
}

func (andOrImpl) PreEvaluate(n *node.Node, env node.Environment) error { return nil }

func (a andOrImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	allFinished := true
	for _, c := range n.Children() {
		v, err := state.Eval(c)
		if err != nil {
			return node.Null(), err
		}
		if truthy(v) == a.shortCircuitOn {
			result := node.Int(0)
			if a.shortCircuitOn {
				result = node.Int(1)
			}
			state.SetValue(n, result)
			return result, nil
		}
		if !state.Finished(c) {
			allFinished = false
		}
	}
	result := node.Int(1)
	if a.shortCircuitOn {
		result = node.Int(0)
	}
	if allFinished {
		state.SetValue(n, result)
	}
	return result, nil
}

// notImpl implements logical negation over a single argument.
type notImpl struct{}

func (notImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {
	if phase != node.PhasePost || n.Arity() == 1 {
		return
	}
	result.Collect(diag.NewIssue(diag.Error, diag.E_VALIDATE_NODE, "\"not\" takes exactly one argument").
		WithExpectedGot("1", fmt.Sprintf("%d", n.Arity())).
		WithDetails(diag.CallNode(n.Name(), n.String())...).
		WithOrigins(n.Origins()).
		Build())
}

func (notImpl) Transform(n *node.Node, m node.Mutator) bool {
	if n.Arity() != 1 {
		return false
	}
	child := n.ChildAt(0)
	var resultName string
	switch {
	case isBoolConst(child, TrueCallName):
		resultName = FalseCallName
	case isBoolConst(child, FalseCallName):
		resultName = TrueCallName
	default:
		return false
	}
	canon := m.Merge(node.NewCall(resultName, nil))
	if err := m.Replace(n, canon); err != nil {
		return false
	}
	return true
}

func (notImpl) PreEvaluate(n *node.Node, env node.Environment) error { return nil }

func (notImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	if n.Arity() != 1 {
		return node.Null(), fmt.Errorf("stdcalls: not: want 1 argument, got %d", n.Arity())
	}
	v, err := state.Eval(n.ChildAt(0))
	if err != nil {
		return node.Null(), err
	}
	result := node.Int(0)
	if !truthy(v) {
		result = node.Int(1)
	}
	if state.Finished(n.ChildAt(0)) {
		state.SetValue(n, result)
	}
	return result, nil
}
