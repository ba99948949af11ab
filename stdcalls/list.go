package stdcalls

import (
	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/node"
	"github.com/ironbee/predicate/origin"
)

// listImpl backs the list-literal call the parser builds for `[...]`
// syntax. Validate has nothing to check: any arity and any argument shape
// is a well-formed list.
type listImpl struct{}

func (listImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {}

// Transform folds a list call whose children are all Literal nodes into a
// single Literal wrapping a []Value, once transforms reach fixpoint (the
// resolution SPEC_FULL.md §5 records for the list-literal-vs-list-of-
// children ambiguity).
func (listImpl) Transform(n *node.Node, m node.Mutator) bool {
	children := n.Children()
	values := make([]node.Value, 0, len(children))
	for _, c := range children {
		if c.Kind() != node.KindLiteral {
			return false
		}
		values = append(values, c.Value())
	}
	clone := node.NewLiteral(node.List(values))
	clone.AddOrigin(origin.Synthetic())
	canon := m.Merge(clone)
	if err := m.Replace(n, canon); err != nil {
		return false
	}
	return true
}

func (listImpl) PreEvaluate(n *node.Node, env node.Environment) error { return nil }

// Eval assembles the current value of each child into a list, finishing
// once every child has. A list with non-Literal (i.e. not constant-folded)
// children can still be evaluated at runtime this way; it is just never
// folded away at configuration time.
func (listImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	children := n.Children()
	values := make([]node.Value, 0, len(children))
	allFinished := true
	for _, c := range children {
		v, err := state.Eval(c)
		if err != nil {
			return node.Null(), err
		}
		values = append(values, v)
		if !state.Finished(c) {
			allFinished = false
		}
	}
	result := node.List(values)
	if allFinished {
		state.SetValue(n, result)
	}
	return result, nil
}
