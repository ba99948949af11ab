package template

import (
	"fmt"

	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/node"
)

// Register adds the "ref" call to factory, so that parsing a template
// body's (ref "x") sub-nodes resolves against the CallFactory the way any
// other call name does (parser/parser.go's parseCall looks up every call
// name at parse time). "ref" itself does nothing at evaluation time: every
// occurrence inside a defined template's body is substituted away by
// instantiate before the instantiated call's Transform ever runs.
func Register(factory *node.CallFactory) error {
	return factory.Register(RefCallName, refImpl{})
}

type refImpl struct{}

func (refImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {}

func (refImpl) Transform(n *node.Node, m node.Mutator) bool { return false }

func (refImpl) PreEvaluate(n *node.Node, env node.Environment) error { return nil }

// Eval is unreachable in any graph built through Define/Transform: a ref
// node only ever appears inside a template's own body, and instantiate
// replaces every one of them before the result is merged into the graph.
func (refImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	return node.Null(), fmt.Errorf("template: %q referenced outside a template instantiation", RefCallName)
}
