package template

import (
	"fmt"

	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/node"
	"github.com/ironbee/predicate/origin"
)

// RefCallName is the call name a template body uses to reference one of its
// formal parameters: (ref "x") stands for the actual argument bound to the
// parameter named "x" at instantiation.
const RefCallName = "ref"

// Define registers name as a new call in factory, whose instantiations
// expand to a copy of body with every (ref "p") sub-node replaced by the
// corresponding actual argument. params is the declared, ordered parameter
// list; every ref in body must name one of them.
//
// Define fails, leaving factory unchanged, if body contains a ref to an
// undeclared parameter (E_TEMPLATE_UNDECLARED_PARAM) or if name is already
// registered (E_TEMPLATE_REDEFINED).
func Define(factory *node.CallFactory, name string, params []string, body *node.Node) error {
	if err := validateRefs(name, body, params); err != nil {
		return err
	}

	impl := &callImpl{name: name, params: params, body: body}
	if err := factory.Register(name, impl); err != nil {
		issue := diag.NewIssue(diag.Error, diag.E_TEMPLATE_REDEFINED,
			fmt.Sprintf("template %q collides with an existing call", name)).
			WithDetails(diag.TemplateParam(name, "")...).
			Build()
		return &DefinitionError{Issue: issue}
	}
	return nil
}

// validateRefs walks body for every RefCallName occurrence and confirms its
// parameter argument names a declared parameter.
func validateRefs(templateName string, body *node.Node, params []string) error {
	declared := make(map[string]struct{}, len(params))
	for _, p := range params {
		declared[p] = struct{}{}
	}

	var walk func(n *node.Node) error
	walk = func(n *node.Node) error {
		if n == nil {
			return nil
		}
		if n.Kind() == node.KindCall && n.Name() == RefCallName {
			paramName, ok := refParamName(n)
			if !ok {
				issue := diag.NewIssue(diag.Error, diag.E_TEMPLATE_UNDECLARED_PARAM,
					fmt.Sprintf("template %q: ref must name a single string parameter", templateName)).
					WithDetails(diag.TemplateParam(templateName, "")...).
					Build()
				return &DefinitionError{Issue: issue}
			}
			if _, ok := declared[paramName]; !ok {
				issue := diag.NewIssue(diag.Error, diag.E_TEMPLATE_UNDECLARED_PARAM,
					fmt.Sprintf("template %q: ref %q names an undeclared parameter", templateName, paramName)).
					WithDetails(diag.TemplateParam(templateName, paramName)...).
					Build()
				return &DefinitionError{Issue: issue}
			}
		}
		for _, c := range n.Children() {
			if err := walk(c); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(body)
}

// refParamName returns the parameter name a (ref "x") node names, or false
// if n is not shaped like a valid ref.
func refParamName(n *node.Node) (string, bool) {
	if n.Arity() != 1 {
		return "", false
	}
	child := n.ChildAt(0)
	if child == nil || child.Kind() != node.KindLiteral {
		return "", false
	}
	return child.Value().AsString()
}

// callImpl is the CallImpl registered for a defined template's name.
// Validate only checks arity, since arity is the one mismatch Transform
// cannot itself correct; Transform performs the actual instantiation.
type callImpl struct {
	name   string
	params []string
	body   *node.Node
}

// Validate reports E_TEMPLATE_ARITY at PhasePost if n still carries the
// template's name with the wrong number of arguments -- which only happens
// when Transform refused to instantiate it for that reason.
func (t *callImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {
	if phase != node.PhasePost {
		return
	}
	if n.Arity() == len(t.params) {
		return
	}
	result.Collect(diag.NewIssue(diag.Error, diag.E_TEMPLATE_ARITY,
		fmt.Sprintf("template %q instantiated with %d argument(s), want %d", t.name, n.Arity(), len(t.params))).
		WithExpectedGot(fmt.Sprintf("%d", len(t.params)), fmt.Sprintf("%d", n.Arity())).
		WithDetails(diag.TemplateParam(t.name, "")...).
		WithOrigins(n.Origins()).
		Build())
}

// Transform replaces n with a clone of the template body, substituting every
// ref sub-node with n's corresponding actual argument. It declines (leaving
// n untouched, for Validate to flag) when n's arity does not match the
// declared parameter count.
func (t *callImpl) Transform(n *node.Node, m node.Mutator) bool {
	if n.Arity() != len(t.params) {
		return false
	}

	args := make(map[string]*node.Node, len(t.params))
	for i, p := range t.params {
		args[p] = n.ChildAt(i)
	}

	clone := instantiate(t.body, args)
	canon := m.Merge(clone)
	if err := m.Replace(n, canon); err != nil {
		return false
	}
	return true
}

// PreEvaluate is a no-op: a fully-instantiated graph never retains a node
// named after a template (Transform always replaces it away on success).
func (t *callImpl) PreEvaluate(n *node.Node, env node.Environment) error {
	return nil
}

// Eval is unreachable in a correctly-transformed graph; see PreEvaluate.
func (t *callImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	return node.Null(), fmt.Errorf("template: %q should have been instantiated away by transform", t.name)
}

// instantiate returns a structural clone of body with every (ref "p")
// sub-node replaced by args[p].
func instantiate(body *node.Node, args map[string]*node.Node) *node.Node {
	if body.Kind() == node.KindCall && body.Name() == RefCallName {
		if paramName, ok := refParamName(body); ok {
			if actual, ok := args[paramName]; ok {
				return actual
			}
		}
	}

	if body.Kind() == node.KindLiteral {
		clone := node.NewLiteral(body.Value())
		clone.AddOrigin(origin.Synthetic())
		return clone
	}

	children := body.Children()
	cloned := make([]*node.Node, len(children))
	for i, c := range children {
		cloned[i] = instantiate(c, args)
	}
	clone := node.NewCall(body.Name(), cloned)
	clone.AddOrigin(origin.Synthetic())
	return clone
}
