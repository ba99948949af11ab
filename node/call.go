package node

import (
	"fmt"
	"sync"

	"github.com/ironbee/predicate/diag"
)

// Phase distinguishes the two evaluation-visitation orders a call may want
// to run additional work in: before children have values (Pre) or once a
// transform pass is otherwise settled (Post), per §4.4's validate(PRE|POST).
type Phase uint8

const (
	// PhasePre runs before a node's children are assumed transformed.
	PhasePre Phase = iota
	// PhasePost runs once transform has reached its fixpoint.
	PhasePost
)

// String returns a human-readable label for the phase.
func (p Phase) String() string {
	switch p {
	case PhasePre:
		return "pre"
	case PhasePost:
		return "post"
	default:
		return "unknown"
	}
}

// Mutator is the subset of MergeGraph operations a [CallImpl.Transform]
// implementation needs in order to rewrite the graph around a node: merge in
// newly-built subtrees and replace an existing node's occurrences with
// another, per the merge/replace primitives of §4.3. Declared here, at the
// foundation tier, to avoid node importing the dag package; dag.MergeGraph
// implements it.
type Mutator interface {
	// Merge returns the canonical representative for a structurally
	// equivalent node, inserting n as its own representative if none exists.
	Merge(n *Node) *Node
	// Replace rewrites every current parent edge pointing at old to point at
	// replacement instead. Returns an error and leaves the graph unchanged if
	// the substitution would introduce a cycle (§8 property 3).
	Replace(old, replacement *Node) error
}

// EvalState is the subset of per-transaction evaluation state a
// [CallImpl.Eval] implementation needs: reading and writing the memoized
// value and finished flag for a node, and forcing evaluation of another node
// (for calls, like an "and", that may short-circuit without evaluating all
// children). Declared here to avoid node importing the eval package; the
// eval package's per-transaction state implements it.
type EvalState interface {
	// Value returns the memoized value for n, if any has been recorded.
	Value(n *Node) (Value, bool)
	// SetValue records n's memoized value and marks it finished.
	SetValue(n *Node, v Value)
	// Finished reports whether n has a final (non-reevaluable) value.
	Finished(n *Node) bool
	// Eval forces evaluation of n, returning its value.
	Eval(n *Node) (Value, error)
}

// Environment is the minimal per-transaction external-data lookup a call's
// Eval may need: the bound value of an external field, if any. The eval
// package's per-transaction environment implements it.
type Environment interface {
	// Field returns the bound value for name and true, or (zero, false) if
	// name is unbound in this transaction.
	Field(name string) (Value, bool)
}

// CallImpl is the capability table for a call name: the complete set of
// variant-specific behavior a Call node may exercise, looked up by name
// rather than expressed as a distinct Go type per call (§9's redesign:
// "a single node type whose variant-specific behavior lives behind a
// capability table keyed by the call name"). Implementations need not
// provide meaningful behavior for every method; a no-op Transform or
// PreEvaluate is common and expected.
type CallImpl interface {
	// Validate checks n's arity and argument shapes, appending any issues
	// found to result. phase distinguishes the pre-transform and
	// post-transform validation passes of §4.4.
	Validate(n *Node, phase Phase, result *diag.Collector)

	// Transform rewrites n, typically by constructing replacement nodes and
	// calling Merge/Replace on m, and reports whether it changed anything.
	// Called repeatedly to a fixpoint by the lifecycle package.
	Transform(n *Node, m Mutator) (changed bool)

	// PreEvaluate performs any per-transaction setup n's Eval will depend on
	// (§4.4's pre_evaluate stage), such as compiling a pattern literal once
	// instead of once per Eval call.
	PreEvaluate(n *Node, env Environment) error

	// Eval computes n's value for the current transaction, consulting state
	// for already-memoized child values and forcing evaluation of children
	// it still needs via state.Eval.
	Eval(n *Node, state EvalState, env Environment) (Value, error)
}

// CallFactory is the registry mapping call names to their [CallImpl]
// capability tables (§4.2's call_factory). Registration is idempotent-
// forbidding: a name may be registered at most once, matching the
// teacher's registries' refusal to silently shadow an existing entry.
type CallFactory struct {
	mu    sync.RWMutex
	impls map[string]CallImpl
}

// NewCallFactory returns an empty factory.
func NewCallFactory() *CallFactory {
	return &CallFactory{impls: make(map[string]CallImpl)}
}

// Register adds impl under name. It returns an error if name is already
// registered.
func (f *CallFactory) Register(name string, impl CallImpl) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.impls[name]; exists {
		return fmt.Errorf("node: call %q already registered", name)
	}
	f.impls[name] = impl
	return nil
}

// Lookup returns the CallImpl registered under name, if any.
func (f *CallFactory) Lookup(name string) (CallImpl, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	impl, ok := f.impls[name]
	return impl, ok
}

// Construct returns the CallImpl registered under name, or the [diag.Issue]
// (coded E_UNKNOWN_CALL) describing the failure if name is unregistered.
func (f *CallFactory) Construct(name string) (CallImpl, *diag.Issue) {
	impl, ok := f.Lookup(name)
	if !ok {
		issue := diag.NewIssue(diag.Error, diag.E_UNKNOWN_CALL,
			fmt.Sprintf("unknown call %q", name)).
			WithDetail(diag.DetailKeyCallName, name).
			Build()
		return nil, &issue
	}
	return impl, nil
}

// Names returns the registered call names in no particular order.
func (f *CallFactory) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, 0, len(f.impls))
	for name := range f.impls {
		out = append(out, name)
	}
	return out
}
