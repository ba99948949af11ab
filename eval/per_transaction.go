package eval

import (
	"fmt"

	"github.com/ironbee/predicate/lifecycle"
	"github.com/ironbee/predicate/node"
)

// PerTransaction is one transaction's evaluation state over a frozen graph:
// the value/finished arrays of §4.6, sized to the graph's index_limit.
// A PerTransaction is touched only by the transaction's own handling
// thread; it holds no locks and expects none (§5, "no synchronization
// primitives inside a PerTransaction").
type PerTransaction struct {
	frozen  lifecycle.Frozen
	factory *node.CallFactory
	env     node.Environment

	values   []node.Value
	started  []bool
	finished []bool
}

// New builds a PerTransaction over frozen, dispatching call evaluation
// through factory and resolving external fields through env. Per §4.6's
// initialization step, every node reachable from frozen's roots has its
// slot zeroed via a BFS walk before New returns.
func New(frozen lifecycle.Frozen, factory *node.CallFactory, env node.Environment) *PerTransaction {
	n := frozen.IndexLimit()
	pt := &PerTransaction{
		frozen:   frozen,
		factory:  factory,
		env:      env,
		values:   make([]node.Value, n),
		started:  make([]bool, n),
		finished: make([]bool, n),
	}
	pt.initializeSlots()
	return pt
}

func (pt *PerTransaction) initializeSlots() {
	visited := make(map[*node.Node]struct{})
	var queue []*node.Node
	for i := 0; i < pt.frozen.RootCount(); i++ {
		if r, ok := pt.frozen.Root(i); ok && r != nil {
			queue = append(queue, r)
		}
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == nil {
			continue
		}
		if _, ok := visited[n]; ok {
			continue
		}
		visited[n] = struct{}{}
		if idx := n.Index(); idx >= 0 && idx < len(pt.values) {
			pt.values[idx] = node.Null()
			pt.started[idx] = false
			pt.finished[idx] = false
		}
		queue = append(queue, n.Children()...)
	}
}

// Query evaluates root (recursively descending into its children as root's
// own CallImpl.Eval requires) and returns its current value and whether
// that value is final, per §4.6's query(root) contract.
func (pt *PerTransaction) Query(root *node.Node) (node.Value, bool, error) {
	v, err := pt.Eval(root)
	if err != nil {
		return node.Null(), false, err
	}
	return v, pt.Finished(root), nil
}

// Value returns n's memoized value and whether any value has yet been
// recorded for it (distinct from Finished: a streaming node may have a
// recorded partial value without being finished).
func (pt *PerTransaction) Value(n *node.Node) (node.Value, bool) {
	idx := n.Index()
	return pt.values[idx], pt.started[idx]
}

// SetValue records n's memoized value and marks it finished. Terminal: a
// later SetValue call on the same node simply overwrites an already-final
// value, which callers should not do.
func (pt *PerTransaction) SetValue(n *node.Node, v node.Value) {
	idx := n.Index()
	pt.values[idx] = v
	pt.started[idx] = true
	pt.finished[idx] = true
}

// Finished reports whether n has a final, non-reevaluable value.
func (pt *PerTransaction) Finished(n *node.Node) bool {
	return pt.finished[n.Index()]
}

// Eval forces n's evaluation for this transaction: a no-op, idempotent-safe
// early return if n is already finished, otherwise n's CallImpl.Eval is
// invoked (or, for a Literal, its value is recorded and finished
// immediately). Implements [node.EvalState] so a CallImpl.Eval can force
// its children's evaluation the same way PerTransaction does for a root.
func (pt *PerTransaction) Eval(n *node.Node) (node.Value, error) {
	idx := n.Index()
	if pt.finished[idx] {
		return pt.values[idx], nil
	}

	if n.Kind() == node.KindLiteral {
		pt.SetValue(n, n.Value())
		return pt.values[idx], nil
	}

	impl, ok := pt.factory.Lookup(n.Name())
	if !ok {
		return node.Null(), fmt.Errorf("eval: node %d: unknown call %q", idx, n.Name())
	}
	v, err := impl.Eval(n, pt, pt.env)
	if err != nil {
		return node.Null(), err
	}
	pt.values[idx] = v
	pt.started[idx] = true
	return v, nil
}
