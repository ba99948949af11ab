package eval

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironbee/predicate/dag"
	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/lifecycle"
	"github.com/ironbee/predicate/node"
)

type noopImpl struct{}

func (noopImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {}
func (noopImpl) Transform(n *node.Node, m node.Mutator) bool                     { return false }
func (noopImpl) PreEvaluate(n *node.Node, env node.Environment) error            { return nil }
func (noopImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	return node.Null(), nil
}

// orImpl evaluates children left to right, stopping at the first truthy
// result without forcing any later child.
type orImpl struct{}

func (orImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {}
func (orImpl) Transform(n *node.Node, m node.Mutator) bool                     { return false }
func (orImpl) PreEvaluate(n *node.Node, env node.Environment) error            { return nil }
func (orImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	for _, c := range n.Children() {
		v, err := state.Eval(c)
		if err != nil {
			return node.Null(), err
		}
		if i, _ := v.AsInt(); i != 0 {
			state.SetValue(n, node.Int(1))
			return node.Int(1), nil
		}
	}
	state.SetValue(n, node.Int(0))
	return node.Int(0), nil
}

// poisonImpl fails the test if its Eval is ever invoked.
type poisonImpl struct{ t *testing.T }

func (poisonImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {}
func (poisonImpl) Transform(n *node.Node, m node.Mutator) bool                     { return false }
func (poisonImpl) PreEvaluate(n *node.Node, env node.Environment) error            { return nil }
func (p poisonImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	p.t.Fatal("poison: should not have been evaluated (short-circuit broken)")
	return node.Null(), nil
}

// streamingImpl takes three Eval calls to finish, returning a partial count
// without calling SetValue until the third.
type streamingImpl struct {
	calls map[*node.Node]int
}

func (s *streamingImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {}
func (s *streamingImpl) Transform(n *node.Node, m node.Mutator) bool                     { return false }
func (s *streamingImpl) PreEvaluate(n *node.Node, env node.Environment) error            { return nil }
func (s *streamingImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	s.calls[n]++
	count := s.calls[n]
	if count >= 3 {
		state.SetValue(n, node.Int(int64(count)))
		return node.Int(int64(count)), nil
	}
	return node.Int(int64(count)), nil
}

func buildFrozen(t *testing.T, root *node.Node, factory *node.CallFactory) lifecycle.Frozen {
	t.Helper()
	g := dag.New()
	merged := g.Merge(root)
	g.AddRoot(merged)
	frozen, err := lifecycle.Run(context.Background(), g, factory, nil, lifecycle.Options{})
	require.NoError(t, err)
	return frozen
}

func TestPerTransaction_EvalLiteral_FinishesImmediately(t *testing.T) {
	t.Parallel()

	lit := node.NewLiteral(node.Int(5))
	factory := node.NewCallFactory()
	frozen := buildFrozen(t, lit, factory)
	root, ok := frozen.Root(0)
	require.True(t, ok)

	pt := New(frozen, factory, nil)
	v, finished, err := pt.Query(root)
	require.NoError(t, err)
	assert.True(t, finished)
	got, _ := v.AsInt()
	assert.Equal(t, int64(5), got)
}

func TestPerTransaction_ShortCircuit_SkipsLaterChildren(t *testing.T) {
	t.Parallel()

	factory := node.NewCallFactory()
	require.NoError(t, factory.Register("or", orImpl{}))
	require.NoError(t, factory.Register("poison", poisonImpl{t: t}))

	call := node.NewCall("or", []*node.Node{
		node.NewLiteral(node.Int(1)),
		node.NewCall("poison", nil),
	})
	frozen := buildFrozen(t, call, factory)
	root, ok := frozen.Root(0)
	require.True(t, ok)

	pt := New(frozen, factory, nil)
	v, finished, err := pt.Query(root)
	require.NoError(t, err)
	assert.True(t, finished)
	got, _ := v.AsInt()
	assert.Equal(t, int64(1), got)
}

func TestPerTransaction_Streaming_RequiresMultipleQueries(t *testing.T) {
	t.Parallel()

	factory := node.NewCallFactory()
	impl := &streamingImpl{calls: make(map[*node.Node]int)}
	require.NoError(t, factory.Register("count", impl))

	call := node.NewCall("count", nil)
	frozen := buildFrozen(t, call, factory)
	root, ok := frozen.Root(0)
	require.True(t, ok)

	pt := New(frozen, factory, nil)

	v, finished, err := pt.Query(root)
	require.NoError(t, err)
	assert.False(t, finished)
	got, _ := v.AsInt()
	assert.Equal(t, int64(1), got)

	_, finished, err = pt.Query(root)
	require.NoError(t, err)
	assert.False(t, finished)

	v, finished, err = pt.Query(root)
	require.NoError(t, err)
	assert.True(t, finished)
	got, _ = v.AsInt()
	assert.Equal(t, int64(3), got)

	// Once finished, a further query is a cheap idempotent no-op.
	v, finished, err = pt.Query(root)
	require.NoError(t, err)
	assert.True(t, finished)
	got, _ = v.AsInt()
	assert.Equal(t, int64(3), got)
}

func TestPerTransaction_Eval_UnknownCall_ReturnsError(t *testing.T) {
	t.Parallel()

	factory := node.NewCallFactory()
	call := node.NewCall("ghost", nil)
	frozen := buildFrozen(t, call, factory)
	root, ok := frozen.Root(0)
	require.True(t, ok)

	// ghost is never registered, so the lifecycle run above skips it during
	// validate/transform/pre_evaluate; eval-time lookup must still fail.
	pt := New(frozen, factory, nil)
	_, _, err := pt.Query(root)
	assert.Error(t, err)
}

// countingImpl records how many times Eval was invoked on each node during
// a single Query call, for asserting spec.md §8 property 7: a sub-node
// shared by two roots is evaluated at most once per query.
type countingImpl struct {
	counts map[*node.Node]int
}

func (c *countingImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {}
func (c *countingImpl) Transform(n *node.Node, m node.Mutator) bool                     { return false }
func (c *countingImpl) PreEvaluate(n *node.Node, env node.Environment) error            { return nil }
func (c *countingImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	c.counts[n]++
	var sum int64
	for _, ch := range n.Children() {
		v, err := state.Eval(ch)
		if err != nil {
			return node.Null(), err
		}
		i, _ := v.AsInt()
		sum += i
	}
	result := node.Int(sum + 1)
	state.SetValue(n, result)
	return result, nil
}

func TestPerTransaction_SharedSubnode_EvaluatedOncePerQuery(t *testing.T) {
	t.Parallel()

	impl := &countingImpl{counts: make(map[*node.Node]int)}
	factory := node.NewCallFactory()
	require.NoError(t, factory.Register("count1", impl))

	// Both children of the root are the same node object, the shape a real
	// CSE merge produces for two structurally-equal subexpressions; Eval
	// must still only be invoked on it once even though the root's Eval
	// visits it through both child slots.
	shared := node.NewCall("count1", nil)
	root := node.NewCall("count1", []*node.Node{shared, shared})

	g := dag.New()
	merged := g.Merge(root)
	require.Same(t, merged.ChildAt(0), merged.ChildAt(1))
	g.AddRoot(merged)

	frozen, err := lifecycle.Run(context.Background(), g, factory, nil, lifecycle.Options{})
	require.NoError(t, err)

	rootFrozen, ok := frozen.Root(0)
	require.True(t, ok)

	pt := New(frozen, factory, nil)
	_, _, err = pt.Query(rootFrozen)
	require.NoError(t, err)

	assert.Equal(t, 1, impl.counts[rootFrozen.ChildAt(0)], "shared child must be evaluated exactly once per query call")
}

func TestTransaction_Field(t *testing.T) {
	t.Parallel()

	tx := NewTransaction(map[string]node.Value{"x": node.Int(42)})
	v, ok := tx.Field("x")
	require.True(t, ok)
	got, _ := v.AsInt()
	assert.Equal(t, int64(42), got)

	_, ok = tx.Field("missing")
	assert.False(t, ok)
}
