package lifecycle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironbee/predicate/dag"
	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/node"
	"github.com/ironbee/predicate/origin"
)

// noopImpl is a CallImpl that validates, transforms, and pre-evaluates
// without doing anything, usable for any call name in a clean-run test.
type noopImpl struct{}

func (noopImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {}
func (noopImpl) Transform(n *node.Node, m node.Mutator) bool                     { return false }
func (noopImpl) PreEvaluate(n *node.Node, env node.Environment) error            { return nil }
func (noopImpl) Eval(n *node.Node, state node.EvalState, env node.Environment) (node.Value, error) {
	return node.Null(), nil
}

// failingValidateImpl reports a Fatal/Error diagnostic on a chosen phase.
type failingValidateImpl struct {
	noopImpl
	phase    node.Phase
	severity diag.Severity
}

func (f failingValidateImpl) Validate(n *node.Node, phase node.Phase, result *diag.Collector) {
	if phase != f.phase {
		return
	}
	result.Collect(diag.NewIssue(f.severity, diag.E_VALIDATE_NODE, "bad arity").
		WithDetails(diag.CallNode(n.Name(), n.String())...).
		Build())
}

// oscillatingImpl toggles a child's value forever, so transform never
// reaches a fixpoint.
type oscillatingImpl struct {
	noopImpl
}

func (oscillatingImpl) Transform(n *node.Node, m node.Mutator) bool {
	cur, _ := n.ChildAt(0).Value().AsInt()
	next := node.NewLiteral(node.Int(cur + 1))
	n.SetChildAt(0, m.Merge(next))
	return true
}

// failingPreEvaluateImpl always fails PreEvaluate.
type failingPreEvaluateImpl struct {
	noopImpl
}

func (failingPreEvaluateImpl) PreEvaluate(n *node.Node, env node.Environment) error {
	return assert.AnError
}

type stubEnv struct{}

func (stubEnv) Field(name string) (node.Value, bool) { return node.Null(), false }

func buildSimpleGraph(t *testing.T, callName string) (*dag.MergeGraph, *node.CallFactory, *node.Node) {
	t.Helper()
	g := dag.New()
	lit := node.NewLiteral(node.Int(1))
	call := node.NewCall(callName, []*node.Node{lit})
	call.AddOrigin(origin.Tag("rule.pred:1"))
	merged := g.Merge(call)
	g.AddRoot(merged)
	return g, node.NewCallFactory(), merged
}

func TestRun_CleanGraph_Succeeds(t *testing.T) {
	t.Parallel()

	g, factory, _ := buildSimpleGraph(t, "frob")
	require.NoError(t, factory.Register("frob", noopImpl{}))

	frozen, err := Run(context.Background(), g, factory, stubEnv{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, frozen.RootCount())
	assert.Equal(t, 2, frozen.IndexLimit())

	root, ok := frozen.Root(0)
	require.True(t, ok)
	assert.Equal(t, "frob", root.Name())
}

func TestRun_PreValidateError_AbortsBeforeTransform(t *testing.T) {
	t.Parallel()

	g, factory, _ := buildSimpleGraph(t, "frob")
	require.NoError(t, factory.Register("frob", failingValidateImpl{phase: node.PhasePre, severity: diag.Error}))

	var reported []diag.Issue
	opts := Options{Reporter: ReporterFunc(func(_ context.Context, issue diag.Issue) {
		reported = append(reported, issue)
	})}

	_, err := Run(context.Background(), g, factory, stubEnv{}, opts)
	require.Error(t, err)
	require.Len(t, reported, 1)
	assert.Equal(t, diag.E_VALIDATE_NODE, reported[0].Code())
	require.Len(t, reported[0].RelatedRoots(), 1)
}

func TestRun_PostValidateError_StillRunsTransform(t *testing.T) {
	t.Parallel()

	g, factory, _ := buildSimpleGraph(t, "frob")
	require.NoError(t, factory.Register("frob", failingValidateImpl{phase: node.PhasePost, severity: diag.Fatal}))

	_, err := Run(context.Background(), g, factory, stubEnv{}, Options{})
	require.Error(t, err)
}

func TestRun_WarningDuringValidate_DoesNotAbort(t *testing.T) {
	t.Parallel()

	g, factory, _ := buildSimpleGraph(t, "frob")
	require.NoError(t, factory.Register("frob", failingValidateImpl{phase: node.PhasePre, severity: diag.Warning}))

	_, err := Run(context.Background(), g, factory, stubEnv{}, Options{})
	require.NoError(t, err)
}

func TestRun_NonconvergentTransform_Aborts(t *testing.T) {
	t.Parallel()

	g, factory, _ := buildSimpleGraph(t, "osc")
	require.NoError(t, factory.Register("osc", oscillatingImpl{}))

	opts := Options{MaxTransformIterations: 5}
	_, err := Run(context.Background(), g, factory, stubEnv{}, opts)
	require.Error(t, err)

	var nc *NonconvergentError
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, diag.E_TRANSFORM_NONCONVERGENT, nc.Issue.Code())
}

func TestRun_PreEvaluateError_Aggregated(t *testing.T) {
	t.Parallel()

	g, factory, _ := buildSimpleGraph(t, "frob")
	require.NoError(t, factory.Register("frob", failingPreEvaluateImpl{}))

	_, err := Run(context.Background(), g, factory, stubEnv{}, Options{})
	require.Error(t, err)
}

func TestRun_IndexAssignment_TopDownDeterministic(t *testing.T) {
	t.Parallel()

	g := dag.New()
	factory := node.NewCallFactory()
	require.NoError(t, factory.Register("frob", noopImpl{}))

	shared := node.NewLiteral(node.Int(7))
	left := node.NewCall("frob", []*node.Node{shared})
	right := node.NewCall("frob", []*node.Node{shared})
	left = g.Merge(left)
	right = g.Merge(right)
	g.AddRoot(left)
	g.AddRoot(right)

	frozen, err := Run(context.Background(), g, factory, stubEnv{}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, frozen.RootCount())

	rootA, ok := frozen.Root(0)
	require.True(t, ok)
	rootB, ok := frozen.Root(1)
	require.True(t, ok)
	assert.Equal(t, 0, rootA.Index())
	assert.Equal(t, 0, rootB.Index())
	assert.Equal(t, 1, rootA.ChildAt(0).Index())
}

func TestFrozen_Root_OutOfRange(t *testing.T) {
	t.Parallel()

	f := Frozen{}
	_, ok := f.Root(0)
	assert.False(t, ok)
}

// TestRun_IndexAssignment_IsPermutation exercises spec.md §8 property 5 over
// a graph shaped as a small random-ish binary fan: after indexing, the
// reachable node indices must be a permutation of [0, N), not merely
// distinct or merely in range.
func TestRun_IndexAssignment_IsPermutation(t *testing.T) {
	t.Parallel()

	g := dag.New()
	factory := node.NewCallFactory()
	require.NoError(t, factory.Register("frob", noopImpl{}))

	leaves := make([]*node.Node, 5)
	for i := range leaves {
		leaves[i] = node.NewLiteral(node.Int(int64(i)))
	}
	var roots []*node.Node
	for i := 0; i < 3; i++ {
		call := node.NewCall("frob", []*node.Node{leaves[i], leaves[(i+1)%len(leaves)]})
		roots = append(roots, g.Merge(call))
	}
	for _, r := range roots {
		g.AddRoot(r)
	}

	frozen, err := Run(context.Background(), g, factory, stubEnv{}, Options{})
	require.NoError(t, err)

	seen := make(map[int]bool)
	order := walkTopDown(g)
	require.Equal(t, frozen.RootCount(), len(roots))
	for _, n := range order {
		idx := n.Index()
		require.False(t, seen[idx], "index %d assigned to more than one node", idx)
		seen[idx] = true
	}
	for i := 0; i < len(order); i++ {
		assert.True(t, seen[i], "index %d missing: indices must be a permutation of [0, N)", i)
	}
}

// TestValidatePhase_Idempotent_NoInterveningMutation exercises spec.md §8
// property 10: running validate(PRE) twice in succession with no mutation
// between the two runs reports the same diagnostics both times.
func TestValidatePhase_Idempotent_NoInterveningMutation(t *testing.T) {
	t.Parallel()

	g, factory, _ := buildSimpleGraph(t, "bad")
	require.NoError(t, factory.Register("bad",
		failingValidateImpl{phase: node.PhasePre, severity: diag.Error}))

	var first, second []string
	opts1 := Options{Reporter: ReporterFunc(func(ctx context.Context, issue diag.Issue) {
		first = append(first, issue.Message())
	})}
	err1 := validatePhase(context.Background(), g, factory, node.PhasePre, opts1)

	opts2 := Options{Reporter: ReporterFunc(func(ctx context.Context, issue diag.Issue) {
		second = append(second, issue.Message())
	})}
	err2 := validatePhase(context.Background(), g, factory, node.PhasePre, opts2)

	require.Error(t, err1)
	require.Error(t, err2)
	assert.Equal(t, first, second)
}
