// Package lifecycle drives a dag.MergeGraph through the context-close
// sequence spec.md §4.4 defines: assert_valid, validate(PRE), transform to
// fixpoint, assert_valid, validate(POST), indexing, pre_evaluate, and
// freeze. It is invoked exactly once per configuration context.
package lifecycle

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	multierror "github.com/hashicorp/go-multierror"

	"github.com/ironbee/predicate/dag"
	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/internal/trace"
	"github.com/ironbee/predicate/node"
)

// DefaultMaxTransformIterations is the hard cap on transform-to-fixpoint
// passes before the run is aborted as non-convergent (spec.md §4.4 step 3).
const DefaultMaxTransformIterations = 1000

// Options configures a Run.
type Options struct {
	// Logger drives both operation-boundary tracing and the default
	// Reporter. A nil Logger (the zero value) makes both silent.
	Logger *slog.Logger

	// Reporter receives every diagnostic produced at any stage. Defaults to
	// a SlogReporter using Logger if unset.
	Reporter Reporter

	// IssueLimit bounds how many issues the collector for one node's
	// Validate call retains; 0 (diag.NoLimit) means unlimited.
	IssueLimit int

	// MaxTransformIterations overrides DefaultMaxTransformIterations if
	// positive.
	MaxTransformIterations int

	// DebugReport, if non-nil, receives a dag.MergeGraph.WriteDebugReport
	// dump immediately before and after the transform-to-fixpoint stage
	// (spec.md §6's PredicateDebugReport "before-transform, after-transform"
	// checkpoints).
	DebugReport io.Writer
}

func (o Options) reporter() Reporter {
	if o.Reporter != nil {
		return o.Reporter
	}
	return SlogReporter{Logger: o.Logger}
}

func (o Options) maxIterations() int {
	if o.MaxTransformIterations > 0 {
		return o.MaxTransformIterations
	}
	return DefaultMaxTransformIterations
}

// Frozen is the immutable result of a completed lifecycle run: the roots
// list and oracle-index->root map spec.md §4.4 step 8 builds, plus the
// index_limit assigned during indexing. The MergeGraph itself is not
// retained; holding a pointer into it after Run returns is a bug (spec.md
// §5, "Resource ownership").
type Frozen struct {
	roots      []*node.Node
	indexLimit int
}

// Root returns the node currently named by root index idx, or (nil, false)
// if idx is out of range.
func (f Frozen) Root(idx int) (*node.Node, bool) {
	if idx < 0 || idx >= len(f.roots) {
		return nil, false
	}
	return f.roots[idx], true
}

// RootCount returns the number of root indices assigned by add_root across
// the context's lifetime (not the number of distinct root nodes).
func (f Frozen) RootCount() int {
	return len(f.roots)
}

// IndexLimit returns the exclusive upper bound on node indices, i.e. the
// length the per-transaction value/finished arrays must be allocated with.
func (f Frozen) IndexLimit() int {
	return f.indexLimit
}

// Run executes the full context-close sequence against g, dispatching to
// factory for each call node's CallImpl and using env for pre_evaluate.
// Diagnostics from every stage are reported via opts.Reporter as they are
// produced; if any stage collects an Error or Fatal diagnostic, Run
// aggregates them (via go-multierror) into the returned error and aborts
// before running later stages.
func Run(ctx context.Context, g *dag.MergeGraph, factory *node.CallFactory, env node.Environment, opts Options) (frozen Frozen, err error) {
	op := trace.Begin(ctx, opts.Logger, "predicate.lifecycle.run")
	defer func() { op.End(err) }()

	if err = assertValid(g); err != nil {
		return Frozen{}, err
	}

	if err = validatePhase(ctx, g, factory, node.PhasePre, opts); err != nil {
		return Frozen{}, err
	}

	if opts.DebugReport != nil {
		fmt.Fprintln(opts.DebugReport, "-- before-transform --")
		g.WriteDebugReport(opts.DebugReport)
	}

	if err = transformToFixpoint(ctx, g, factory, opts); err != nil {
		return Frozen{}, err
	}

	if opts.DebugReport != nil {
		fmt.Fprintln(opts.DebugReport, "-- after-transform --")
		g.WriteDebugReport(opts.DebugReport)
	}

	if err = assertValid(g); err != nil {
		return Frozen{}, err
	}

	if err = validatePhase(ctx, g, factory, node.PhasePost, opts); err != nil {
		return Frozen{}, err
	}

	order := indexNodes(g)

	if err = preEvaluate(ctx, g, order, factory, env, opts); err != nil {
		return Frozen{}, err
	}

	return freeze(g, len(order)), nil
}

// assertValid runs the MergeGraph's internal consistency audit (spec.md
// §4.4 steps 1 and 4).
func assertValid(g *dag.MergeGraph) error {
	var buf bytes.Buffer
	if g.WriteValidationReport(&buf) {
		return nil
	}
	issue := diag.NewIssue(diag.Fatal, diag.E_INTERNAL, "merge graph failed internal consistency audit").
		WithDetail(diag.DetailKeyReason, buf.String()).
		Build()
	return &StateError{Issue: issue}
}

// walkTopDown returns every node reachable from g's roots in deterministic
// top-down BFS order (spec.md §4.4 step 6: "BFS from the root-index
// ordering"), visiting each distinct node exactly once.
func walkTopDown(g *dag.MergeGraph) []*node.Node {
	visited := make(map[*node.Node]struct{})
	var order []*node.Node
	queue := append([]*node.Node(nil), g.Roots()...)
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
		order = append(order, n)
		queue = append(queue, n.Children()...)
	}
	return order
}

// transitiveRoots returns every root that depends on n, directly or
// transitively, by walking n's parent back-references upward.
func transitiveRoots(g *dag.MergeGraph, n *node.Node) []*node.Node {
	visited := make(map[*node.Node]struct{})
	var roots []*node.Node
	var walk func(*node.Node)
	walk = func(cur *node.Node) {
		if cur == nil {
			return
		}
		if _, ok := visited[cur]; ok {
			return
		}
		visited[cur] = struct{}{}
		if g.IsRoot(cur) {
			roots = append(roots, cur)
		}
		for _, p := range cur.Parents() {
			walk(p)
		}
	}
	walk(n)
	return roots
}

// enrichWithRoots attaches a RelatedRoot entry (spec.md §4.4's reporter
// contract) for every root index that currently names one of roots.
func enrichWithRoots(g *dag.MergeGraph, issue diag.Issue, roots []*node.Node) diag.Issue {
	b := diag.FromIssue(issue)
	for _, r := range roots {
		for _, idx := range g.RootIndices(r) {
			b = b.WithRelatedRoot(idx, r.Origins())
		}
	}
	return b.Build()
}

// reportAndCollectErrors reports every issue in res (enriched with n's
// transitively-dependent roots) via opts.Reporter, and returns an
// aggregated error for the Fatal/Error ones, or nil if there were none.
func reportAndCollectErrors(ctx context.Context, g *dag.MergeGraph, n *node.Node, res diag.Result, opts Options) error {
	if res.Len() == 0 {
		return nil
	}
	roots := transitiveRoots(g, n)
	var overall *multierror.Error
	for issue := range res.Issues() {
		enriched := enrichWithRoots(g, issue, roots)
		opts.reporter().Report(ctx, enriched)
		if enriched.Severity().IsFailure() {
			overall = multierror.Append(overall, errors.New(enriched.Message()))
		}
	}
	return overall.ErrorOrNil()
}

// validatePhase calls every call node's Validate(phase) in top-down order,
// reporting and aggregating diagnostics per node (spec.md §4.4 steps 2/5).
func validatePhase(ctx context.Context, g *dag.MergeGraph, factory *node.CallFactory, phase node.Phase, opts Options) error {
	var overall *multierror.Error
	for _, n := range walkTopDown(g) {
		if n.Kind() != node.KindCall {
			continue
		}
		impl, ok := factory.Lookup(n.Name())
		if !ok {
			continue
		}
		collector := diag.NewCollector(opts.IssueLimit)
		impl.Validate(n, phase, collector)
		if err := reportAndCollectErrors(ctx, g, n, collector.Result(), opts); err != nil {
			overall = multierror.Append(overall, err)
		}
	}
	return overall.ErrorOrNil()
}

// transformToFixpoint repeatedly walks the graph top-down calling each call
// node's Transform, stopping when a full pass reports no change (spec.md
// §4.4 step 3). It aborts with a *NonconvergentError if the iteration cap is
// reached first.
func transformToFixpoint(ctx context.Context, g *dag.MergeGraph, factory *node.CallFactory, opts Options) error {
	for iter := 0; iter < opts.maxIterations(); iter++ {
		changedAny := false
		for _, n := range walkTopDown(g) {
			if n.Kind() != node.KindCall {
				continue
			}
			impl, ok := factory.Lookup(n.Name())
			if !ok {
				continue
			}
			if impl.Transform(n, g) {
				changedAny = true
			}
		}
		if !changedAny {
			return nil
		}
	}

	issue := diag.NewIssue(diag.Fatal, diag.E_TRANSFORM_NONCONVERGENT,
		fmt.Sprintf("transform did not reach a fixpoint within %d iteration(s)", opts.maxIterations())).
		Build()
	return &NonconvergentError{Issue: issue}
}

// indexNodes assigns each distinct reachable node a unique index in
// [0, N) in top-down BFS order (spec.md §4.4 step 6) and returns that order.
func indexNodes(g *dag.MergeGraph) []*node.Node {
	order := walkTopDown(g)
	for i, n := range order {
		n.SetIndex(i)
	}
	return order
}

// preEvaluate calls every call node's PreEvaluate exactly once, in the
// indexing order (spec.md §4.4 step 7).
func preEvaluate(ctx context.Context, g *dag.MergeGraph, order []*node.Node, factory *node.CallFactory, env node.Environment, opts Options) error {
	var overall *multierror.Error
	for _, n := range order {
		if n.Kind() != node.KindCall {
			continue
		}
		impl, ok := factory.Lookup(n.Name())
		if !ok {
			continue
		}
		if err := impl.PreEvaluate(n, env); err != nil {
			issue := diag.NewIssue(diag.Error, diag.E_PRE_EVALUATE_NODE, err.Error()).
				WithDetails(diag.CallNode(n.Name(), n.String())...).
				WithOrigins(n.Origins()).
				Build()
			issue = enrichWithRoots(g, issue, transitiveRoots(g, n))
			opts.reporter().Report(ctx, issue)
			overall = multierror.Append(overall, err)
		}
	}
	return overall.ErrorOrNil()
}

// freeze builds the immutable roots list (spec.md §4.4 step 8).
func freeze(g *dag.MergeGraph, indexLimit int) Frozen {
	roots := g.Roots()
	maxIdx := -1
	for _, r := range roots {
		for _, idx := range g.RootIndices(r) {
			if idx > maxIdx {
				maxIdx = idx
			}
		}
	}
	table := make([]*node.Node, maxIdx+1)
	for _, r := range roots {
		for _, idx := range g.RootIndices(r) {
			table[idx] = r
		}
	}
	return Frozen{roots: table, indexLimit: indexLimit}
}
