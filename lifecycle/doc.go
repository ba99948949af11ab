// Package lifecycle implements the graph lifecycle spec.md §4.4 describes,
// run exactly once per configuration context at context close:
//
//	assert_valid -> validate(PRE) -> transform-to-fixpoint -> assert_valid
//	-> validate(POST) -> index -> pre_evaluate -> freeze
//
// Every stage that visits call nodes does so in deterministic top-down BFS
// order, queued from the MergeGraph's root-index ordering, so that indexing
// (step 6) assigns the same index to the same node across repeated runs of
// an unchanged graph.
//
// # Diagnostics
//
// Each stage collects its diagnostics into a fresh [diag.Collector] per
// node, attaches every root that transitively depends on that node (via
// [diag.IssueBuilder.WithRelatedRoot]) before handing the issue to the
// configured [Reporter], and aggregates Fatal/Error issues across the whole
// stage into a single returned error using
// [github.com/hashicorp/go-multierror]. A stage that produces any Fatal or
// Error diagnostic aborts the run before the next stage begins.
package lifecycle
