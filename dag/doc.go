// Package dag implements MergeGraph, the configuration-time common-
// subexpression-deduplicating DAG that §3 of the spec describes: every
// expression ever acquired in a context lives in exactly one MergeGraph,
// structurally-equal nodes collapse to a single shared representative, and
// every node carries back-references to its parents for upward traversal.
//
// # Bottom-Up Hash-Consing
//
// [MergeGraph.Merge] is the single mechanism by which a node enters the
// graph. It always processes a node's children before the node itself,
// replacing each with its canonical representative if one already exists
// (via [node.Node.SetChildAt]). Because children are canonical by the time a
// parent's own [node.Node.StructuralKey] is computed, the key comparison
// never needs to recurse: pointer-identical children plus a matching
// name/value is sufficient for structural equality. [MergeGraph.AddRoot]
// layers a stable root index on top of Merge; [MergeGraph.Replace] and
// [MergeGraph.AddEdge]/[MergeGraph.RemoveEdge] are the remaining primitives a
// transform uses to rewrite the graph in place.
//
// # Acyclicity
//
// Every mutating operation that could introduce a cycle (AddEdge, Replace)
// first merges the incoming subtree, then checks reachability from it back
// to the node being edited before changing any edge. A mutation that would
// create a cycle returns a [*StateError] with no edge, root index, or
// origin of the edited nodes changed; the incoming subtree stays merged
// into the graph.
//
// # Copy-on-Context-Open
//
// [MergeGraph.Copy] rebuilds every reachable node with a fresh identity, so
// a child configuration context can transform its copy without the parent
// context observing any change (§3: "copied on every configuration-context
// open, child inherits parent's state").
package dag
