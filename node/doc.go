// Package node defines the graph element shared by every stage of the
// predicate pipeline: a single concrete [Node] type, variant-dispatched at
// runtime through a capability table rather than split across Go types.
//
// # Overview
//
// A Node is either:
//   - a Literal, wrapping a [Value] (null, integer, float, string,
//     byte-string, or list), or
//   - a Call, carrying a call name and an ordered list of child Nodes.
//
// A node also carries a multiset of [origin.Tag] values recording where it
// entered the graph, preserved and unioned across merges (§3 invariant 6).
//
// There is no distinct Go type per call name. Instead, a call's behavior —
// argument validation, rewriting, per-transaction setup, and evaluation —
// lives behind the [CallImpl] interface and is looked up by name in a
// [CallFactory] at the point it is needed. This keeps the graph itself
// agnostic to which calls exist; adding a call means registering a new
// CallImpl, never touching Node.
//
// # Foundation Tier
//
// node sits at the foundation of the module's package graph, alongside
// origin and diag. It must not import the dag, lifecycle, template, or eval
// packages, all of which import node. Where a CallImpl needs to reach back
// into graph mutation (Transform) or per-transaction evaluation state
// (Eval), it does so through the minimal [Mutator], [EvalState], and
// [Environment] interfaces declared here, which dag.MergeGraph and the eval
// package's per-transaction state implement.
//
// # Structural Identity and CSE
//
// Two nodes are structurally equal when they have the same kind, the same
// literal payload or call name, and pointer-identical children in the same
// order. [Node.StructuralKey] encodes this for use as a hash-consing map key
// by the dag package, which merges structurally-equal nodes into a single
// shared representative (common subexpression elimination) as it builds a
// graph bottom-up. Because children are merged before their parents,
// StructuralKey never needs to recursively compare subtrees: a child's
// pointer identity already reflects its canonical form.
//
// # Mutable Edges, Immutable Identity
//
// A Node's kind, name, and value never change after construction. Its
// children slice does: [Node.SetChildAt], [Node.AppendChild], and
// [Node.RemoveChildAt] rewrite edges in place, which is how the dag
// package's replace and transform operations work without reallocating
// every ancestor of a rewritten subtree. Each mutation invalidates the
// node's cached text rendering.
package node
