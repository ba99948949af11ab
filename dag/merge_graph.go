// Package dag implements the MergeGraph: the configuration-time DAG
// container that deduplicates structurally-equal expression nodes (common
// subexpression elimination), tracks root nodes and the stable indices under
// which they were acquired, and exposes the structural mutation primitives
// (merge, replace, add_edge/remove_edge) that the lifecycle and template
// packages build on.
//
// Grounded on spec.md §3 (MergeGraph invariants) and §4.3 (operation list).
package dag

import (
	"fmt"
	"io"

	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/node"
	"github.com/ironbee/predicate/origin"
)

// MergeGraph is a common-subexpression-deduplicating DAG over [node.Node]
// values. All configuration-time mutation happens on a single configuration
// thread (spec.md §5); MergeGraph itself holds no lock.
//
// MergeGraph implements [node.Mutator], letting a CallImpl's Transform reach
// back into graph mutation (Merge, Replace) without this package needing to
// be imported by node.
type MergeGraph struct {
	// index maps a live representative's StructuralKey to itself. Every
	// entry is reachable from some root; merge/replace keep this in sync
	// as nodes are folded or discarded.
	index map[string]*node.Node

	// live is the set of every node currently registered as a
	// representative, used for O(1) "already canonical" checks during
	// Merge's bottom-up walk.
	live map[*node.Node]struct{}

	// roots holds one entry per add_root call, in acquisition order; a
	// single representative may appear at more than one index (spec.md
	// §3 invariant 5).
	roots []*node.Node

	// rootIndices is the reverse index: representative -> every root
	// index that currently names it.
	rootIndices map[*node.Node][]int
}

// New constructs an empty MergeGraph.
func New() *MergeGraph {
	return &MergeGraph{
		index:       make(map[string]*node.Node),
		live:        make(map[*node.Node]struct{}),
		rootIndices: make(map[*node.Node][]int),
	}
}

// AddRoot merges n (and its descendants) into the graph, marks the merged
// representative as a root, and returns a stable root index. Multiple calls
// with structurally-equal roots return different indices but map to the same
// representative (spec.md §4.3).
func (g *MergeGraph) AddRoot(n *node.Node) int {
	rep := g.Merge(n)
	idx := len(g.roots)
	g.roots = append(g.roots, rep)
	g.rootIndices[rep] = append(g.rootIndices[rep], idx)
	return idx
}

// AddOrigin appends an origin tag to n's multiset (spec.md §4.3).
func (g *MergeGraph) AddOrigin(n *node.Node, tag origin.Tag) {
	if n == nil {
		return
	}
	n.AddOrigin(tag)
}

// Merge folds n into the graph bottom-up: every child is merged (and, if a
// structurally-equal representative already exists, replaced in n's child
// list by that representative) before n's own StructuralKey is computed and
// looked up. If a structurally-equal node already exists, Merge returns it
// (unioning n's origins onto it and detaching n from its own children, since
// n itself is discarded). Otherwise n becomes the new representative.
func (g *MergeGraph) Merge(n *node.Node) *node.Node {
	if n == nil {
		return nil
	}
	return g.merge(n, make(map[*node.Node]*node.Node))
}

func (g *MergeGraph) merge(n *node.Node, memo map[*node.Node]*node.Node) *node.Node {
	if canon, ok := memo[n]; ok {
		return canon
	}
	if _, already := g.live[n]; already {
		memo[n] = n
		return n
	}

	if n.Kind() == node.KindCall {
		for i, c := range n.Children() {
			canon := g.merge(c, memo)
			if canon != c {
				n.SetChildAt(i, canon)
			}
		}
	}

	key := n.StructuralKey()
	if existing, ok := g.index[key]; ok {
		existing.UnionOrigins(n.Origins())
		n.Detach()
		memo[n] = existing
		return existing
	}

	g.index[key] = n
	g.live[n] = struct{}{}
	memo[n] = n
	return n
}

// Replace atomically substitutes old with newNode in every one of old's
// parents' child lists, transfers old's root-index assignments and origins
// to newNode, and folds newNode into the graph via Merge (so a replace that
// introduces a structurally-equal node performs full CSE, per spec.md
// §4.3). If the substitution would make a node reachable from its own
// descendant, Replace fails with a *StateError and leaves old's parents,
// root indices, and origins unchanged (spec.md §8 property 3, scenario S6).
// The cycle check runs after newNode is merged, so a newNode not already
// in the graph stays merged even when Replace fails.
func (g *MergeGraph) Replace(old, newNode *node.Node) error {
	if old == nil {
		return newStateError(diag.E_STATE_PARENT_MISMATCH, "replace: old is nil")
	}

	canon := g.Merge(newNode)
	if canon == old {
		return nil
	}

	parents := old.Parents()
	for _, p := range parents {
		if g.reachableFrom(canon, p) {
			return cycleError(p.String(), canon.String())
		}
	}

	for _, p := range parents {
		for i, c := range p.Children() {
			if c == old {
				p.SetChildAt(i, canon)
			}
		}
	}

	canon.UnionOrigins(old.Origins())

	for _, idx := range g.rootIndices[old] {
		g.roots[idx] = canon
		g.rootIndices[canon] = append(g.rootIndices[canon], idx)
	}
	delete(g.rootIndices, old)

	if len(old.Parents()) == 0 {
		if g.index[old.StructuralKey()] == old {
			delete(g.index, old.StructuralKey())
		}
		delete(g.live, old)
		old.Detach()
	}

	return nil
}

// AddEdge sets parent's child at index to child, merging child into the
// graph first. Fails with a *StateError, leaving parent's children
// unchanged, if the edit would create a cycle (spec.md §4.3, §8 property
// 3); child stays merged in that case.
func (g *MergeGraph) AddEdge(parent *node.Node, index int, child *node.Node) error {
	canon := g.Merge(child)
	if g.reachableFrom(canon, parent) {
		return cycleError(parent.String(), canon.String())
	}
	parent.SetChildAt(index, canon)
	return nil
}

// RemoveEdge removes parent's child at index, shifting subsequent children
// down. Removing an edge can never introduce a cycle, so this never fails.
func (g *MergeGraph) RemoveEdge(parent *node.Node, index int) {
	parent.RemoveChildAt(index)
}

// reachableFrom reports whether target is reachable from start by following
// child edges (a downward DFS). Used to refuse mutations that would make a
// node its own descendant.
func (g *MergeGraph) reachableFrom(start, target *node.Node) bool {
	if start == nil || target == nil {
		return false
	}
	if start == target {
		return true
	}
	seen := make(map[*node.Node]struct{})
	var walk func(n *node.Node) bool
	walk = func(n *node.Node) bool {
		if n == nil {
			return false
		}
		if _, ok := seen[n]; ok {
			return false
		}
		seen[n] = struct{}{}
		if n == target {
			return true
		}
		for _, c := range n.Children() {
			if walk(c) {
				return true
			}
		}
		return false
	}
	return walk(start)
}

// Roots returns the distinct root representatives in first-acquisition
// order (spec.md §4.3's roots() iterator).
func (g *MergeGraph) Roots() []*node.Node {
	seen := make(map[*node.Node]struct{}, len(g.roots))
	out := make([]*node.Node, 0, len(g.roots))
	for _, r := range g.roots {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// RootIndices returns the set of root indices that currently name n.
func (g *MergeGraph) RootIndices(n *node.Node) []int {
	idxs := g.rootIndices[n]
	return append([]int(nil), idxs...)
}

// IsRoot reports whether n currently carries at least one root index.
func (g *MergeGraph) IsRoot(n *node.Node) bool {
	return len(g.rootIndices[n]) > 0
}

// NodeCount returns the number of live representatives in the graph.
func (g *MergeGraph) NodeCount() int {
	return len(g.live)
}

// Copy returns a deep copy of the graph: every reachable node is
// reconstructed with a fresh identity, so that transforms run against the
// copy (e.g. in a child configuration context) never mutate the original
// (spec.md §3, "copied on every configuration-context open").
func (g *MergeGraph) Copy() *MergeGraph {
	ng := New()
	memo := make(map[*node.Node]*node.Node)

	var clone func(n *node.Node) *node.Node
	clone = func(n *node.Node) *node.Node {
		if n == nil {
			return nil
		}
		if c, ok := memo[n]; ok {
			return c
		}
		var cn *node.Node
		switch n.Kind() {
		case node.KindLiteral:
			cn = node.NewLiteral(n.Value())
		default:
			kids := n.Children()
			ckids := make([]*node.Node, len(kids))
			for i, k := range kids {
				ckids[i] = clone(k)
			}
			cn = node.NewCall(n.Name(), ckids)
		}
		cn.UnionOrigins(n.Origins())
		cn.SetIndex(n.Index())
		memo[n] = cn
		ng.index[cn.StructuralKey()] = cn
		ng.live[cn] = struct{}{}
		return cn
	}

	for _, r := range g.roots {
		ng.roots = append(ng.roots, clone(r))
	}
	for n, idxs := range g.rootIndices {
		cn := clone(n)
		ng.rootIndices[cn] = append([]int(nil), idxs...)
	}
	return ng
}

// WriteValidationReport runs the parent-consistency, acyclicity, and
// uniqueness audits described in spec.md §4.3, writing a line per failure to
// out, and returns true iff none were found.
func (g *MergeGraph) WriteValidationReport(out io.Writer) bool {
	ok := true

	for n := range g.live {
		for _, c := range n.Children() {
			if c == nil {
				continue
			}
			found := false
			for _, p := range c.Parents() {
				if p == n {
					found = true
					break
				}
			}
			if !found {
				ok = false
				fmt.Fprintf(out, "parent mismatch: %s lists %s as a child, but it is not back-referenced\n", n, c)
			}
		}
	}

	for _, r := range g.Roots() {
		if g.hasCycleFrom(r) {
			ok = false
			fmt.Fprintf(out, "cycle reachable from root %s\n", r)
		}
	}

	seenKeys := make(map[string]*node.Node, len(g.live))
	for n := range g.live {
		key := n.StructuralKey()
		if other, dup := seenKeys[key]; dup && other != n {
			ok = false
			fmt.Fprintf(out, "duplicate representative for key %q: %s and %s\n", key, other, n)
			continue
		}
		seenKeys[key] = n
	}

	return ok
}

func (g *MergeGraph) hasCycleFrom(root *node.Node) bool {
	onPath := make(map[*node.Node]struct{})
	var walk func(n *node.Node) bool
	walk = func(n *node.Node) bool {
		if n == nil {
			return false
		}
		if _, ok := onPath[n]; ok {
			return true
		}
		onPath[n] = struct{}{}
		defer delete(onPath, n)
		for _, c := range n.Children() {
			if walk(c) {
				return true
			}
		}
		return false
	}
	return walk(root)
}

// WriteDebugReport writes a human-readable dump of the graph's roots and
// their S-expression text form (spec.md §4.3).
func (g *MergeGraph) WriteDebugReport(out io.Writer) {
	fmt.Fprintf(out, "MergeGraph: %d live node(s), %d root(s)\n", len(g.live), len(g.roots))
	for i, r := range g.roots {
		fmt.Fprintf(out, "  root[%d] -> %s\n", i, r)
	}
}
