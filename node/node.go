package node

import (
	"fmt"
	"strings"

	"github.com/ironbee/predicate/origin"
)

// Node is the single concrete graph element: either a literal value or a
// named call over an ordered list of child nodes (§3, §9). Variant-specific
// behavior does not live on Node itself; it is looked up by name in a
// [CallFactory] and dispatched through the [CallImpl] capability table.
//
// A Node's structural identity (kind, name, value, and the identity of its
// children) is fixed at construction and never mutated in place. What does
// mutate, via [Node.SetChildAt], [Node.AppendChild], and [Node.RemoveChildAt],
// is the *contents* of the children slice — the edges of the graph, per the
// add_edge/remove_edge primitives in §4.3. Any such mutation invalidates the
// node's cached text; the structural key is not cached.
type Node struct {
	kind     Kind
	name     string
	value    Value
	children []*Node
	parents  map[*Node]struct{}

	// origins is the multiset of origin tags accumulated across merges
	// (§3 invariant 6). Configuration-time mutation only; no locking.
	origins origin.Set

	// index is this node's position in the BFS index assigned during
	// lifecycle indexing (§4.4). It is -1 until assigned.
	index int

	cachedText string
	dirty      bool
}

// NewLiteral constructs a Literal node wrapping v.
func NewLiteral(v Value) *Node {
	n := &Node{
		kind:    KindLiteral,
		value:   v,
		parents: make(map[*Node]struct{}),
		index:   -1,
		dirty:   true,
	}
	return n
}

// NewCall constructs a Call node with the given call name and children.
// The children slice is copied; ownership of the *Node pointers is shared.
func NewCall(name string, children []*Node) *Node {
	n := &Node{
		kind:     KindCall,
		name:     name,
		children: append([]*Node(nil), children...),
		parents:  make(map[*Node]struct{}),
		index:    -1,
		dirty:    true,
	}
	for _, c := range n.children {
		c.addParent(n)
	}
	return n
}

// Kind reports whether n is a literal or a call.
func (n *Node) Kind() Kind {
	return n.kind
}

// Name returns the call name. Empty for Literal nodes.
func (n *Node) Name() string {
	return n.name
}

// Value returns the literal payload. Zero [Value] (null) for Call nodes.
func (n *Node) Value() Value {
	return n.value
}

// Children returns a copy of n's ordered child list. Empty for Literal nodes.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// ChildAt returns the child at i, or nil if i is out of range.
func (n *Node) ChildAt(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Arity returns the number of children.
func (n *Node) Arity() int {
	return len(n.children)
}

// Parents returns the set of nodes that currently hold n as a direct child.
func (n *Node) Parents() []*Node {
	out := make([]*Node, 0, len(n.parents))
	for p := range n.parents {
		out = append(out, p)
	}
	return out
}

// Index returns the BFS index assigned during lifecycle indexing, or -1 if
// the node has not yet been indexed.
func (n *Node) Index() int {
	return n.index
}

// SetIndex assigns n's BFS index. Called only by the lifecycle indexing pass.
func (n *Node) SetIndex(i int) {
	n.index = i
}

// Origins returns the node's accumulated origin tags.
func (n *Node) Origins() origin.Set {
	return n.origins
}

// AddOrigin appends tag to n's origin multiset (§4.3's add_origin).
func (n *Node) AddOrigin(tag origin.Tag) {
	n.origins.Add(tag)
}

// UnionOrigins merges other's tags into n's, preserving multiplicity. Used
// by merge/replace to union origins across structurally-equal nodes.
func (n *Node) UnionOrigins(other origin.Set) {
	n.origins.Union(other)
}

func (n *Node) addParent(p *Node) {
	n.parents[p] = struct{}{}
}

func (n *Node) removeParent(p *Node) {
	delete(n.parents, p)
}

// SetChildAt replaces the child at i with c, updating parent bookkeeping on
// both the outgoing and incoming node and invalidating n's caches. This is
// the add_edge/remove_edge primitive of §4.3 applied to a single slot.
func (n *Node) SetChildAt(i int, c *Node) {
	if i < 0 || i >= len(n.children) {
		return
	}
	old := n.children[i]
	if old == c {
		return
	}
	if old != nil {
		old.removeParent(n)
	}
	n.children[i] = c
	if c != nil {
		c.addParent(n)
	}
	n.invalidate()
}

// AppendChild adds c as n's new last child.
func (n *Node) AppendChild(c *Node) {
	n.children = append(n.children, c)
	if c != nil {
		c.addParent(n)
	}
	n.invalidate()
}

// RemoveChildAt removes the child at i, shifting subsequent children down.
func (n *Node) RemoveChildAt(i int) {
	if i < 0 || i >= len(n.children) {
		return
	}
	old := n.children[i]
	n.children = append(n.children[:i], n.children[i+1:]...)
	if old != nil {
		old.removeParent(n)
	}
	n.invalidate()
}

func (n *Node) invalidate() {
	n.dirty = true
}

// Detach removes n as a parent from all of its children, without touching
// n's own children slice. Callers use this when discarding n itself (e.g.
// after CSE folds it into an existing representative) so its children's
// parent sets don't retain a dangling back-reference to an unreachable node.
func (n *Node) Detach() {
	for _, c := range n.children {
		if c != nil {
			c.removeParent(n)
		}
	}
}

// StructuralKey returns a string that is equal for two nodes iff they are
// structurally equal per §3: same kind, same literal/name payload, and
// pointer-identical children in the same order. It relies on children
// already being canonical (i.e. already merged) by the time a parent's key
// is computed, which the dag package's bottom-up merge order guarantees;
// StructuralKey itself performs no recursive equality check.
//
// Unlike [Node.String], the key is not cached: it is computed fresh on every
// call since it is only ever consulted immediately around edge mutations,
// where a cached value would just as often need invalidating anyway.
func (n *Node) StructuralKey() string {
	var sb strings.Builder
	switch n.kind {
	case KindLiteral:
		sb.WriteString("L:")
		sb.WriteString(n.value.CanonicalKey())
	case KindCall:
		sb.WriteString("C:")
		sb.WriteString(n.name)
		sb.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "%p", c)
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// String renders n in the surface syntax accepted by the parser (§4.1),
// caching the result until the node's edges are next mutated.
func (n *Node) String() string {
	if !n.dirty && n.cachedText != "" {
		return n.cachedText
	}
	var s string
	switch n.kind {
	case KindLiteral:
		s = n.value.String()
	case KindCall:
		var sb strings.Builder
		sb.WriteByte('(')
		sb.WriteString(n.name)
		for _, c := range n.children {
			sb.WriteByte(' ')
			sb.WriteString(c.String())
		}
		sb.WriteByte(')')
		s = sb.String()
	}
	n.cachedText = s
	n.dirty = false
	return s
}
