// Package origin tracks where a node entered a [github.com/ironbee/predicate/dag.MergeGraph]:
// a human-readable "file:line"-shaped tag, preserved and unioned across merges
// for diagnostics. It is the simplified counterpart of the teacher's
// location.Span/SourceID: the predicate core has no surface syntax beyond
// S-expressions and no language-server consumer, so a full position/span
// model is unneeded — only the tag string that diagnostics print.
package origin

import "github.com/google/uuid"

// Tag is a single origin annotation, typically "file:line" but opaque to
// the core: callers choose the format, the core only stores and reports it.
type Tag string

// Synthetic mints a Tag for callers that acquire an expression without
// supplying an origin string. The core never inspects a Tag's contents, so a
// random suffix is sufficient to keep synthetic tags distinguishable from one
// another in debug reports.
func Synthetic() Tag {
	return Tag("synthetic:" + uuid.NewString())
}

// Set is an insertion-ordered multiset of Tags. Duplicates are preserved:
// MergeGraph invariant 6 requires that the origin multiset of a merged
// representative equal the union (not the set-union) of the origins of every
// structurally-equal node ever added, so two merges from the same origin
// must both be retained.
type Set struct {
	tags []Tag
}

// NewSet builds a Set from zero or more initial tags.
func NewSet(tags ...Tag) Set {
	if len(tags) == 0 {
		return Set{}
	}
	s := Set{tags: make([]Tag, len(tags))}
	copy(s.tags, tags)
	return s
}

// Add appends tag to the set.
func (s *Set) Add(tag Tag) {
	if tag == "" {
		return
	}
	s.tags = append(s.tags, tag)
}

// Union merges other's tags into s, preserving multiplicity and order:
// s's own tags first, then other's.
func (s *Set) Union(other Set) {
	if len(other.tags) == 0 {
		return
	}
	s.tags = append(s.tags, other.tags...)
}

// Tags returns a defensive copy of the contained tags in insertion order.
func (s Set) Tags() []Tag {
	if len(s.tags) == 0 {
		return nil
	}
	cp := make([]Tag, len(s.tags))
	copy(cp, s.tags)
	return cp
}

// Len reports how many tags (including duplicates) the set holds.
func (s Set) Len() int {
	return len(s.tags)
}

// Clone returns an independent copy of s, for use when a MergeGraph is
// deep-copied on configuration-context open.
func (s Set) Clone() Set {
	return NewSet(s.tags...)
}
