package diag

import "github.com/ironbee/predicate/origin"

// RelatedRoot names a root that transitively depends on the node an Issue is
// about, together with that root's own origins. The reporter (spec.md §4.4)
// requires every validate/transform/pre_evaluate diagnostic to surface which
// roots would be affected, not just the offending node, since a single
// malformed sub-expression can poison many roots through structural sharing.
type RelatedRoot struct {
	RootIndex int
	Origins   origin.Set
}

// Issue represents a single diagnostic issue.
//
// Issue is immutable after construction. All fields are unexported to preserve
// immutability; use accessor methods to read values. Construct Issues using
// [NewIssue] and [IssueBuilder].
//
// Direct struct literal construction bypasses validity checks and will cause
// panics when the issue is collected via [Collector.Collect].
//
// Zero-value note: The Go zero value for Severity is Fatal (value 0). When
// constructing Issue literals in tests, set severity explicitly to avoid
// unintentionally creating Fatal issues.
type Issue struct {
	origins      origin.Set    // provenance of the node this issue concerns
	severity     Severity      // issue severity level
	code         Code          // stable programmatic identifier
	message      string        // human-readable description (no embedded locations)
	hint         string        // optional resolution suggestion
	relatedRoots []RelatedRoot // roots transitively depending on the offending node
	details      []Detail      // additional key-value context
}

// Severity returns the issue's severity level.
func (i Issue) Severity() Severity {
	return i.severity
}

// Code returns the issue's stable programmatic identifier.
func (i Issue) Code() Code {
	return i.code
}

// Message returns the human-readable description.
//
// Messages should not contain embedded locations; use [Issue.Origins] for
// provenance information.
func (i Issue) Message() string {
	return i.message
}

// Origins returns the provenance tags of the node the issue concerns.
func (i Issue) Origins() origin.Set {
	return i.origins
}

// Hint returns the optional resolution suggestion.
func (i Issue) Hint() string {
	return i.hint
}

// HasOrigins reports whether the issue carries any provenance tags.
func (i Issue) HasOrigins() bool {
	return i.origins.Len() > 0
}

// IsZero reports whether the issue is a zero value.
//
// A zero-value issue has no code, no message, and no provenance.
func (i Issue) IsZero() bool {
	return i.code.IsZero() && i.message == "" && i.origins.Len() == 0
}

// IsValid reports whether the issue has the minimum required fields set.
//
// An issue is valid if it has:
//   - A valid code (not zero)
//   - A non-empty message
//   - A valid severity (not an undefined value like Severity(255))
//
// This method exists for documentation and testing; production code using
// [IssueBuilder] never needs to call it because the builder guarantees validity.
func (i Issue) IsValid() bool {
	return !i.code.IsZero() &&
		i.message != "" &&
		i.severity <= Hint // Hint (4) is the highest valid severity value
}

// RelatedRoots returns a copy of the roots transitively depending on the
// issue's node, along with their origins.
//
// Returns nil if no related roots are present. The returned slice is a
// defensive copy; modifications do not affect the original issue.
//
// Ordering contract: entries are in ascending RootIndex order, matching the
// root-index assignment made during graph freeze.
func (i Issue) RelatedRoots() []RelatedRoot {
	if len(i.relatedRoots) == 0 {
		return nil
	}
	cp := make([]RelatedRoot, len(i.relatedRoots))
	copy(cp, i.relatedRoots)
	return cp
}

// Details returns a copy of the detail key-value pairs.
//
// Returns nil if no details are present. The returned slice is a defensive
// copy; modifications do not affect the original issue.
func (i Issue) Details() []Detail {
	if len(i.details) == 0 {
		return nil
	}
	cp := make([]Detail, len(i.details))
	copy(cp, i.details)
	return cp
}

// Clone returns a deep copy of the issue.
func (i Issue) Clone() Issue {
	clone := i
	clone.origins = i.origins.Clone()
	if len(i.relatedRoots) > 0 {
		clone.relatedRoots = make([]RelatedRoot, len(i.relatedRoots))
		copy(clone.relatedRoots, i.relatedRoots)
	}
	if len(i.details) > 0 {
		clone.details = make([]Detail, len(i.details))
		copy(clone.details, i.details)
	}
	return clone
}
