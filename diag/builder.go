package diag

import (
	"fmt"

	"github.com/ironbee/predicate/origin"
)

// IssueBuilder provides fluent construction of [Issue] values.
//
// IssueBuilder is the only valid construction path for Issue values in
// production code. Direct struct literal construction bypasses validity
// checks and will cause panics when the issue is collected.
//
// Example:
//
//	issue := diag.NewIssue(diag.Error, diag.E_UNKNOWN_CALL, `call "frob" is not registered`).
//	    WithOrigins(node.Origins()).
//	    WithHint("register a CallFactory entry for \"frob\" before parsing").
//	    Build()
type IssueBuilder struct {
	issue Issue
}

// NewIssue starts building an issue with required fields.
//
// The severity, code, and message are required for a valid issue. Additional
// fields can be set using the With* methods before calling [IssueBuilder.Build].
//
// NewIssue panics if any required field is invalid:
//   - severity must be a valid Severity value (Fatal through Hint)
//   - code must not be zero (use package-defined codes like E_PARSE_SYNTAX)
//   - message must not be empty
//
// These panics catch programmer errors at construction time rather than
// deferring failure to [Collector.Collect]. This fulfills the builder's
// guarantee that issues constructed via IssueBuilder are always valid.
func NewIssue(severity Severity, code Code, message string) *IssueBuilder {
	if severity > Hint {
		panic(fmt.Sprintf("diag.NewIssue: invalid severity %d (must be 0-%d)", severity, Hint))
	}
	if code.IsZero() {
		panic("diag.NewIssue: zero code (use package-defined codes like E_PARSE_SYNTAX)")
	}
	if message == "" {
		panic("diag.NewIssue: empty message")
	}
	return &IssueBuilder{
		issue: Issue{
			severity: severity,
			code:     code,
			message:  message,
		},
	}
}

// FromIssue creates an IssueBuilder initialized from an existing issue.
//
// This enables augmenting issues with additional details while preserving
// all original fields. The returned builder creates a new issue; the
// original is not modified.
//
// FromIssue panics if the input issue is zero or invalid.
func FromIssue(issue Issue) *IssueBuilder {
	if issue.IsZero() {
		panic("diag.FromIssue: zero-value Issue")
	}
	if !issue.IsValid() {
		panic(fmt.Sprintf("diag.FromIssue: invalid Issue (code=%s)", issue.Code()))
	}
	b := &IssueBuilder{
		issue: Issue{
			severity: issue.severity,
			code:     issue.code,
			message:  issue.message,
			hint:     issue.hint,
			origins:  issue.origins.Clone(),
		},
	}
	if len(issue.relatedRoots) > 0 {
		b.issue.relatedRoots = make([]RelatedRoot, len(issue.relatedRoots))
		copy(b.issue.relatedRoots, issue.relatedRoots)
	}
	if len(issue.details) > 0 {
		b.issue.details = make([]Detail, len(issue.details))
		copy(b.issue.details, issue.details)
	}
	return b
}

// WithOrigins sets the provenance tags of the node the issue concerns.
func (b *IssueBuilder) WithOrigins(origins origin.Set) *IssueBuilder {
	b.issue.origins = origins
	return b
}

// WithHint sets the resolution suggestion.
func (b *IssueBuilder) WithHint(hint string) *IssueBuilder {
	b.issue.hint = hint
	return b
}

// WithRelatedRoot adds a single transitively-dependent root and its origins.
//
// Multiple calls append to the existing related-roots list. Per spec.md
// §4.4, callers should add entries in ascending RootIndex order for
// deterministic reporter output.
func (b *IssueBuilder) WithRelatedRoot(rootIndex int, origins origin.Set) *IssueBuilder {
	b.issue.relatedRoots = append(b.issue.relatedRoots, RelatedRoot{RootIndex: rootIndex, Origins: origins})
	return b
}

// WithRelatedRoots adds multiple transitively-dependent roots at once.
func (b *IssueBuilder) WithRelatedRoots(roots ...RelatedRoot) *IssueBuilder {
	b.issue.relatedRoots = append(b.issue.relatedRoots, roots...)
	return b
}

// WithDetail adds a single key-value detail.
//
// Multiple calls to WithDetail append to the existing details list.
func (b *IssueBuilder) WithDetail(key, value string) *IssueBuilder {
	b.issue.details = append(b.issue.details, Detail{Key: key, Value: value})
	return b
}

// WithDetails adds key-value context.
//
// Multiple calls to WithDetails append to the existing details list.
func (b *IssueBuilder) WithDetails(details ...Detail) *IssueBuilder {
	b.issue.details = append(b.issue.details, details...)
	return b
}

// WithExpectedGot is a convenience for arity/type mismatch issues.
//
// This is equivalent to calling WithDetails(ExpectedGot(expected, got)...).
func (b *IssueBuilder) WithExpectedGot(expected, got string) *IssueBuilder {
	return b.WithDetails(ExpectedGot(expected, got)...)
}

// Build returns the constructed issue.
//
// Build deep-copies the related-roots and details slices into fresh,
// tight-capacity slices. This ensures builder reuse cannot mutate previously
// built issues (immutability guarantee).
//
// The returned issue is guaranteed to be valid (IsValid() returns true)
// because NewIssue requires severity, code, and message.
func (b *IssueBuilder) Build() Issue {
	result := b.issue
	result.origins = b.issue.origins.Clone()

	if len(b.issue.relatedRoots) > 0 {
		result.relatedRoots = make([]RelatedRoot, len(b.issue.relatedRoots))
		copy(result.relatedRoots, b.issue.relatedRoots)
	}
	if len(b.issue.details) > 0 {
		result.details = make([]Detail, len(b.issue.details))
		copy(result.details, b.issue.details)
	}

	return result
}
