package parser

import (
	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/origin"
)

// excerptRadius is the number of characters shown on each side of the
// offending offset in a [ParseError]'s excerpt window, per §4.1.
const excerptRadius = 10

// ParseError reports malformed S-expression input: an offset into the
// parsed text, a short excerpt around that offset, and the origin tag
// supplied by the caller. It wraps the [diag.Issue] carrying the same
// information so a caller that wants structured fields can use either.
type ParseError struct {
	Issue diag.Issue
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return e.Issue.Message()
}

func newParseError(code diag.Code, input string, offset int, tag origin.Tag, msg string) *ParseError {
	issue := diag.NewIssue(diag.Error, code, msg).
		WithOrigins(origin.NewSet(tag)).
		WithDetails(diag.ParseOffset(offset, excerpt(input, offset))...).
		Build()
	return &ParseError{Issue: issue}
}

// unknownCallError wraps the CallFactory's E_UNKNOWN_CALL issue with the
// parse offset at which the unresolvable call name was encountered.
func unknownCallError(issue diag.Issue, input string, offset int, tag origin.Tag) *ParseError {
	built := diag.FromIssue(issue).
		WithOrigins(origin.NewSet(tag)).
		WithDetails(diag.ParseOffset(offset, excerpt(input, offset))...).
		Build()
	return &ParseError{Issue: built}
}

// excerpt returns up to excerptRadius characters before and after offset in
// input, clamped to the string bounds.
func excerpt(input string, offset int) string {
	start := offset - excerptRadius
	if start < 0 {
		start = 0
	}
	end := offset + excerptRadius
	if end > len(input) {
		end = len(input)
	}
	if start > len(input) {
		start = len(input)
	}
	if start > end {
		start = end
	}
	return input[start:end]
}
