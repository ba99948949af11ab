package predicate

import (
	"errors"
	"fmt"

	"github.com/ironbee/predicate/diag"
)

// ErrContextClosed is returned by Context.Acquire and Context.DefineTemplate
// once the context has already run its close sequence; both are
// configuration-time operations and have no meaning afterward.
var ErrContextClosed = errors.New("predicate: context already closed")

// ErrContextNotClosed is returned by Context.Release if called before Close.
var ErrContextNotClosed = errors.New("predicate: context not yet closed")

// ErrContextReleased is returned by Context.Close or Context.Release if
// called on an already-released context.
var ErrContextReleased = errors.New("predicate: context already released")

// OracleError wraps the diag.Issue describing why an Oracle could not be
// resolved: queried before its context closed (E_QUERY_BEFORE_CLOSE) or
// after the context's closed state was released (E_QUERY_AFTER_CLOSE),
// per spec.md §7's QueryBeforeClose/QueryAfterClose error kinds.
type OracleError struct {
	Issue diag.Issue
}

func (e *OracleError) Error() string {
	return fmt.Sprintf("oracle: %s", e.Issue.Message())
}

func queryBeforeCloseError() *OracleError {
	return &OracleError{Issue: diag.NewIssue(diag.Error, diag.E_QUERY_BEFORE_CLOSE,
		"oracle queried before its context closed").Build()}
}

func queryAfterCloseError() *OracleError {
	return &OracleError{Issue: diag.NewIssue(diag.Error, diag.E_QUERY_AFTER_CLOSE,
		"oracle queried against a released context").Build()}
}
