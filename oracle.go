package predicate

import (
	"github.com/ironbee/predicate/eval"
	"github.com/ironbee/predicate/node"
)

// Oracle is the handle Acquire returns: an opaque name for one root index
// within a context's graph, resolvable against any PerTransaction built
// from that context once it has closed (spec.md §6's acquire contract).
// An Oracle outlives the Context's open/closed/released transitions; it is
// Query that fails if resolved at the wrong time.
type Oracle struct {
	ctx       *Context
	rootIndex int
}

// RootIndex returns the oracle-index this Oracle names. Exposed for callers
// that build their own PerTransaction bookkeeping rather than going through
// Query.
func (o *Oracle) RootIndex() int {
	return o.rootIndex
}

// Query resolves the oracle's root against pt, evaluating it if necessary.
// pt must have been built from the same Context this Oracle was acquired
// from (via Context.NewTransaction); Query does not verify this and will
// return a stale or mismatched result if it is not.
func (o *Oracle) Query(pt *eval.PerTransaction) (node.Value, bool, error) {
	switch o.ctx.state {
	case contextOpen:
		return node.Null(), false, queryBeforeCloseError()
	case contextReleased:
		return node.Null(), false, queryAfterCloseError()
	}
	root, ok := o.ctx.frozen.Root(o.rootIndex)
	if !ok {
		return node.Null(), false, queryAfterCloseError()
	}
	return pt.Query(root)
}
