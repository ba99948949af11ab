// Package eval implements spec.md §4.6's per-transaction evaluation engine:
// a PerTransaction holding two parallel arrays (value, finished) of length
// index_limit, and Query(root), which drives recursive depth-first
// evaluation with short-circuit semantics down to whatever each node's
// CallImpl.Eval chooses to force.
//
// A node's slot moves through the state machine §4.6 specifies:
//
//	(value=null, finished=false)
//	  -> eval -> (value=partial, finished=false)  [may repeat]
//	  -> eval -> (value=final,  finished=true)     [terminal]
//
// finished is monotonic: once true it is never reset. A CallImpl.Eval
// reaches the terminal state by calling [PerTransaction.SetValue], which
// always marks the node finished; an Eval that returns a value without
// calling SetValue leaves the node eligible for re-evaluation on the next
// query, which is how a streaming call produces a sequence of partial
// values across successive queries of one transaction.
package eval
