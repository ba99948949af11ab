// Package predicate is a DAG-based expression compiler and evaluator: an
// S-expression surface syntax compiles into a merged, hash-consed graph
// (common-subexpression elimination by construction), carries it through a
// context-close lifecycle (validate, transform to fixpoint, index,
// pre_evaluate, freeze), and evaluates it per transaction with partial,
// streaming results.
//
// # Architecture Overview
//
// The module is organized into layers with strict dependency ordering:
//
//	Foundation tier (depends only on packages within this tier):
//	  - origin: Provenance tags attached to nodes
//	  - diag: Structured diagnostics with stable error codes
//	  - node: The Node/Call/Literal representation and CallFactory registry
//
//	Graph tier:
//	  - dag: MergeGraph (merge/replace, cycle refusal, copy-on-open)
//	  - parser: S-expression -> Node tree
//	  - template: Template definition and instantiation-as-transform
//
//	Lifecycle and evaluation tier:
//	  - lifecycle: The eight-step context-close sequence and Frozen result
//	  - eval: PerTransaction, the per-node value/finished state machine
//	  - stdcalls: The standard call library (and/or/not, streq, var, list)
//
//	Entry point:
//	  - config: PredicateDebugReport / PredicateDefine directive parsing
//	  - (this package): Engine, Context, Oracle
//
// # Entry Points
//
// Building an engine and acquiring an oracle:
//
//	engine, err := predicate.NewEngine()
//	if err != nil {
//	    // construction error (e.g. duplicate stdcalls registration)
//	}
//	ctx := engine.OpenContext(nil)
//	expr, err := engine.Parse(`(and (true) (streq 'a' 'a'))`, origin.Tag("config.txt:1"))
//	if err != nil {
//	    // *parser.ParseError
//	}
//	oracle, err := ctx.Acquire(expr, origin.Tag("config.txt:1"))
//	if err := ctx.Close(context.Background()); err != nil {
//	    // lifecycle error: *lifecycle.StateError, *lifecycle.NonconvergentError, ...
//	}
//
// Querying per transaction:
//
//	tx, err := ctx.NewTransaction(myEnv)
//	if err != nil {
//	    // *predicate.OracleError (QueryBeforeClose/QueryAfterClose)
//	}
//	value, finished, err := oracle.Query(tx)
//
// # Subpackages
//
// See the individual package documentation for detailed usage:
//
//   - [github.com/ironbee/predicate/origin]: Provenance tags
//   - [github.com/ironbee/predicate/diag]: Structured diagnostics
//   - [github.com/ironbee/predicate/node]: Node representation and CallFactory
//   - [github.com/ironbee/predicate/dag]: MergeGraph
//   - [github.com/ironbee/predicate/parser]: S-expression parser
//   - [github.com/ironbee/predicate/template]: Template definition/instantiation
//   - [github.com/ironbee/predicate/lifecycle]: Context-close sequence
//   - [github.com/ironbee/predicate/eval]: Per-transaction evaluation
//   - [github.com/ironbee/predicate/stdcalls]: Standard call library
//   - [github.com/ironbee/predicate/config]: Configuration directive parsing
package predicate
