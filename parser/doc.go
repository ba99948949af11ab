// Package parser turns S-expression text into [node.Node] trees.
//
// # Grammar
//
//	expr    := call | literal
//	call    := '(' name (ws arg)* ')'
//	arg     := expr
//	literal := 'null' | number | string | bytestring | list
//	string  := '\'' ( [^'\\] | '\\' . )* '\''
//	number  := [-+]?[0-9]+('.'[0-9]+)?
//	list    := '[' (expr (ws expr)*)? ']'
//
// Whitespace between tokens is ASCII space. The parser is a hand-written,
// non-backtracking recursive descent over the grammar above; it does not
// generate an intermediate token stream.
//
// A byte-string literal (the `bytestring` alternative, left informal by the
// grammar) is written as a string literal prefixed with `b`, e.g. `b'raw'`;
// it parses identically to a string literal except that its payload is a
// [node.Value] of kind [node.ValueBytes] rather than [node.ValueString].
//
// # List Literals Are Call Nodes
//
// `[...]` always parses to a Call node named [ListCallName], not directly to
// a Literal wrapping a list of values, even though every element happens to
// be a literal. This keeps a node strictly either a Literal or a Call; a
// constant-folding transform collapses an all-Literal list call into a
// single Literal once the graph's transform pass reaches a fixpoint.
//
// # Unknown Calls
//
// A call's name is resolved against a [node.CallFactory] at parse time, not
// deferred to a later validation pass: if the factory cannot construct the
// named call, parsing fails immediately with a [ParseError] coded
// E_UNKNOWN_CALL.
//
// # Trailing-Byte Quirk
//
// [Parser.Parse] tolerates exactly one byte of unconsumed input past the
// top-level expression before reporting a trailing-input error. This is
// documented as a historic quirk, not a deliberate design choice: earlier
// notes suggest it may be an off-by-one in the original implementation
// rather than intent, and it is preserved here rather than silently fixed.
package parser
