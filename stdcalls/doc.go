// Package stdcalls implements the small standard library of calls §9's
// design notes describe registering "once into the CallFactory at
// startup": the nullary boolean constants true/false, the short-
// circuiting boolean combinators and/or/not, string equality (streq),
// external field lookup (var), and the list literal call the parser
// always builds for `[...]` syntax (§3, "List-literal vs. list-of-children
// ambiguity").
//
// and, or, and list each carry a constant-folding Transform: and/or fold
// away once one of their arguments statically determines the result
// (a literal true/false child), and list folds into a single Literal node
// wrapping a []Value once every child is itself a Literal — the same
// config-time mechanism spec.md §8 scenario S2 describes for `(and true
// true false)`.
package stdcalls
