// Package config reads the two line-oriented directives spec.md §6 names:
// PredicateDebugReport and PredicateDefine. This is a two-directive
// surface, not a general configuration language, so it follows the
// teacher's style of small, single-purpose parsing helpers (mirrored from
// parser's own hand-rolled scanning) rather than pulling in a config-file
// framework.
package config
