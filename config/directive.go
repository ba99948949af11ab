package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Directive is one parsed configuration line.
type Directive interface {
	directiveName() string
}

// DebugReportDirective is `PredicateDebugReport <path>` (spec.md §6): if
// Path is empty or "-", the debug report goes to standard error; otherwise
// it is appended to the named file at each lifecycle checkpoint.
type DebugReportDirective struct {
	Path string
}

func (DebugReportDirective) directiveName() string { return "PredicateDebugReport" }

// ToStderr reports whether Path names standard error rather than a file.
func (d DebugReportDirective) ToStderr() bool {
	return d.Path == "" || d.Path == "-"
}

// DefineDirective is `PredicateDefine <name> <space-separated-args>
// <body-sexpr>` (spec.md §6): defines a template. Body is the raw,
// not-yet-parsed S-expression text; the caller parses it (typically via
// Engine.Parse) so that a trailing-input mismatch surfaces as the usual
// ParseError rather than a config-layer error.
type DefineDirective struct {
	Name   string
	Params []string
	Body   string
}

func (DefineDirective) directiveName() string { return "PredicateDefine" }

// ParseLine parses one configuration line. Blank lines and lines whose
// first non-space character is '#' parse to (nil, nil). lineNo is used
// only to annotate a returned *DirectiveError.
func ParseLine(line string, lineNo int) (Directive, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, nil
	}

	keyword, rest, ok := scanWord(trimmed, 0)
	if !ok {
		return nil, &DirectiveError{Line: lineNo, Directive: trimmed, Msg: "missing directive keyword"}
	}

	switch keyword {
	case "PredicateDebugReport":
		return parseDebugReportDirective(lineNo, rest)
	case "PredicateDefine":
		return parseDefineDirective(lineNo, rest)
	default:
		return nil, &DirectiveError{Line: lineNo, Directive: keyword, Msg: "unknown directive"}
	}
}

func parseDebugReportDirective(lineNo int, rest string) (Directive, error) {
	path, tail, ok := scanToken(rest, 0)
	if !ok {
		return nil, &DirectiveError{Line: lineNo, Directive: "PredicateDebugReport", Msg: "expected exactly 1 argument, got 0"}
	}
	if strings.TrimSpace(tail) != "" {
		return nil, &DirectiveError{Line: lineNo, Directive: "PredicateDebugReport", Msg: "expected exactly 1 argument, got more"}
	}
	return DebugReportDirective{Path: path}, nil
}

func parseDefineDirective(lineNo int, rest string) (Directive, error) {
	name, rest, ok := scanWord(rest, 0)
	if !ok {
		return nil, &DirectiveError{Line: lineNo, Directive: "PredicateDefine", Msg: "expected exactly 3 arguments, got 0"}
	}

	argsTok, rest, ok := scanToken(rest, 0)
	if !ok {
		return nil, &DirectiveError{Line: lineNo, Directive: "PredicateDefine", Msg: "expected exactly 3 arguments, got 1"}
	}
	params, err := splitArgs(argsTok)
	if err != nil {
		return nil, &DirectiveError{Line: lineNo, Directive: "PredicateDefine", Msg: "invalid argument list", Err: err}
	}

	body := strings.TrimSpace(rest)
	if body == "" {
		return nil, &DirectiveError{Line: lineNo, Directive: "PredicateDefine", Msg: "expected exactly 3 arguments, got 2"}
	}

	return DefineDirective{Name: name, Params: params, Body: body}, nil
}

// splitArgs unwraps a parenthesized "(a b c)" or quoted "a b c" argument
// token into its space-separated parameter names.
func splitArgs(tok string) ([]string, error) {
	if len(tok) >= 2 && tok[0] == '(' && tok[len(tok)-1] == ')' {
		tok = tok[1 : len(tok)-1]
	} else {
		unquoted, err := unquoteParamList(tok)
		if err != nil {
			return nil, err
		}
		tok = unquoted
	}
	fields := strings.Fields(tok)
	if fields == nil {
		fields = []string{}
	}
	return fields, nil
}

// unquoteParamList unescapes a PredicateDefine parameter-list token that
// scanToken read as a quoted string ("x y" or 'x y'); a bare,
// already-unquoted word (the single-parameter case with no surrounding
// quotes) is returned unchanged. A single-quoted token is rewritten to
// double quotes before unquoting since strconv.Unquote only understands Go's
// double-quoted escapes, with any embedded double quote escaped first so the
// rewrite can't invert the token's own quoting.
func unquoteParamList(tok string) (string, error) {
	if len(tok) >= 2 && tok[0] == '\'' && tok[len(tok)-1] == '\'' {
		inner := strings.ReplaceAll(tok[1:len(tok)-1], `"`, `\"`)
		tok = `"` + inner + `"`
	}
	if !strings.HasPrefix(tok, `"`) {
		return tok, nil
	}
	unquoted, err := strconv.Unquote(tok)
	if err != nil {
		return "", fmt.Errorf("invalid parameter-list token %q: %w", tok, err)
	}
	return unquoted, nil
}

// scanWord reads a single bare, whitespace-delimited token starting after
// any leading whitespace in s, returning the token, the unconsumed
// remainder, and whether a token was found at all.
func scanWord(s string, pos int) (word, rest string, ok bool) {
	pos = skipSpace(s, pos)
	start := pos
	for pos < len(s) && !isSpace(s[pos]) {
		pos++
	}
	if pos == start {
		return "", s[pos:], false
	}
	return s[start:pos], s[pos:], true
}

// scanToken reads one directive argument starting after any leading
// whitespace: a balanced parenthesized group, a quoted string, or
// otherwise a bare whitespace-delimited word.
func scanToken(s string, pos int) (tok, rest string, ok bool) {
	pos = skipSpace(s, pos)
	if pos >= len(s) {
		return "", s[pos:], false
	}
	switch s[pos] {
	case '(':
		end := matchParen(s, pos)
		if end < 0 {
			return s[pos:], "", true
		}
		return s[pos : end+1], s[end+1:], true
	case '"', '\'':
		end := matchQuote(s, pos)
		if end < 0 {
			return s[pos:], "", true
		}
		return s[pos : end+1], s[end+1:], true
	default:
		return scanWord(s, pos)
	}
}

func matchParen(s string, start int) int {
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func matchQuote(s string, start int) int {
	quote := s[start]
	for i := start + 1; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] == quote {
			return i
		}
	}
	return -1
}

func skipSpace(s string, pos int) int {
	for pos < len(s) && isSpace(s[pos]) {
		pos++
	}
	return pos
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}
