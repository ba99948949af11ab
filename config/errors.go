package config

import "fmt"

// DirectiveError reports a malformed directive line: the wrong argument
// count, a name collision, or a body-sexpr that failed to parse (spec.md
// §6, "Error if the directive has ≠3 arguments, if name already exists, or
// if body-sexpr fails to parse").
type DirectiveError struct {
	Line      int
	Directive string
	Msg       string
	Err       error
}

func (e *DirectiveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: line %d: %s: %s: %v", e.Line, e.Directive, e.Msg, e.Err)
	}
	return fmt.Sprintf("config: line %d: %s: %s", e.Line, e.Directive, e.Msg)
}

func (e *DirectiveError) Unwrap() error {
	return e.Err
}
