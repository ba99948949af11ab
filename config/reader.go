package config

import (
	"bufio"
	"io"
	"os"

	"github.com/ironbee/predicate"
	"github.com/ironbee/predicate/origin"
)

// Apply reads directive lines from r and applies each to ctx: a
// PredicateDebugReport directive calls ctx.SetDebugReport, opening the
// named file for appending (or using standard error, per ToStderr); a
// PredicateDefine directive parses its body against ctx and registers the
// resulting template. tag is the origin given to each PredicateDefine
// body and template; PredicateDebugReport directives do not use it.
//
// Apply returns any files it opened for debug reports, so the caller can
// close them once finished with ctx; on error, files opened before the
// failing line are still returned for cleanup.
func Apply(ctx *predicate.Context, r io.Reader, tag origin.Tag) ([]io.Closer, error) {
	var closers []io.Closer

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		d, err := ParseLine(line, lineNo)
		if err != nil {
			return closers, err
		}
		if d == nil {
			continue
		}

		switch dd := d.(type) {
		case DebugReportDirective:
			if dd.ToStderr() {
				ctx.SetDebugReport(os.Stderr)
				continue
			}
			f, oerr := os.OpenFile(dd.Path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if oerr != nil {
				return closers, &DirectiveError{Line: lineNo, Directive: "PredicateDebugReport", Msg: "open report file", Err: oerr}
			}
			closers = append(closers, f)
			ctx.SetDebugReport(f)

		case DefineDirective:
			body, perr := ctx.Parse(dd.Body, tag)
			if perr != nil {
				return closers, &DirectiveError{Line: lineNo, Directive: "PredicateDefine", Msg: "body-sexpr failed to parse", Err: perr}
			}
			if derr := ctx.DefineTemplate(dd.Name, dd.Params, body, tag); derr != nil {
				return closers, &DirectiveError{Line: lineNo, Directive: "PredicateDefine", Msg: "template definition rejected", Err: derr}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return closers, err
	}
	return closers, nil
}
