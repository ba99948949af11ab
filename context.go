package predicate

import (
	"context"
	"io"

	"github.com/ironbee/predicate/dag"
	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/eval"
	"github.com/ironbee/predicate/lifecycle"
	"github.com/ironbee/predicate/node"
	"github.com/ironbee/predicate/origin"
)

// contextState tracks a Context through the three states an Oracle's
// resolution depends on: accepting acquisitions, closed and queryable, or
// released and no longer queryable (spec.md §7's QueryBeforeClose /
// QueryAfterClose error kinds distinguish exactly these two failure
// directions around the closed state).
type contextState uint8

const (
	contextOpen contextState = iota
	contextClosed
	contextReleased
)

// Context accumulates expressions for one configuration unit (an IronBee
// "context" in spec.md's terms) and runs the context-close sequence once,
// via Close. Acquire and DefineTemplate are valid only while open; Oracle
// resolution is valid only once closed, until Release.
type Context struct {
	engine      *Engine
	graph       *dag.MergeGraph
	state       contextState
	frozen      lifecycle.Frozen
	debugReport io.Writer
	diagnostics diag.Result
}

// SetDebugReport configures where Close writes the before-transform/
// after-transform graph dumps (spec.md §6's PredicateDebugReport
// directive, scoped to this context). Passing nil (the default) disables
// the dump.
func (c *Context) SetDebugReport(w io.Writer) {
	c.debugReport = w
}

// Acquire merges expr into the context's graph as a new root, tagged with
// originTag, and returns an Oracle naming that root (spec.md §6's
// acquire(context, expr_text_or_node, origin) -> oracle). expr is typically
// the result of Engine.Parse, but any node tree is accepted.
func (c *Context) Acquire(expr *node.Node, originTag origin.Tag) (*Oracle, error) {
	if c.state != contextOpen {
		return nil, ErrContextClosed
	}
	if originTag == "" {
		originTag = origin.Synthetic()
	}
	expr.AddOrigin(originTag)
	canon := c.graph.Merge(expr)
	idx := c.graph.AddRoot(canon)
	return &Oracle{ctx: c, rootIndex: idx}, nil
}

// AcquireText parses input as an S-expression and acquires the result,
// combining Parse and Acquire for the common case.
func (c *Context) AcquireText(input string, originTag origin.Tag) (*Oracle, error) {
	expr, err := c.Parse(input, originTag)
	if err != nil {
		return nil, err
	}
	return c.Acquire(expr, originTag)
}

// Parse parses input against the context's engine CallFactory without
// merging it into the graph; see Engine.Parse.
func (c *Context) Parse(input string, originTag origin.Tag) (*node.Node, error) {
	return c.engine.Parse(input, originTag)
}

// DefineTemplate registers a template on the context's engine. Templates
// are names in the engine-wide CallFactory, not the per-context graph, so
// this is equivalent to calling Engine.DefineTemplate directly; it is
// provided so configuration code driven entirely through a Context does
// not need to also hold the Engine.
func (c *Context) DefineTemplate(name string, params []string, body *node.Node, originTag origin.Tag) error {
	if c.state != contextOpen {
		return ErrContextClosed
	}
	return c.engine.DefineTemplate(name, params, body, originTag)
}

// Close runs the context-close sequence (lifecycle.Run) against the
// context's graph and transitions it to closed. Oracles acquired from this
// context become queryable once Close returns successfully.
func (c *Context) Close(ctx context.Context) error {
	if c.state == contextClosed {
		return nil
	}
	if c.state == contextReleased {
		return ErrContextReleased
	}
	lcOpts := c.engine.cfg.lifecycleOptions()
	lcOpts.DebugReport = c.debugReport
	inner := lcOpts.Reporter
	if inner == nil {
		inner = lifecycle.SlogReporter{Logger: c.engine.cfg.logger}
	}
	collecting := lifecycle.NewCollectingReporter(inner, c.engine.cfg.issueLimit)
	lcOpts.Reporter = collecting

	frozen, err := lifecycle.Run(ctx, c.graph, c.engine.factory, nil, lcOpts)
	c.diagnostics = collecting.Result()
	if err != nil {
		return err
	}
	c.frozen = frozen
	c.state = contextClosed
	return nil
}

// Diagnostics returns every issue validate/transform/pre_evaluate produced
// during the most recent Close call, as a single batch [diag.Result] --
// e.g. for a caller that wants an overall severity-count summary rather
// than handling the Reporter's one-issue-at-a-time callback. Zero value
// before the first Close.
func (c *Context) Diagnostics() diag.Result {
	return c.diagnostics
}

// FormatDiagnostics renders Diagnostics with r, or a default renderer if r
// is nil, for a human-readable report of an entire Close call's issues.
func (c *Context) FormatDiagnostics(r *diag.Renderer) string {
	if r == nil {
		r = diag.NewRenderer()
	}
	return r.FormatResult(c.diagnostics)
}

// Release drops the context's retained Frozen result, after which any
// Oracle acquired from this context fails resolution with
// E_QUERY_AFTER_CLOSE. Call once no further transactions will be run
// against this context's oracles.
func (c *Context) Release() error {
	if c.state == contextOpen {
		return ErrContextNotClosed
	}
	if c.state == contextReleased {
		return ErrContextReleased
	}
	c.state = contextReleased
	c.graph = nil
	c.frozen = lifecycle.Frozen{}
	return nil
}

// NewTransaction starts a PerTransaction evaluation pass over the context's
// frozen graph. env resolves external fields a call's "var" may reference;
// it may be nil. Valid only once the context has closed.
func (c *Context) NewTransaction(env node.Environment) (*eval.PerTransaction, error) {
	switch c.state {
	case contextOpen:
		return nil, queryBeforeCloseError()
	case contextReleased:
		return nil, queryAfterCloseError()
	}
	return eval.New(c.frozen, c.engine.factory, env), nil
}
