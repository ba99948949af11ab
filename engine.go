package predicate

import (
	"github.com/ironbee/predicate/dag"
	"github.com/ironbee/predicate/node"
	"github.com/ironbee/predicate/origin"
	"github.com/ironbee/predicate/parser"
	"github.com/ironbee/predicate/stdcalls"
	"github.com/ironbee/predicate/template"
)

// Engine owns the call registry and the main context's accumulated graph
// for one loaded module. It is created once at module load and lives for
// the module's lifetime; every configuration Context it opens copies its
// main graph as a starting point (spec.md §9, "copy-on-context-open").
type Engine struct {
	factory *node.CallFactory
	parser  *parser.Parser
	main    *dag.MergeGraph
	cfg     *config
}

// NewEngine constructs an Engine, registering the standard call library
// (stdcalls.Register) unless WithoutStandardCalls is given.
func NewEngine(opts ...Option) (*Engine, error) {
	cfg := defaultConfig()
	applyOptions(cfg, opts)

	factory := node.NewCallFactory()
	if err := template.Register(factory); err != nil {
		return nil, err
	}
	if cfg.registerStandardCalls {
		if err := stdcalls.Register(factory); err != nil {
			return nil, err
		}
	}

	return &Engine{
		factory: factory,
		parser:  parser.New(factory),
		main:    dag.New(),
		cfg:     cfg,
	}, nil
}

// CallFactory returns the engine's call registry (spec.md §6's
// call_factory(engine) -> factory). The returned factory is shared and
// live; registering further calls on it affects every context the engine
// opens afterward.
func (e *Engine) CallFactory() *node.CallFactory {
	return e.factory
}

// DefineTemplate registers name as a new call backed by the given
// parameters and body (spec.md §6's define_template(engine, name, args,
// body, origin), §4.5). body is tagged with originTag before becoming part
// of every future instantiation's provenance.
func (e *Engine) DefineTemplate(name string, params []string, body *node.Node, originTag origin.Tag) error {
	if originTag != "" {
		body.AddOrigin(originTag)
	}
	return template.Define(e.factory, name, params, body)
}

// Parse parses an S-expression into a detached node tree tagged with
// originTag, without merging it into any context's graph. Acquire is the
// usual entry point; Parse is exposed for callers that need the parsed
// tree before deciding whether to acquire it (e.g. PredicateDefine's body).
func (e *Engine) Parse(input string, originTag origin.Tag) (*node.Node, error) {
	return e.parser.Parse(input, originTag)
}

// OpenContext opens a new configuration context as a structural copy of
// parent's graph, or of the engine's main graph if parent is nil (spec.md
// §9's copy-on-context-open).
func (e *Engine) OpenContext(parent *Context) *Context {
	var g *dag.MergeGraph
	if parent != nil {
		g = parent.graph.Copy()
	} else {
		g = e.main.Copy()
	}
	return &Context{engine: e, graph: g, state: contextOpen}
}
