// Package template implements spec.md §4.5's template engine: defining a
// named, parameterized call body once and instantiating it as an ordinary
// transform whenever a call node with that name appears in a graph.
//
// A template is defined by a name, an ordered parameter-name list, and a
// body node built with the parser's ordinary grammar. Every (ref "x")
// sub-node in the body names a formal parameter; Define rejects a body that
// references an undeclared parameter (E_TEMPLATE_UNDECLARED_PARAM) or a name
// that collides with an existing call (E_TEMPLATE_REDEFINED).
//
// Definition registers a [node.CallImpl] under the template's name whose
// Transform clones the body with every ref substituted by the
// corresponding actual argument and replaces the instantiation node with
// the clone, re-entering the MergeGraph so CSE applies across templates
// exactly as it does across any other call (§4.5, "Substitution re-enters
// the MergeGraph"). An argument-count mismatch leaves the instantiation
// node untouched by Transform, surfacing as an E_TEMPLATE_ARITY diagnostic
// at the post-transform validation pass.
//
// Register adds "ref" itself to a CallFactory, so that parsing template
// body text (which must resolve every call name against the factory, like
// any other S-expression) succeeds before Define has even run. A ref node
// is otherwise inert: instantiate always substitutes it away, so its own
// Transform and Eval are never meaningfully invoked in a correctly-defined
// template.
package template
