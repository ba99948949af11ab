package stdcalls

import "github.com/ironbee/predicate/node"

// TrueCallName and FalseCallName name the nullary boolean constant calls.
const (
	TrueCallName  = "true"
	FalseCallName = "false"
)

// AndCallName, OrCallName, and NotCallName name the boolean combinators.
const (
	AndCallName = "and"
	OrCallName  = "or"
	NotCallName = "not"
)

// StreqCallName names the string-equality call.
const StreqCallName = "streq"

// VarCallName names the external-field-lookup call.
const VarCallName = "var"

// ListCallName names the list-literal call the parser builds for `[...]`
// syntax. Matches parser.ListCallName; duplicated here (rather than
// imported, which would make stdcalls depend on parser) since the name is
// just a registration key both packages need to agree on.
const ListCallName = "list"

// Register adds every standard call to factory. It is idempotent-forbidding
// like any other CallFactory.Register call: registering into a factory
// that already has one of these names returns an error.
func Register(factory *node.CallFactory) error {
	calls := []struct {
		name string
		impl node.CallImpl
	}{
		{TrueCallName, boolConstImpl{value: 1}},
		{FalseCallName, boolConstImpl{value: 0}},
		{AndCallName, andOrImpl{name: AndCallName, shortCircuitOn: false}},
		{OrCallName, andOrImpl{name: OrCallName, shortCircuitOn: true}},
		{NotCallName, notImpl{}},
		{StreqCallName, streqImpl{}},
		{VarCallName, varImpl{}},
		{ListCallName, listImpl{}},
	}
	for _, c := range calls {
		if err := factory.Register(c.name, c.impl); err != nil {
			return err
		}
	}
	return nil
}

// truthy reports whether v counts as "true" for and/or/not: any nonzero
// integer, a nonempty string, or a nonempty list. Null and zero are falsy.
func truthy(v node.Value) bool {
	if i, ok := v.AsInt(); ok {
		return i != 0
	}
	if s, ok := v.AsString(); ok {
		return s != ""
	}
	if l, ok := v.AsList(); ok {
		return len(l) != 0
	}
	if f, ok := v.AsFloat(); ok {
		return f != 0
	}
	return false
}

// isBoolConst reports whether n is the nullary call named name (true or
// false), i.e. a statically-known boolean constant.
func isBoolConst(n *node.Node, name string) bool {
	return n != nil && n.Kind() == node.KindCall && n.Name() == name && n.Arity() == 0
}
