package node

// Kind discriminates a [Node]'s variant, per the Literal/Call split in the
// data model: a node is either a literal value or a named call over child
// nodes.
type Kind uint8

const (
	// KindLiteral marks a node whose payload is a [Value] (null, number,
	// string, byte-string, or list).
	KindLiteral Kind = iota

	// KindCall marks a node whose payload is a call name and an ordered
	// argument list.
	KindCall
)

// String returns a human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindCall:
		return "call"
	default:
		return "unknown"
	}
}
