package parser

import (
	"strconv"
	"strings"

	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/node"
	"github.com/ironbee/predicate/origin"
)

// ListCallName is the call name the parser builds for a list literal's
// children, per the resolved list-literal-vs-list-of-children ambiguity:
// `[...]` always parses to a Call node, never directly to a Literal list,
// so the Literal/Call two-variant invariant holds at parse time. A
// constant-folding transform collapses an all-Literal list call into a
// single Literal wrapping a []Value once transforms reach fixpoint.
const ListCallName = "list"

// Parser parses S-expression text into [node.Node] trees, resolving call
// names against a [node.CallFactory] as it goes (§4.1: "Unknown call names
// are a parse-time error, raised when the CallFactory cannot construct the
// named call").
type Parser struct {
	factory *node.CallFactory
}

// New returns a Parser that resolves call names against factory.
func New(factory *node.CallFactory) *Parser {
	return &Parser{factory: factory}
}

// Parse parses the entire input as a single top-level expression tagged
// with origin.
//
// Per §6, the parser tolerates exactly one trailing byte past the
// consumed expression; this is documented there as a possible historic
// quirk rather than intentional design, and is preserved here rather than
// fixed. More than one trailing byte is a [ParseError] coded
// E_PARSE_TRAILING.
func (p *Parser) Parse(input string, tag origin.Tag) (*node.Node, error) {
	n, consumed, err := p.ParseAt(input, 0, tag)
	if err != nil {
		return nil, err
	}
	if trailing := len(input) - consumed; trailing > 1 {
		return nil, newParseError(diag.E_PARSE_TRAILING, input, consumed, tag,
			"trailing input after top-level expression")
	}
	return n, nil
}

// ParseAt parses a single expression starting at offset and returns the
// node together with the offset immediately past the consumed text (§4.1:
// "fed a string and a starting offset, returns a node and the consumed
// length").
func (p *Parser) ParseAt(input string, offset int, tag origin.Tag) (*node.Node, int, error) {
	return p.parseExpr(input, offset, tag)
}

func (p *Parser) parseExpr(s string, pos int, tag origin.Tag) (*node.Node, int, error) {
	if pos >= len(s) {
		return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "unexpected end of input")
	}
	switch {
	case s[pos] == '(':
		return p.parseCall(s, pos, tag)
	case s[pos] == '[':
		return p.parseList(s, pos, tag)
	case s[pos] == '\'':
		return p.parseString(s, pos, tag, false)
	case s[pos] == 'b' && pos+1 < len(s) && s[pos+1] == '\'':
		return p.parseString(s, pos+1, tag, true)
	case strings.HasPrefix(s[pos:], "null") && !isNameChar(byteAt(s, pos+4)):
		return node.NewLiteral(node.Null()), pos + 4, nil
	case isNumberStart(s[pos]):
		return p.parseNumber(s, pos, tag)
	default:
		return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "expected an expression")
	}
}

func (p *Parser) parseCall(s string, pos int, tag origin.Tag) (*node.Node, int, error) {
	pos++ // consume '('

	start := pos
	for pos < len(s) && isNameChar(s[pos]) {
		pos++
	}
	if pos == start {
		return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "expected a call name")
	}
	name := s[start:pos]

	if _, issue := p.factory.Construct(name); issue != nil {
		return nil, start, unknownCallError(*issue, s, start, tag)
	}

	var children []*node.Node
	for {
		if pos >= len(s) {
			return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "unexpected end of input in call")
		}
		if s[pos] == ')' {
			pos++
			break
		}
		if s[pos] != ' ' {
			return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "expected whitespace or ')'")
		}
		wsStart := pos
		for pos < len(s) && s[pos] == ' ' {
			pos++
		}
		if pos == wsStart {
			return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "expected whitespace")
		}
		if pos < len(s) && s[pos] == ')' {
			return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "trailing whitespace before ')'")
		}
		child, newPos, err := p.parseExpr(s, pos, tag)
		if err != nil {
			return nil, pos, err
		}
		children = append(children, child)
		pos = newPos
	}

	return node.NewCall(name, children), pos, nil
}

func (p *Parser) parseList(s string, pos int, tag origin.Tag) (*node.Node, int, error) {
	pos++ // consume '['

	var children []*node.Node
	for {
		if pos >= len(s) {
			return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "unexpected end of input in list")
		}
		if s[pos] == ']' {
			pos++
			break
		}
		if len(children) > 0 {
			if s[pos] != ' ' {
				return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "expected whitespace or ']'")
			}
			wsStart := pos
			for pos < len(s) && s[pos] == ' ' {
				pos++
			}
			if pos == wsStart {
				return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "expected whitespace")
			}
		}
		if pos < len(s) && s[pos] == ']' {
			return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, pos, tag, "trailing whitespace before ']'")
		}
		child, newPos, err := p.parseExpr(s, pos, tag)
		if err != nil {
			return nil, pos, err
		}
		children = append(children, child)
		pos = newPos
	}

	return node.NewCall(ListCallName, children), pos, nil
}

func (p *Parser) parseString(s string, pos int, tag origin.Tag, isBytes bool) (*node.Node, int, error) {
	start := pos
	pos++ // consume opening quote

	var sb strings.Builder
	for {
		if pos >= len(s) {
			return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, start, tag, "unterminated string literal")
		}
		switch s[pos] {
		case '\'':
			pos++
			if isBytes {
				return node.NewLiteral(node.Bytes([]byte(sb.String()))), pos, nil
			}
			return node.NewLiteral(node.String(sb.String())), pos, nil
		case '\\':
			pos++
			if pos >= len(s) {
				return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, start, tag, "unterminated escape in string literal")
			}
			sb.WriteByte(s[pos])
			pos++
		default:
			sb.WriteByte(s[pos])
			pos++
		}
	}
}

func (p *Parser) parseNumber(s string, pos int, tag origin.Tag) (*node.Node, int, error) {
	start := pos
	if s[pos] == '+' || s[pos] == '-' {
		pos++
	}
	digitsStart := pos
	for pos < len(s) && isDigit(s[pos]) {
		pos++
	}
	if pos == digitsStart {
		return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, start, tag, "expected digits in number literal")
	}

	isFloat := false
	if pos < len(s) && s[pos] == '.' {
		isFloat = true
		pos++
		fracStart := pos
		for pos < len(s) && isDigit(s[pos]) {
			pos++
		}
		if pos == fracStart {
			return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, start, tag, "expected digits after decimal point")
		}
	}

	text := s[start:pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, start, tag, "invalid number literal")
		}
		return node.NewLiteral(node.Float(f)), pos, nil
	}
	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, pos, newParseError(diag.E_PARSE_SYNTAX, s, start, tag, "invalid number literal")
	}
	return node.NewLiteral(node.Int(i)), pos, nil
}

func isNameChar(b byte) bool {
	return b == '_' || b == '-' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isNumberStart(b byte) bool {
	return isDigit(b) || b == '+' || b == '-'
}

func byteAt(s string, i int) byte {
	if i < 0 || i >= len(s) {
		return 0
	}
	return s[i]
}
