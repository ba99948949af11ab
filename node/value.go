package node

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ValueKind discriminates the payload carried by a [Value].
type ValueKind uint8

const (
	// ValueNull is the literal `null`.
	ValueNull ValueKind = iota
	// ValueInt is a literal integer.
	ValueInt
	// ValueFloat is a literal number with a fractional part.
	ValueFloat
	// ValueString is a quoted literal string.
	ValueString
	// ValueBytes is a byte-string literal.
	ValueBytes
	// ValueList is a literal list of values.
	ValueList
)

// Value is the payload of a Literal node: null, an integer, a float, a
// string, a byte-string, or a list of Values, per the grammar in spec §4.1.
//
// Value is an immutable, comparable-by-[Value.Equal] tagged union. Zero
// value is [ValueNull].
type Value struct {
	kind ValueKind
	i    int64
	f    float64
	s    string
	b    []byte
	list []Value
}

// Null returns the null literal value.
func Null() Value {
	return Value{kind: ValueNull}
}

// Int returns an integer literal value.
func Int(i int64) Value {
	return Value{kind: ValueInt, i: i}
}

// Float returns a floating-point literal value.
func Float(f float64) Value {
	return Value{kind: ValueFloat, f: f}
}

// String returns a string literal value.
func String(s string) Value {
	return Value{kind: ValueString, s: s}
}

// Bytes returns a byte-string literal value. The input is copied.
func Bytes(b []byte) Value {
	return Value{kind: ValueBytes, b: slices.Clone(b)}
}

// List returns a list literal value. The input slice is copied.
func List(vs []Value) Value {
	return Value{kind: ValueList, list: slices.Clone(vs)}
}

// Kind reports the value's variant.
func (v Value) Kind() ValueKind {
	return v.kind
}

// AsInt returns the wrapped integer and true, or (0, false) if v is not [ValueInt].
func (v Value) AsInt() (int64, bool) {
	if v.kind != ValueInt {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the wrapped float and true, or (0, false) if v is not [ValueFloat].
func (v Value) AsFloat() (float64, bool) {
	if v.kind != ValueFloat {
		return 0, false
	}
	return v.f, true
}

// AsString returns the wrapped string and true, or ("", false) if v is not [ValueString].
func (v Value) AsString() (string, bool) {
	if v.kind != ValueString {
		return "", false
	}
	return v.s, true
}

// AsBytes returns a copy of the wrapped byte-string and true, or (nil, false)
// if v is not [ValueBytes].
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != ValueBytes {
		return nil, false
	}
	return slices.Clone(v.b), true
}

// AsList returns a copy of the wrapped list and true, or (nil, false) if v is
// not [ValueList].
func (v Value) AsList() ([]Value, bool) {
	if v.kind != ValueList {
		return nil, false
	}
	return slices.Clone(v.list), true
}

// Equal reports whether v and other carry the same kind and payload,
// recursively for lists. This is the literal-equality half of structural
// equality (§3: "their literal/name payloads are equal").
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case ValueNull:
		return true
	case ValueInt:
		return v.i == other.i
	case ValueFloat:
		return v.f == other.f
	case ValueString:
		return v.s == other.s
	case ValueBytes:
		return string(v.b) == string(other.b)
	case ValueList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// CanonicalKey returns a string encoding that is equal for two Values iff
// [Value.Equal] reports true for them. Used by the dag package's structural
// hash-consing map (§4.3: "nodes are indexed by a canonical key").
func (v Value) CanonicalKey() string {
	var sb strings.Builder
	v.writeCanonicalKey(&sb)
	return sb.String()
}

func (v Value) writeCanonicalKey(sb *strings.Builder) {
	switch v.kind {
	case ValueNull:
		sb.WriteString("null")
	case ValueInt:
		sb.WriteString("i:")
		sb.WriteString(strconv.FormatInt(v.i, 10))
	case ValueFloat:
		sb.WriteString("f:")
		sb.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case ValueString:
		sb.WriteString("s:")
		sb.WriteString(strconv.Quote(v.s))
	case ValueBytes:
		sb.WriteString("b:")
		sb.WriteString(strconv.Quote(string(v.b)))
	case ValueList:
		sb.WriteString("l:[")
		for i, e := range v.list {
			if i > 0 {
				sb.WriteByte(',')
			}
			e.writeCanonicalKey(sb)
		}
		sb.WriteByte(']')
	}
}

// String renders v in the surface-syntax form accepted by the parser
// (spec §4.1's `literal` production), used for a node's cached to_s form.
func (v Value) String() string {
	switch v.kind {
	case ValueNull:
		return "null"
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueString:
		return "'" + strings.ReplaceAll(strings.ReplaceAll(v.s, `\`, `\\`), "'", `\'`) + "'"
	case ValueBytes:
		return "'" + strings.ReplaceAll(strings.ReplaceAll(string(v.b), `\`, `\\`), "'", `\'`) + "'"
	case ValueList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprintf("<invalid value kind %d>", v.kind)
	}
}
