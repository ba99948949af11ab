package diag

import "strconv"

// Detail provides key-value context for diagnostic issues.
//
// Details are used to add structured information to issues that can be
// programmatically inspected by tools. Use the standard detail key constants
// to ensure consistent key naming across the codebase.
type Detail struct {
	Key   string
	Value string
}

// Standard detail keys for consistent diagnostic metadata.
//
// Use these constants to avoid stringly-typed drift and enable programmatic
// inspection of diagnostic details. Custom detail keys are permitted for
// domain-specific diagnostics; use lower_snake_case for custom keys.
const (
	// DetailKeyExpected is the expected value, type, or arity.
	DetailKeyExpected = "expected"

	// DetailKeyGot is the actual value, type, or arity received.
	DetailKeyGot = "got"

	// DetailKeyCallName is the call name involved in the diagnostic.
	DetailKeyCallName = "call"

	// DetailKeyNodeText is the node's cached S-expression text form.
	DetailKeyNodeText = "node"

	// DetailKeyNodeIndex is a node's assigned BFS index.
	DetailKeyNodeIndex = "index"

	// DetailKeyTemplateName is the template name involved.
	DetailKeyTemplateName = "template"

	// DetailKeyParamName is the template parameter name involved.
	DetailKeyParamName = "param"

	// DetailKeyIteration is the fixpoint iteration count at which a
	// transform-stage diagnostic was recorded.
	DetailKeyIteration = "iteration"

	// DetailKeyRootIndex is a root's index within a Context's root list.
	DetailKeyRootIndex = "root_index"

	// DetailKeyReason is the failure reason discriminant.
	DetailKeyReason = "reason"

	// DetailKeyOffset is a byte offset into parsed S-expression input.
	DetailKeyOffset = "offset"

	// DetailKeyExcerpt is a short excerpt of input surrounding a parse error.
	DetailKeyExcerpt = "excerpt"

	// DetailKeyContext is contextual information (e.g., "Engine", "MergeGraph").
	DetailKeyContext = "context"
)

// ExpectedGot creates a pair of details for mismatch diagnostics (arity,
// type, or shape).
func ExpectedGot(expected, got string) []Detail {
	return []Detail{
		{Key: DetailKeyExpected, Value: expected},
		{Key: DetailKeyGot, Value: got},
	}
}

// CallNode creates detail entries identifying the call name and node text
// involved in a validate/transform/pre_evaluate diagnostic.
func CallNode(callName, nodeText string) []Detail {
	return []Detail{
		{Key: DetailKeyCallName, Value: callName},
		{Key: DetailKeyNodeText, Value: nodeText},
	}
}

// TemplateParam creates detail entries for template-definition diagnostics
// naming the template and the offending parameter.
func TemplateParam(templateName, paramName string) []Detail {
	return []Detail{
		{Key: DetailKeyTemplateName, Value: templateName},
		{Key: DetailKeyParamName, Value: paramName},
	}
}

// ParseOffset creates detail entries for parse diagnostics: the byte offset
// of the error and a short excerpt of the surrounding input.
func ParseOffset(offset int, excerpt string) []Detail {
	return []Detail{
		{Key: DetailKeyOffset, Value: strconv.Itoa(offset)},
		{Key: DetailKeyExcerpt, Value: excerpt},
	}
}
