package diag

// CodeCategory represents the semantic domain of an error code, corresponding
// to one of the error kinds named in spec.md §7.
type CodeCategory uint8

const (
	// CategorySentinel is for sentinel codes like E_LIMIT_REACHED and E_INTERNAL.
	CategorySentinel CodeCategory = iota

	// CategoryParse is for S-expression parse errors (ParseError).
	CategoryParse

	// CategoryFactory is for call-factory errors (UnknownCall).
	CategoryFactory

	// CategoryTemplate is for template-definition errors (InvalidTemplate).
	CategoryTemplate

	// CategoryValidate is for node validate(PRE|POST) errors (ValidationError).
	CategoryValidate

	// CategoryTransform is for transform-stage errors (TransformError).
	CategoryTransform

	// CategoryPreEvaluate is for pre_evaluate-stage errors (PreEvaluationError).
	CategoryPreEvaluate

	// CategoryState is for internal consistency failures (InvalidState).
	CategoryState

	// CategoryOracle is for oracle lifecycle misuse (QueryAfterClose/QueryBeforeClose).
	CategoryOracle
)

// String returns a human-readable label for the category.
func (c CodeCategory) String() string {
	switch c {
	case CategorySentinel:
		return "sentinel"
	case CategoryParse:
		return "parse"
	case CategoryFactory:
		return "factory"
	case CategoryTemplate:
		return "template"
	case CategoryValidate:
		return "validate"
	case CategoryTransform:
		return "transform"
	case CategoryPreEvaluate:
		return "pre_evaluate"
	case CategoryState:
		return "state"
	case CategoryOracle:
		return "oracle"
	default:
		return "unknown"
	}
}

// Code is a stable programmatic identifier for an Issue.
//
// Error codes are stable identifiers that tools can match on, even when
// message text changes. The Code type uses unexported fields to enforce a
// closed set of valid codes — only codes defined in this package are valid.
type Code struct {
	value string
	cat   CodeCategory
}

// String returns the code's string representation (e.g., "E_UNKNOWN_CALL").
func (c Code) String() string {
	return c.value
}

// Category returns the programmatic category for this code.
func (c Code) Category() CodeCategory {
	return c.cat
}

// IsZero reports whether the code is unset.
func (c Code) IsZero() bool {
	return c.value == ""
}

// code is the unexported constructor — callers cannot create arbitrary codes.
func code(value string, cat CodeCategory) Code {
	return Code{value: value, cat: cat}
}

// Sentinel codes.
var (
	// E_LIMIT_REACHED marks explicit limit notification (e.g. a collector cap).
	E_LIMIT_REACHED = code("E_LIMIT_REACHED", CategorySentinel)

	// E_INTERNAL indicates an unexpected invariant failure (internal bug indicator).
	E_INTERNAL = code("E_INTERNAL", CategorySentinel)
)

// Parse codes (spec.md §4.1, §7 ParseError).
var (
	// E_PARSE_SYNTAX indicates malformed S-expression input.
	E_PARSE_SYNTAX = code("E_PARSE_SYNTAX", CategoryParse)

	// E_PARSE_TRAILING indicates more than the tolerated single trailing byte
	// remained after the top-level expression.
	E_PARSE_TRAILING = code("E_PARSE_TRAILING", CategoryParse)
)

// Factory codes (spec.md §4.2, §7 UnknownCall).
var (
	// E_UNKNOWN_CALL indicates a call name the CallFactory cannot construct.
	E_UNKNOWN_CALL = code("E_UNKNOWN_CALL", CategoryFactory)

	// E_DUPLICATE_CALL indicates an attempt to re-register an existing call name.
	E_DUPLICATE_CALL = code("E_DUPLICATE_CALL", CategoryFactory)
)

// Template codes (spec.md §4.5, §7 InvalidTemplate).
var (
	// E_TEMPLATE_UNDECLARED_PARAM indicates a ref(x) in a template body names a
	// parameter the template did not declare.
	E_TEMPLATE_UNDECLARED_PARAM = code("E_TEMPLATE_UNDECLARED_PARAM", CategoryTemplate)

	// E_TEMPLATE_REDEFINED indicates a template name collides with an existing call.
	E_TEMPLATE_REDEFINED = code("E_TEMPLATE_REDEFINED", CategoryTemplate)

	// E_TEMPLATE_ARITY indicates an instantiation's argument count did not match
	// the template's declared parameter count.
	E_TEMPLATE_ARITY = code("E_TEMPLATE_ARITY", CategoryTemplate)
)

// Validate codes (spec.md §4.4, §7 ValidationError).
var (
	// E_VALIDATE_NODE indicates a node's validate(PRE|POST) reported an error.
	E_VALIDATE_NODE = code("E_VALIDATE_NODE", CategoryValidate)
)

// Transform codes (spec.md §4.4, §7 TransformError).
var (
	// E_TRANSFORM_NODE indicates a node's transform reported an error.
	E_TRANSFORM_NODE = code("E_TRANSFORM_NODE", CategoryTransform)

	// E_TRANSFORM_NONCONVERGENT indicates the fixpoint iteration cap was reached.
	E_TRANSFORM_NONCONVERGENT = code("E_TRANSFORM_NONCONVERGENT", CategoryTransform)
)

// PreEvaluate codes (spec.md §4.4, §7 PreEvaluationError).
var (
	// E_PRE_EVALUATE_NODE indicates a node's pre_evaluate reported an error.
	E_PRE_EVALUATE_NODE = code("E_PRE_EVALUATE_NODE", CategoryPreEvaluate)
)

// State codes (spec.md §7 InvalidState).
var (
	// E_STATE_CYCLE indicates a mutation would have introduced a cycle.
	E_STATE_CYCLE = code("E_STATE_CYCLE", CategoryState)

	// E_STATE_PARENT_MISMATCH indicates a parent/child back-reference is inconsistent.
	E_STATE_PARENT_MISMATCH = code("E_STATE_PARENT_MISMATCH", CategoryState)

	// E_STATE_DUPLICATE_REPRESENTATIVE indicates two live nodes are structurally equal.
	E_STATE_DUPLICATE_REPRESENTATIVE = code("E_STATE_DUPLICATE_REPRESENTATIVE", CategoryState)
)

// Oracle codes (spec.md §7 QueryAfterClose/QueryBeforeClose).
var (
	// E_QUERY_BEFORE_CLOSE indicates an oracle was invoked before its context closed.
	E_QUERY_BEFORE_CLOSE = code("E_QUERY_BEFORE_CLOSE", CategoryOracle)

	// E_QUERY_AFTER_CLOSE indicates an oracle was invoked against a released context.
	E_QUERY_AFTER_CLOSE = code("E_QUERY_AFTER_CLOSE", CategoryOracle)
)

// allCodes contains all defined codes for AllCodes() and uniqueness verification.
var allCodes = []Code{
	E_LIMIT_REACHED,
	E_INTERNAL,
	E_PARSE_SYNTAX,
	E_PARSE_TRAILING,
	E_UNKNOWN_CALL,
	E_DUPLICATE_CALL,
	E_TEMPLATE_UNDECLARED_PARAM,
	E_TEMPLATE_REDEFINED,
	E_TEMPLATE_ARITY,
	E_VALIDATE_NODE,
	E_TRANSFORM_NODE,
	E_TRANSFORM_NONCONVERGENT,
	E_PRE_EVALUATE_NODE,
	E_STATE_CYCLE,
	E_STATE_PARENT_MISMATCH,
	E_STATE_DUPLICATE_REPRESENTATIVE,
	E_QUERY_BEFORE_CLOSE,
	E_QUERY_AFTER_CLOSE,
}

// AllCodes returns all defined codes. The returned slice is a copy;
// modifications do not affect the original.
func AllCodes() []Code {
	result := make([]Code, len(allCodes))
	copy(result, allCodes)
	return result
}

// CodesByCategory returns codes in the given category. The returned slice is
// a new allocation; modifications do not affect internal state.
func CodesByCategory(cat CodeCategory) []Code {
	var result []Code
	for _, c := range allCodes {
		if c.cat == cat {
			result = append(result, c)
		}
	}
	return result
}
