package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironbee/predicate/origin"
)

// TestCodeEmission_AllCodes verifies that every defined code can be used
// to create a valid issue that passes through the diagnostic pipeline.
func TestCodeEmission_AllCodes(t *testing.T) {
	t.Parallel()

	codes := AllCodes()
	require.NotEmpty(t, codes, "AllCodes should return all defined codes")

	for _, code := range codes {
		t.Run(code.String(), func(t *testing.T) {
			t.Parallel()
			issue := NewIssue(Error, code, "test message for "+code.String()).Build()

			assert.True(t, issue.IsValid(), "Issue with %s should be valid", code.String())
			assert.Equal(t, code, issue.Code())
			assert.Contains(t, issue.Message(), code.String())

			collector := NewCollector(100)
			collector.Collect(issue)

			result := collector.Result()
			assert.True(t, result.HasErrors())

			foundCode := false
			for i := range result.Issues() {
				if i.Code() == code {
					foundCode = true
					break
				}
			}
			assert.True(t, foundCode, "Code %s should be present in result", code.String())
		})
	}
}

// TestCodeEmission_Categories verifies that each category has at least one code.
func TestCodeEmission_Categories(t *testing.T) {
	t.Parallel()

	categories := []CodeCategory{
		CategorySentinel,
		CategoryParse,
		CategoryFactory,
		CategoryTemplate,
		CategoryValidate,
		CategoryTransform,
		CategoryPreEvaluate,
		CategoryState,
		CategoryOracle,
	}

	for _, cat := range categories {
		t.Run(cat.String(), func(t *testing.T) {
			t.Parallel()
			codes := CodesByCategory(cat)
			assert.NotEmpty(t, codes, "Category %s should have at least one code", cat.String())
		})
	}
}

// TestCodeEmission_Uniqueness verifies that all code string values are unique.
func TestCodeEmission_Uniqueness(t *testing.T) {
	t.Parallel()

	codes := AllCodes()
	seen := make(map[string]bool)

	for _, code := range codes {
		str := code.String()
		assert.False(t, seen[str], "Duplicate code string: %s", str)
		seen[str] = true
	}
}

// TestCodeEmission_SentinelCodes verifies the sentinel codes behave correctly.
func TestCodeEmission_SentinelCodes(t *testing.T) {
	t.Parallel()

	t.Run("E_LIMIT_REACHED", func(t *testing.T) {
		t.Parallel()
		issue := NewIssue(Fatal, E_LIMIT_REACHED, "limit reached").Build()
		assert.Equal(t, E_LIMIT_REACHED, issue.Code())
		assert.Equal(t, Fatal, issue.Severity())
	})

	t.Run("E_INTERNAL", func(t *testing.T) {
		t.Parallel()
		issue := NewIssue(Error, E_INTERNAL, "internal error").Build()
		assert.Equal(t, E_INTERNAL, issue.Code())
	})
}

// TestCodeEmission_WithOrigins verifies codes work with origin provenance.
func TestCodeEmission_WithOrigins(t *testing.T) {
	t.Parallel()

	origins := origin.NewSet("rule.pred:1")

	codes := []Code{
		E_PARSE_SYNTAX,
		E_UNKNOWN_CALL,
		E_VALIDATE_NODE,
		E_TRANSFORM_NODE,
	}

	for _, code := range codes {
		t.Run(code.String(), func(t *testing.T) {
			t.Parallel()
			issue := NewIssue(Error, code, "test message").
				WithOrigins(origins).
				Build()

			assert.Equal(t, origins.Len(), issue.Origins().Len())
			assert.Equal(t, code, issue.Code())
			assert.True(t, issue.HasOrigins())
		})
	}
}

// TestCodeEmission_WithDetails verifies codes work with detail fields.
func TestCodeEmission_WithDetails(t *testing.T) {
	t.Parallel()

	issue := NewIssue(Error, E_VALIDATE_NODE, "validation failed").
		WithExpectedGot("int", "string").
		WithDetail("call_name", "eq").
		Build()

	assert.Equal(t, E_VALIDATE_NODE, issue.Code())

	details := issue.Details()
	detailMap := make(map[string]string)
	for _, d := range details {
		detailMap[d.Key] = d.Value
	}
	assert.Equal(t, "int", detailMap[DetailKeyExpected])
	assert.Equal(t, "string", detailMap[DetailKeyGot])
	assert.Equal(t, "eq", detailMap["call_name"])
}

// TestCodeEmission_ParseCodes verifies parse codes can be created.
func TestCodeEmission_ParseCodes(t *testing.T) {
	t.Parallel()

	codes := CodesByCategory(CategoryParse)
	require.NotEmpty(t, codes)

	for _, code := range codes {
		assert.Equal(t, CategoryParse, code.Category())
	}
}

// TestCodeEmission_FactoryCodes verifies factory codes can be created.
func TestCodeEmission_FactoryCodes(t *testing.T) {
	t.Parallel()

	codes := CodesByCategory(CategoryFactory)
	require.NotEmpty(t, codes)

	for _, code := range codes {
		assert.Equal(t, CategoryFactory, code.Category())
	}
}

// TestCodeEmission_TemplateCodes verifies template codes can be created.
func TestCodeEmission_TemplateCodes(t *testing.T) {
	t.Parallel()

	codes := CodesByCategory(CategoryTemplate)
	require.NotEmpty(t, codes)

	for _, code := range codes {
		assert.Equal(t, CategoryTemplate, code.Category())
	}
}

// TestCodeEmission_ValidateCodes verifies validate codes can be created.
func TestCodeEmission_ValidateCodes(t *testing.T) {
	t.Parallel()

	codes := CodesByCategory(CategoryValidate)
	require.NotEmpty(t, codes)

	for _, code := range codes {
		assert.Equal(t, CategoryValidate, code.Category())
	}
}

// TestCodeEmission_TransformCodes verifies transform codes can be created.
func TestCodeEmission_TransformCodes(t *testing.T) {
	t.Parallel()

	codes := CodesByCategory(CategoryTransform)
	require.NotEmpty(t, codes)

	for _, code := range codes {
		assert.Equal(t, CategoryTransform, code.Category())
	}
}

// TestCodeEmission_StateCodes verifies state codes can be created.
func TestCodeEmission_StateCodes(t *testing.T) {
	t.Parallel()

	codes := CodesByCategory(CategoryState)
	require.NotEmpty(t, codes)

	for _, code := range codes {
		assert.Equal(t, CategoryState, code.Category())
	}
}

// TestCodeEmission_OracleCodes verifies oracle codes can be created.
func TestCodeEmission_OracleCodes(t *testing.T) {
	t.Parallel()

	codes := CodesByCategory(CategoryOracle)
	require.NotEmpty(t, codes)

	for _, code := range codes {
		assert.Equal(t, CategoryOracle, code.Category())
	}
}

// TestCodeEmission_ZeroCode verifies zero code behavior.
func TestCodeEmission_ZeroCode(t *testing.T) {
	t.Parallel()

	var zeroCode Code
	assert.True(t, zeroCode.IsZero())
	assert.Equal(t, "", zeroCode.String())
}

// TestCodeEmission_SpecificCodes tests specific codes named in the lifecycle
// error taxonomy.
func TestCodeEmission_SpecificCodes(t *testing.T) {
	t.Parallel()

	specificCodes := []struct {
		code        Code
		category    CodeCategory
		description string
	}{
		{E_TEMPLATE_UNDECLARED_PARAM, CategoryTemplate, "ref to undeclared parameter"},
		{E_TEMPLATE_REDEFINED, CategoryTemplate, "template name collides with existing call"},
		{E_TEMPLATE_ARITY, CategoryTemplate, "instantiation argument count mismatch"},
		{E_STATE_CYCLE, CategoryState, "mutation would introduce a cycle"},
		{E_STATE_PARENT_MISMATCH, CategoryState, "parent/child back-reference inconsistent"},
		{E_QUERY_BEFORE_CLOSE, CategoryOracle, "oracle invoked before context closed"},
		{E_QUERY_AFTER_CLOSE, CategoryOracle, "oracle invoked after context released"},
	}

	for _, tc := range specificCodes {
		t.Run(tc.code.String(), func(t *testing.T) {
			t.Parallel()
			assert.False(t, tc.code.IsZero(), "Code should not be zero")
			assert.Equal(t, tc.category, tc.code.Category(), "Category mismatch")

			issue := NewIssue(Error, tc.code, tc.description).Build()
			assert.True(t, issue.IsValid())
		})
	}
}

// TestCodeEmission_CollectorPreservesCode verifies the collector preserves codes.
func TestCodeEmission_CollectorPreservesCode(t *testing.T) {
	t.Parallel()

	collector := NewCollector(100)

	codes := []Code{
		E_VALIDATE_NODE,
		E_TRANSFORM_NODE,
		E_UNKNOWN_CALL,
		E_PARSE_SYNTAX,
	}

	for _, code := range codes {
		issue := NewIssue(Error, code, "test "+code.String()).Build()
		collector.Collect(issue)
	}

	result := collector.Result()
	assert.True(t, result.HasErrors())

	collectedCodes := make(map[string]bool)
	for issue := range result.Issues() {
		collectedCodes[issue.Code().String()] = true
	}

	for _, code := range codes {
		assert.True(t, collectedCodes[code.String()], "Code %s should be in result", code.String())
	}
}

// TestCodeEmission_ResultFilterByCode tests filtering issues by code.
func TestCodeEmission_ResultFilterByCode(t *testing.T) {
	t.Parallel()

	collector := NewCollector(100)
	collector.Collect(NewIssue(Error, E_VALIDATE_NODE, "validate error 1").Build())
	collector.Collect(NewIssue(Error, E_VALIDATE_NODE, "validate error 2").Build())
	collector.Collect(NewIssue(Error, E_PARSE_SYNTAX, "parse error").Build())

	result := collector.Result()

	validateCount := 0
	parseCount := 0
	for issue := range result.Issues() {
		switch issue.Code() {
		case E_VALIDATE_NODE:
			validateCount++
		case E_PARSE_SYNTAX:
			parseCount++
		}
	}

	assert.Equal(t, 2, validateCount)
	assert.Equal(t, 1, parseCount)
}
