package diag

import (
	"strings"
	"testing"

	"github.com/ironbee/predicate/origin"
)

func TestNewRenderer_Defaults(t *testing.T) {
	r := NewRenderer()

	issue := NewIssue(Error, E_PARSE_SYNTAX, "test error").Build()
	output := r.FormatIssue(issue)

	if !strings.Contains(output, "error") {
		t.Error("output should contain severity")
	}
	if !strings.Contains(output, "E_PARSE_SYNTAX") {
		t.Error("output should contain code")
	}
	if !strings.Contains(output, "test error") {
		t.Error("output should contain message")
	}
}

func TestRenderer_WriteOrigins_Unknown(t *testing.T) {
	r := NewRenderer()

	issue := NewIssue(Error, E_PARSE_SYNTAX, "error").Build()
	output := r.FormatIssue(issue)

	if !strings.HasPrefix(output, "<unknown>:") {
		t.Errorf("output should start with '<unknown>:', got:\n%s", output)
	}
}

func TestRenderer_WriteOrigins_Single(t *testing.T) {
	r := NewRenderer()

	issue := NewIssue(Error, E_PARSE_SYNTAX, "error").
		WithOrigins(origin.NewSet("rule.pred:10")).
		Build()
	output := r.FormatIssue(issue)

	if !strings.HasPrefix(output, "rule.pred:10:") {
		t.Errorf("output should start with origin tag, got:\n%s", output)
	}
}

func TestRenderer_WriteOrigins_Multiple(t *testing.T) {
	r := NewRenderer()

	origins := origin.NewSet("a.pred:1")
	origins.Add("b.pred:2")

	issue := NewIssue(Error, E_PARSE_SYNTAX, "error").
		WithOrigins(origins).
		Build()
	output := r.FormatIssue(issue)

	if !strings.Contains(output, "a.pred:1, b.pred:2") {
		t.Errorf("output should contain joined origin tags, got:\n%s", output)
	}
}

func TestRenderer_MaxDetailWidth(t *testing.T) {
	longText := strings.Repeat("x", 200)

	r := NewRenderer(WithMaxDetailWidth(50))

	issue := NewIssue(Error, E_VALIDATE_NODE, "error").
		WithDetail(DetailKeyNodeText, longText).
		Build()

	output := r.FormatIssue(issue)

	if !strings.Contains(output, "...") {
		t.Error("long detail value should be truncated with indicator")
	}
	if strings.Contains(output, strings.Repeat("x", 100)) {
		t.Error("detail value should be truncated before 100 chars")
	}
}

func TestRenderer_MaxDetailWidth_Disabled(t *testing.T) {
	longText := strings.Repeat("x", 200)

	r := NewRenderer(WithMaxDetailWidth(0))

	issue := NewIssue(Error, E_VALIDATE_NODE, "error").
		WithDetail(DetailKeyNodeText, longText).
		Build()

	output := r.FormatIssue(issue)

	if !strings.Contains(output, longText) {
		t.Error("detail value should not be truncated when disabled")
	}
}

func TestRenderer_WithTruncationIndicator(t *testing.T) {
	longText := strings.Repeat("x", 200)

	r := NewRenderer(
		WithMaxDetailWidth(50),
		WithTruncationIndicator("[...]"),
	)

	issue := NewIssue(Error, E_VALIDATE_NODE, "error").
		WithDetail(DetailKeyNodeText, longText).
		Build()

	output := r.FormatIssue(issue)

	if !strings.Contains(output, "[...]") {
		t.Error("should use custom truncation indicator")
	}
}

func TestRenderer_WithColors(t *testing.T) {
	r := NewRenderer(WithColors(true))

	tests := []struct {
		severity Severity
		ansi     string
	}{
		{Fatal, "\033[1;31m"},   // Bold red
		{Error, "\033[1;31m"},   // Bold red
		{Warning, "\033[1;33m"}, // Bold yellow
		{Info, "\033[1;36m"},    // Bold cyan
		{Hint, "\033[1;32m"},    // Bold green
	}

	for _, tt := range tests {
		t.Run(tt.severity.String(), func(t *testing.T) {
			issue := NewIssue(tt.severity, E_PARSE_SYNTAX, "message").Build()
			output := r.FormatIssue(issue)

			if !strings.Contains(output, tt.ansi) {
				t.Errorf("output should contain ANSI code %q for %s", tt.ansi, tt.severity)
			}
			if !strings.Contains(output, "\033[0m") {
				t.Error("output should contain ANSI reset")
			}
		})
	}
}

func TestRenderer_WithColors_Disabled(t *testing.T) {
	r := NewRenderer(WithColors(false))

	issue := NewIssue(Error, E_PARSE_SYNTAX, "error").Build()
	output := r.FormatIssue(issue)

	if strings.Contains(output, "\033[") {
		t.Error("output should not contain ANSI codes when colors disabled")
	}
}

func TestRenderer_WithDistinguishFatal(t *testing.T) {
	issue := NewIssue(Fatal, E_LIMIT_REACHED, "limit").Build()

	// Default: Fatal renders as "error"
	r1 := NewRenderer()
	output1 := r1.FormatIssue(issue)
	if !strings.Contains(output1, ": error[") {
		t.Errorf("Fatal should render as 'error' by default, got: %s", output1)
	}

	// With distinguish: Fatal renders as "fatal"
	r2 := NewRenderer(WithDistinguishFatal(true))
	output2 := r2.FormatIssue(issue)
	if !strings.Contains(output2, ": fatal[") {
		t.Errorf("Fatal should render as 'fatal' when distinguished, got: %s", output2)
	}
}

func TestRenderer_FormatIssue_Hint(t *testing.T) {
	issue := NewIssue(Error, E_PARSE_SYNTAX, "error message").
		WithHint("try doing X instead").
		Build()

	r := NewRenderer()
	output := r.FormatIssue(issue)

	if !strings.Contains(output, "hint: try doing X instead") {
		t.Errorf("output should contain hint, got: %s", output)
	}
}

func TestRenderer_FormatIssue_RelatedRoot(t *testing.T) {
	issue := NewIssue(Error, E_TRANSFORM_NODE, "transform error").
		WithOrigins(origin.NewSet("rule.pred:3")).
		WithRelatedRoot(2, origin.NewSet("root.pred:1")).
		Build()

	r := NewRenderer()
	output := r.FormatIssue(issue)

	if !strings.Contains(output, "note: root 2 transitively depends on this node") {
		t.Errorf("output should contain related-root note, got: %s", output)
	}
	if !strings.Contains(output, "origins: root.pred:1") {
		t.Errorf("output should contain related-root origins, got: %s", output)
	}
}

func TestRenderer_FormatResult(t *testing.T) {
	c := NewCollector(0)
	c.Collect(NewIssue(Error, E_PARSE_SYNTAX, "first error").Build())
	c.Collect(NewIssue(Warning, E_TEMPLATE_REDEFINED, "warning").Build())
	c.Collect(NewIssue(Error, E_UNKNOWN_CALL, "second error").Build())

	r := NewRenderer()
	output := r.FormatResult(c.Result())

	if !strings.Contains(output, "first error") {
		t.Error("output should contain first error")
	}
	if !strings.Contains(output, "warning") {
		t.Error("output should contain warning")
	}
	if !strings.Contains(output, "second error") {
		t.Error("output should contain second error")
	}
}

func TestRenderer_FormatResult_Empty(t *testing.T) {
	r := NewRenderer()
	output := r.FormatResult(OK())

	if output != "" {
		t.Errorf("FormatResult(OK()) should be empty, got: %q", output)
	}
}

func TestRenderer_FormatIssues(t *testing.T) {
	issues := []Issue{
		NewIssue(Error, E_PARSE_SYNTAX, "first").Build(),
		NewIssue(Error, E_PARSE_SYNTAX, "second").Build(),
	}

	r := NewRenderer()
	output := r.FormatIssues(issues)

	if !strings.Contains(output, "first") || !strings.Contains(output, "second") {
		t.Errorf("output should contain both issues, got: %s", output)
	}
	lines := strings.Split(output, "\n")
	if len(lines) < 2 {
		t.Errorf("issues should be on separate lines, got: %s", output)
	}
}

func TestRenderer_FormatIssues_Empty(t *testing.T) {
	r := NewRenderer()
	output := r.FormatIssues(nil)

	if output != "" {
		t.Errorf("FormatIssues(nil) should be empty, got: %q", output)
	}
}

func TestRenderer_CompleteOutput(t *testing.T) {
	r := NewRenderer(WithMaxDetailWidth(200))

	issue := NewIssue(Error, E_UNKNOWN_CALL, `call "frob" is not registered`).
		WithOrigins(origin.NewSet("rule.pred:6")).
		WithHint(`register a CallFactory entry for "frob"`).
		WithDetail(DetailKeyCallName, "frob").
		WithRelatedRoot(0, origin.NewSet("root.pred:1")).
		Build()

	output := r.FormatIssue(issue)

	expected := []string{
		"rule.pred:6",
		"error",
		"E_UNKNOWN_CALL",
		`call "frob" is not registered`,
		"hint: register a CallFactory entry",
		"call: frob",
		"note: root 0 transitively depends on this node",
	}

	for _, s := range expected {
		if !strings.Contains(output, s) {
			t.Errorf("output should contain %q, got:\n%s", s, output)
		}
	}
}

func TestRenderer_Summary_NoIssues(t *testing.T) {
	r := NewRenderer()
	c := NewCollector(10)

	if got := r.Summary(c.Result()); got != "no issues" {
		t.Errorf("Summary(empty) = %q, want %q", got, "no issues")
	}
}

func TestRenderer_Summary_Singular(t *testing.T) {
	r := NewRenderer()
	c := NewCollector(10)
	c.Collect(NewIssue(Error, E_UNKNOWN_CALL, "x").Build())

	if got := r.Summary(c.Result()); got != "1 error" {
		t.Errorf("Summary() = %q, want %q", got, "1 error")
	}
}

func TestRenderer_Summary_PluralAndMixed(t *testing.T) {
	r := NewRenderer()
	c := NewCollector(10)
	c.Collect(NewIssue(Error, E_UNKNOWN_CALL, "x").Build())
	c.Collect(NewIssue(Error, E_UNKNOWN_CALL, "y").Build())
	c.Collect(NewIssue(Warning, E_TEMPLATE_REDEFINED, "z").Build())

	got := r.Summary(c.Result())
	if !strings.Contains(got, "2 errors") {
		t.Errorf("Summary() = %q, want it to contain %q", got, "2 errors")
	}
	if !strings.Contains(got, "1 warning") {
		t.Errorf("Summary() = %q, want it to contain %q", got, "1 warning")
	}
}
