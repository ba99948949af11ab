package diag

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ironbee/predicate/origin"
)

// rendererConfig holds renderer configuration.
type rendererConfig struct {
	colorize            bool
	distinguishFatal    bool
	maxDetailWidth      int
	truncationIndicator string
}

// RendererOption configures Renderer behavior.
type RendererOption func(*rendererConfig)

// WithColors enables or disables ANSI color output.
func WithColors(on bool) RendererOption {
	return func(c *rendererConfig) {
		c.colorize = on
	}
}

// WithDistinguishFatal controls whether Fatal is rendered as "fatal" or "error".
//
// Fatal is typically rendered as "error" for user-facing output. Set this to
// true to preserve the Fatal/Error distinction.
func WithDistinguishFatal(distinguish bool) RendererOption {
	return func(c *rendererConfig) {
		c.distinguishFatal = distinguish
	}
}

// WithMaxDetailWidth sets the maximum width of a rendered node-text detail
// before truncation. Node text forms can be arbitrarily deep S-expressions;
// without a cap a single issue can dwarf the rest of a report.
//
// Default is 120. A value of 0 disables truncation.
func WithMaxDetailWidth(n int) RendererOption {
	return func(c *rendererConfig) {
		c.maxDetailWidth = n
	}
}

// WithTruncationIndicator sets the indicator for truncated detail values.
//
// Default is "...".
func WithTruncationIndicator(s string) RendererOption {
	return func(c *rendererConfig) {
		c.truncationIndicator = s
	}
}

// Renderer provides formatting for diagnostic output.
//
// Create with [NewRenderer] and configure with [RendererOption] functions.
type Renderer struct {
	colorize            bool
	distinguishFatal    bool
	maxDetailWidth      int
	truncationIndicator string
}

// NewRenderer creates a renderer with the given options.
func NewRenderer(opts ...RendererOption) *Renderer {
	cfg := &rendererConfig{
		maxDetailWidth:      120,
		truncationIndicator: "...",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Renderer{
		colorize:            cfg.colorize,
		distinguishFatal:    cfg.distinguishFatal,
		maxDetailWidth:      cfg.maxDetailWidth,
		truncationIndicator: cfg.truncationIndicator,
	}
}

// FormatIssue formats a single issue as text.
func (r *Renderer) FormatIssue(issue Issue) string {
	var sb strings.Builder
	r.formatIssueToBuilder(&sb, issue)
	return sb.String()
}

// FormatResult formats all issues in a result as text.
func (r *Renderer) FormatResult(res Result) string {
	var sb strings.Builder
	first := true
	for issue := range res.Issues() {
		if !first {
			sb.WriteString("\n")
		}
		r.formatIssueToBuilder(&sb, issue)
		first = false
	}
	return sb.String()
}

// Summary renders a pluralized human-readable count of res's issues by
// severity, e.g. "3 errors, 1 warning" or "no issues". Counts are
// formatted through a [message.Printer], so large counts get
// locale-correct digit grouping.
func (r *Renderer) Summary(res Result) string {
	counts := res.SeverityCounts()
	p := message.NewPrinter(language.English)

	var parts []string
	addPart := func(n int, singular, plural string) {
		if n == 0 {
			return
		}
		noun := plural
		if n == 1 {
			noun = singular
		}
		parts = append(parts, p.Sprintf("%d %s", n, noun))
	}
	addPart(counts.Fatal, "fatal", "fatal")
	addPart(counts.Errors, "error", "errors")
	addPart(counts.Warnings, "warning", "warnings")
	addPart(counts.Info, "info", "info")
	addPart(counts.Hints, "hint", "hints")

	if len(parts) == 0 {
		return "no issues"
	}
	return strings.Join(parts, ", ")
}

// FormatIssues formats a slice of issues as text.
func (r *Renderer) FormatIssues(issues []Issue) string {
	var sb strings.Builder
	for i, issue := range issues {
		if i > 0 {
			sb.WriteString("\n")
		}
		r.formatIssueToBuilder(&sb, issue)
	}
	return sb.String()
}

func (r *Renderer) formatIssueToBuilder(sb *strings.Builder, issue Issue) {
	// Origin prefix
	r.writeOrigins(sb, issue)

	sb.WriteString(": ")
	r.writeSeverity(sb, issue.Severity())
	sb.WriteString("[")
	sb.WriteString(issue.Code().String())
	sb.WriteString("]: ")
	sb.WriteString(issue.Message())

	if hint := issue.Hint(); hint != "" {
		sb.WriteString("\n  hint: ")
		sb.WriteString(hint)
	}

	for _, d := range issue.Details() {
		sb.WriteString("\n  ")
		sb.WriteString(d.Key)
		sb.WriteString(": ")
		sb.WriteString(r.truncate(d.Value))
	}

	for _, rel := range issue.RelatedRoots() {
		sb.WriteString("\n  note: root ")
		sb.WriteString(strconv.Itoa(rel.RootIndex))
		sb.WriteString(" transitively depends on this node")
		if rel.Origins.Len() > 0 {
			sb.WriteString(" (origins: ")
			sb.WriteString(joinTags(rel.Origins.Tags()))
			sb.WriteString(")")
		}
	}
}

func (r *Renderer) writeOrigins(sb *strings.Builder, issue Issue) {
	if !issue.HasOrigins() {
		sb.WriteString("<unknown>")
		return
	}
	sb.WriteString(joinTags(issue.Origins().Tags()))
}

func (r *Renderer) writeSeverity(sb *strings.Builder, sev Severity) {
	label := sev.String()

	// Map Fatal to "error" unless distinguishFatal is set
	if sev == Fatal && !r.distinguishFatal {
		label = "error"
	}

	if r.colorize {
		switch sev {
		case Fatal, Error:
			sb.WriteString("\033[1;31m") // Bold red
			sb.WriteString(label)
			sb.WriteString("\033[0m")
		case Warning:
			sb.WriteString("\033[1;33m") // Bold yellow
			sb.WriteString(label)
			sb.WriteString("\033[0m")
		case Info:
			sb.WriteString("\033[1;36m") // Bold cyan
			sb.WriteString(label)
			sb.WriteString("\033[0m")
		case Hint:
			sb.WriteString("\033[1;32m") // Bold green
			sb.WriteString(label)
			sb.WriteString("\033[0m")
		default:
			sb.WriteString(label)
		}
	} else {
		sb.WriteString(label)
	}
}

func (r *Renderer) truncate(s string) string {
	if r.maxDetailWidth <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= r.maxDetailWidth {
		return s
	}
	return string(runes[:r.maxDetailWidth]) + r.truncationIndicator
}

func joinTags(tags []origin.Tag) string {
	parts := make([]string, len(tags))
	for i, t := range tags {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
