package lifecycle

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/internal/trace"
)

// Reporter is the diagnostics sink described in spec.md §4.4: for every
// message produced by validate/transform/pre_evaluate, it is handed the
// severity, message, the node's text and origins, and (via
// [diag.Issue.RelatedRoots], populated by the lifecycle runner before the
// call) every root that transitively depends on the node and that root's own
// origins.
type Reporter interface {
	Report(ctx context.Context, issue diag.Issue)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(context.Context, diag.Issue)

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, issue diag.Issue) {
	f(ctx, issue)
}

// SlogReporter logs each issue via internal/trace at a level derived from
// its severity. The zero value is usable; a nil Logger makes every call a
// no-op, per trace's nil-safe convention.
type SlogReporter struct {
	Logger *slog.Logger
}

// Report logs issue's severity, message, node text, origins, and related
// roots.
func (r SlogReporter) Report(ctx context.Context, issue diag.Issue) {
	attrs := []slog.Attr{
		slog.String("code", issue.Code().String()),
		slog.String("message", issue.Message()),
	}
	if issue.HasOrigins() {
		tags := issue.Origins().Tags()
		strs := make([]string, len(tags))
		for i, t := range tags {
			strs[i] = string(t)
		}
		attrs = append(attrs, slog.Any("origins", strs))
	}
	if roots := issue.RelatedRoots(); len(roots) > 0 {
		related := make([]string, len(roots))
		for i, rr := range roots {
			related[i] = rootSummary(rr)
		}
		attrs = append(attrs, slog.Any("related_roots", related))
	}
	for _, d := range issue.Details() {
		attrs = append(attrs, slog.String(d.Key, d.Value))
	}

	switch {
	case issue.Severity().IsFailure():
		trace.Error(ctx, r.Logger, "lifecycle diagnostic", attrs...)
	case issue.Severity() == diag.Warning:
		trace.Warn(ctx, r.Logger, "lifecycle diagnostic", attrs...)
	default:
		trace.Info(ctx, r.Logger, "lifecycle diagnostic", attrs...)
	}
}

// CollectingReporter forwards every issue to an inner Reporter (for live
// logging as diagnostics are produced) while also accumulating them into a
// Collector, so the whole context-close sequence's diagnostics can be
// retrieved afterward as a single [diag.Result] -- e.g. for a caller that
// wants a severity-count summary or a rendered report of everything a
// PredicateDefine/Acquire batch produced, not just a log line per issue.
type CollectingReporter struct {
	Inner     Reporter
	collector *diag.Collector
}

// NewCollectingReporter wraps inner (nil is treated as a no-op sink) with a
// Collector bounded by limit (0/diag.NoLimit for unlimited).
func NewCollectingReporter(inner Reporter, limit int) *CollectingReporter {
	return &CollectingReporter{Inner: inner, collector: diag.NewCollector(limit)}
}

// Report forwards to Inner, if set, and records issue for Result.
func (r *CollectingReporter) Report(ctx context.Context, issue diag.Issue) {
	if r.Inner != nil {
		r.Inner.Report(ctx, issue)
	}
	r.collector.Collect(issue)
}

// Result returns a snapshot of every issue reported so far.
func (r *CollectingReporter) Result() diag.Result {
	return r.collector.Result()
}

func rootSummary(rr diag.RelatedRoot) string {
	tags := rr.Origins.Tags()
	if len(tags) == 0 {
		return strconv.Itoa(rr.RootIndex)
	}
	return strconv.Itoa(rr.RootIndex) + ":" + string(tags[0])
}
