package predicate

import (
	"log/slog"

	"github.com/ironbee/predicate/diag"
	"github.com/ironbee/predicate/lifecycle"
)

// config holds Engine construction settings assembled from Option values,
// following the teacher's functional-options shape (schema/load.Option).
type config struct {
	logger                 *slog.Logger
	issueLimit             int
	maxTransformIterations int
	reporter               lifecycle.Reporter
	registerStandardCalls  bool
}

func defaultConfig() *config {
	return &config{
		issueLimit:            diag.NoLimit,
		registerStandardCalls: true,
	}
}

func applyOptions(cfg *config, opts []Option) {
	for _, opt := range opts {
		opt(cfg)
	}
}

// Option configures an Engine at construction time.
type Option func(*config)

// WithLogger drives operation tracing and the default diagnostic reporter.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithIssueLimit bounds how many issues each node's Validate call collects
// during context close, and how many issues Context.Diagnostics retains
// per close. The zero value (diag.NoLimit) means unlimited.
func WithIssueLimit(limit int) Option {
	return func(c *config) { c.issueLimit = limit }
}

// WithMaxTransformIterations overrides the fixpoint iteration cap
// (lifecycle.DefaultMaxTransformIterations) a context close enforces.
func WithMaxTransformIterations(n int) Option {
	return func(c *config) { c.maxTransformIterations = n }
}

// WithReporter overrides the diagnostic Reporter every context close uses.
// Defaults to a lifecycle.SlogReporter driven by WithLogger's logger.
func WithReporter(r lifecycle.Reporter) Option {
	return func(c *config) { c.reporter = r }
}

// WithoutStandardCalls skips registering the stdcalls library, leaving the
// Engine's CallFactory empty for a caller that wants to build its own call
// set from scratch.
func WithoutStandardCalls() Option {
	return func(c *config) { c.registerStandardCalls = false }
}

func (c *config) lifecycleOptions() lifecycle.Options {
	return lifecycle.Options{
		Logger:                 c.logger,
		Reporter:               c.reporter,
		IssueLimit:             c.issueLimit,
		MaxTransformIterations: c.maxTransformIterations,
	}
}
