// Package confgen renders environment-specific configuration files from
// ".erb"-suffixed templates, substituting values from an app_config value
// document. It is the convenience surface over pkg/generator for callers
// that want a single function call; everything here is an alias or a thin
// forwarder.
package confgen

import (
	"context"

	"github.com/goliatone/go-confgen/pkg/generator"
	"github.com/goliatone/go-confgen/pkg/report"
	"github.com/goliatone/go-confgen/pkg/values"
)

// Document is the decoded configuration-value mapping with dotted access.
type Document = values.Document

// Reporter receives progress messages during a run.
type Reporter = report.Reporter

// Option customises the underlying generator.
type Option = generator.Option

// ErrMissingConfiguration reports that no value document exists for the
// resolved name.
var ErrMissingConfiguration = values.ErrMissingConfiguration

// NewGenerator exposes the generator constructor from the top-level module.
func NewGenerator(options ...Option) *generator.Generator {
	return generator.New(options...)
}

// Generate runs one full generation pass for the given environment; an
// empty environment selects the default app_config document. It is the
// simplest entry point for build scripts embedding the tool.
func Generate(ctx context.Context, environment string, options ...Option) error {
	return generator.New(options...).Generate(ctx, environment)
}

// WithBaseDir roots the run at a directory other than the current one.
func WithBaseDir(dir string) Option {
	return generator.WithBaseDir(dir)
}

// WithReporter routes progress messages somewhere other than the default
// discard sink.
func WithReporter(reporter Reporter) Option {
	return generator.WithReporter(reporter)
}
