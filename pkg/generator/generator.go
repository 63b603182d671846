// Package generator coordinates a configuration generation run: load the
// value document once, discover templates, render all of them, then write
// every result. Rendering is fully decoupled from writing, so a failure
// while rendering means zero files are touched.
package generator

import (
	"context"
	"errors"

	"github.com/goliatone/go-confgen/pkg/logging"
	"github.com/goliatone/go-confgen/pkg/render"
	"github.com/goliatone/go-confgen/pkg/report"
	"github.com/goliatone/go-confgen/pkg/templates"
	"github.com/goliatone/go-confgen/pkg/values"
)

// Option customises the generator configuration.
type Option func(*Generator)

// WithBaseDir roots the whole run (value document, template discovery,
// output files) at a directory other than the current one.
func WithBaseDir(dir string) Option {
	return func(g *Generator) {
		if dir != "" {
			g.baseDir = dir
		}
	}
}

// WithLoader injects a custom value-document loader.
func WithLoader(loader *values.Loader) Option {
	return func(g *Generator) {
		g.loader = loader
	}
}

// WithFinder injects a custom template finder.
func WithFinder(finder *templates.Finder) Option {
	return func(g *Generator) {
		g.finder = finder
	}
}

// WithRenderer injects a custom template renderer.
func WithRenderer(renderer *render.Renderer) Option {
	return func(g *Generator) {
		g.renderer = renderer
	}
}

// WithWriter injects a custom output writer.
func WithWriter(writer *templates.Writer) Option {
	return func(g *Generator) {
		g.writer = writer
	}
}

// WithReporter injects the progress sink. The default reporter discards
// everything, which is what library callers usually want.
func WithReporter(reporter report.Reporter) Option {
	return func(g *Generator) {
		g.reporter = reporter
	}
}

// Generator owns one generation run's state: the memoized environment, the
// loaded value document (via the loader's cache), and the discovered
// template list (via the finder's cache). Instances are not meant to be
// reused across differing environments.
type Generator struct {
	baseDir  string
	loader   *values.Loader
	finder   *templates.Finder
	renderer *render.Renderer
	writer   *templates.Writer
	reporter report.Reporter

	environment   string
	initialiseErr error
}

// New constructs a Generator applying any provided options. Missing
// dependencies are initialised with the built-in implementations rooted at
// the configured base directory.
func New(options ...Option) *Generator {
	g := &Generator{baseDir: "."}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

func (g *Generator) applyDefaults() {
	if g.loader == nil {
		g.loader = values.NewLoader(values.WithBaseDir(g.baseDir))
	}
	if g.finder == nil {
		g.finder = templates.NewFinder(templates.WithBaseDir(g.baseDir))
	}
	if g.renderer == nil {
		engine, err := render.NewEngine(render.WithIncludeDir(g.baseDir))
		if err != nil {
			g.initialiseErr = err
			return
		}
		renderer, err := render.NewRenderer(render.WithEngine(engine))
		if err != nil {
			g.initialiseErr = err
			return
		}
		g.renderer = renderer
	}
	if g.writer == nil {
		g.writer = templates.NewWriter(g.baseDir)
	}
	if g.reporter == nil {
		g.reporter = report.Discard{}
	}
}

type rendered struct {
	outputPath string
	text       string
}

// Generate runs the full pipeline for the given environment. The first
// non-empty environment supplied to a Generator wins for the lifetime of
// the instance; later calls reuse the already-loaded document. Every
// template renders before any file is written, so a render failure leaves
// the working tree untouched. Write failures abort without rollback.
func (g *Generator) Generate(ctx context.Context, environment string) error {
	if ctx == nil {
		return errors.New("generator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if g.initialiseErr != nil {
		return g.initialiseErr
	}

	if g.environment == "" && environment != "" {
		g.environment = environment
	}

	logger := logging.GetLogger("generator")

	doc, err := g.loader.Load(g.environment)
	if err != nil {
		return err
	}
	if g.environment == "" {
		g.environment = doc.Environment()
	}

	g.reporter.Headline("Generating config files...")

	paths, err := g.finder.Find()
	if err != nil {
		return err
	}
	logger.Debug().
		Int("templates", len(paths)).
		Str("environment", g.environment).
		Msg("render phase started")

	results := make([]rendered, 0, len(paths))
	for _, path := range paths {
		text, err := templates.ReadSource(g.baseDir, path)
		if err != nil {
			return err
		}
		out, err := g.renderer.Render(path, text, doc)
		if err != nil {
			return err
		}
		results = append(results, rendered{
			outputPath: templates.OutputPath(path),
			text:       out,
		})
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	g.reporter.Headline("Saving config files...")

	for _, result := range results {
		g.reporter.Progress("saving " + result.outputPath)
		if err := g.writer.Write(result.outputPath, result.text); err != nil {
			return err
		}
		logger.Debug().Str("path", result.outputPath).Msg("config file written")
	}

	return nil
}
