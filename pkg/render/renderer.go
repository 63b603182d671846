package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-confgen/pkg/values"
)

// forTag captures the variables bound by "{% for x in seq %}" and
// "{% for k, v in mapping %}" along with the iterated expression.
var forTag = regexp.MustCompile(`\{%\s*for\s+(\w+)(?:\s*,\s*(\w+))?\s+in\s+(.+?)\s*%\}`)

// valuePath matches one dotted value path inside an expression: identifier
// segments joined by dots, stopping before filters, operators, and numeric
// sequence indexes.
var valuePath = regexp.MustCompile(`[A-Za-z_]\w*(?:\.[A-Za-z_]\w*)*`)

// quotedString matches single- and double-quoted literals so their content
// is never mistaken for a value path.
var quotedString = regexp.MustCompile(`"[^"]*"|'[^']*'`)

// reserved are engine keywords and builtins that never resolve through the
// value document.
var reserved = map[string]struct{}{
	"forloop": {},
	"true":    {},
	"false":   {},
	"nil":     {},
	"None":    {},
	"and":     {},
	"or":      {},
	"not":     {},
	"in":      {},
}

// RendererOption customises a Renderer.
type RendererOption func(*Renderer)

// WithEngine injects a pre-built Engine, e.g. one with a custom include dir.
func WithEngine(engine *Engine) RendererOption {
	return func(r *Renderer) {
		r.engine = engine
	}
}

// Renderer evaluates template text against a value document. Every output
// marker is statically checked against the document before evaluation, so a
// template referencing a missing config value fails instead of silently
// rendering an empty string.
type Renderer struct {
	engine *Engine
}

// NewRenderer constructs a Renderer applying any provided options. A default
// Engine is built when none is injected.
func NewRenderer(options ...RendererOption) (*Renderer, error) {
	r := &Renderer{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		engine, err := NewEngine()
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	return r, nil
}

// Render preprocesses the sugar markers, verifies every referenced value
// path resolves against the document, then compiles and evaluates the
// template. It returns the fully substituted text or an error; no partial
// output is ever produced.
func (r *Renderer) Render(name, text string, doc *values.Document) (string, error) {
	preprocessed := Preprocess(text)

	if err := checkReferences(name, preprocessed, doc); err != nil {
		return "", err
	}

	tmpl, err := r.engine.Parse(name, preprocessed)
	if err != nil {
		return "", err
	}

	out, err := tmpl.Execute(pongo2.Context(doc.Context()))
	if err != nil {
		return "", fmt.Errorf("render: execute %s: %w", name, err)
	}
	return out, nil
}

// checkReferences walks the output markers of a preprocessed template and
// resolves every value path they reference against the document. Names bound
// by "{% for %}" tags are exempt, while the iterated expression itself is
// checked. Control-tag conditions are left to the engine.
func checkReferences(name, text string, doc *values.Document) error {
	bound := make(map[string]struct{})

	var paths []string
	for _, match := range forTag.FindAllStringSubmatch(text, -1) {
		bound[match[1]] = struct{}{}
		if match[2] != "" {
			bound[match[2]] = struct{}{}
		}
		paths = append(paths, expressionPaths(match[3])...)
	}
	for _, match := range sugarMarker.FindAllStringSubmatch(text, -1) {
		paths = append(paths, expressionPaths(match[1])...)
	}

	for _, path := range paths {
		root, _, _ := strings.Cut(path, ".")
		if _, ok := bound[root]; ok {
			continue
		}
		if _, ok := reserved[root]; ok {
			continue
		}
		if _, ok := doc.Lookup(path); !ok {
			return &values.UndefinedValueError{Path: path, Template: name}
		}
	}
	return nil
}

// expressionPaths extracts every dotted value path an expression references.
// Quoted literals are blanked out first; names directly after "|" are filter
// names, not values, while filter arguments after ":" are kept.
func expressionPaths(expr string) []string {
	clean := quotedString.ReplaceAllStringFunc(expr, func(s string) string {
		return strings.Repeat(" ", len(s))
	})

	var paths []string
	for _, loc := range valuePath.FindAllStringIndex(clean, -1) {
		if prev := lastNonSpaceBefore(clean, loc[0]); prev == '|' || prev == '.' {
			continue
		}
		paths = append(paths, clean[loc[0]:loc[1]])
	}
	return paths
}

func lastNonSpaceBefore(s string, i int) byte {
	for i > 0 {
		i--
		if s[i] != ' ' && s[i] != '\t' {
			return s[i]
		}
	}
	return 0
}
