// Package render evaluates configuration templates against a loaded value
// document. Templates use pongo2 syntax: "{{ expr }}" output markers plus
// "{% if %}" / "{% for %}" control tags, with a whitespace-tolerant sugar
// form for the output markers that is normalized before evaluation.
package render

import (
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// EngineOption customises the Engine before construction.
type EngineOption func(*engineConfig)

type engineConfig struct {
	baseDir string
}

// WithIncludeDir sets the directory used to resolve "{% include %}" and
// "{% extends %}" references inside templates. Defaults to the current
// directory.
func WithIncludeDir(dir string) EngineOption {
	return func(cfg *engineConfig) {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			cfg.baseDir = trimmed
		}
	}
}

// Engine wraps a pongo2 template set configured for one generation run.
type Engine struct {
	set *pongo2.TemplateSet
}

// NewEngine constructs an Engine using the provided options.
func NewEngine(options ...EngineOption) (*Engine, error) {
	cfg := &engineConfig{baseDir: "."}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
	if err != nil {
		return nil, fmt.Errorf("render: create template loader: %w", err)
	}

	return &Engine{set: pongo2.NewSet("confgen", loader)}, nil
}

// Parse compiles template text. Compilation failures carry the template
// name and wrap the engine's own error so callers can still inspect it.
func (e *Engine) Parse(name, text string) (*pongo2.Template, error) {
	tmpl, err := e.set.FromString(text)
	if err != nil {
		return nil, fmt.Errorf("render: parse %s: %w", name, err)
	}
	return tmpl, nil
}
