// Package templates discovers template files by naming convention and maps
// them to their output paths. A template is any file ending in the Suffix;
// the convention covers the literal ".env.erb" at the base directory plus
// every "config/*.erb" one level below it.
package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-confgen/pkg/logging"
)

// Suffix is the trailing token that marks a file as a template. Output paths
// are the template path with exactly one trailing Suffix removed.
const Suffix = ".erb"

const (
	envTemplate = ".env" + Suffix
	configGlob  = "config/*" + Suffix
)

// FinderOption customises a Finder before first use.
type FinderOption func(*Finder)

// WithBaseDir points discovery at a directory other than the current one.
func WithBaseDir(dir string) FinderOption {
	return func(f *Finder) {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			f.baseDir = trimmed
		}
	}
}

// Finder locates template files. The discovered list is cached per instance,
// so repeated calls within a run return the same paths without re-scanning
// the filesystem.
type Finder struct {
	baseDir string

	paths  []string
	cached bool
}

// NewFinder constructs a Finder applying any provided options.
func NewFinder(options ...FinderOption) *Finder {
	f := &Finder{baseDir: "."}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	return f
}

// Find returns the template paths matching the convention. Zero matches is
// a valid result, not an error. Ordering follows whatever the directory
// listing yields and is not part of the contract. Paths are relative to the
// base directory.
func (f *Finder) Find() ([]string, error) {
	if f.cached {
		return f.paths, nil
	}

	var paths []string
	switch _, err := os.Stat(filepath.Join(f.baseDir, envTemplate)); {
	case err == nil:
		paths = append(paths, envTemplate)
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("templates: stat %s: %w", envTemplate, err)
	}

	matches, err := filepath.Glob(filepath.Join(f.baseDir, configGlob))
	if err != nil {
		return nil, fmt.Errorf("templates: glob %s: %w", configGlob, err)
	}
	for _, match := range matches {
		rel, err := filepath.Rel(f.baseDir, match)
		if err != nil {
			return nil, fmt.Errorf("templates: resolve %s: %w", match, err)
		}
		paths = append(paths, rel)
	}

	logger := logging.GetLogger("templates")
	logger.Debug().
		Int("count", len(paths)).
		Str("baseDir", f.baseDir).
		Msg("templates discovered")

	f.paths = paths
	f.cached = true
	return paths, nil
}

// OutputPath derives the output file for a template by stripping exactly one
// trailing Suffix: "a.yml.erb" becomes "a.yml", "a.erb.erb" becomes "a.erb".
// Paths without the suffix are returned unchanged.
func OutputPath(templatePath string) string {
	return strings.TrimSuffix(templatePath, Suffix)
}
