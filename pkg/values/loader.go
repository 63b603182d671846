package values

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-confgen/pkg/logging"
)

// DefaultBaseName is the conventional name of the configuration-value
// document, before the optional environment infix and the extension.
const DefaultBaseName = "app_config"

// extensions lists the accepted document formats in resolution order. YAML
// wins over JSON when both exist; TOML is accepted last and never shadows
// either.
var extensions = []string{".yml", ".json", ".toml"}

// ErrMissingConfiguration is returned (wrapped) when no value document
// exists for the resolved base name.
var ErrMissingConfiguration = errors.New("values: configuration file not found")

// EnvironmentPrompter selects an environment when none was supplied and the
// default document is absent but environment variants exist. Implementations
// are interactive by nature; library callers normally leave it unset, in
// which case the loader fails with ErrMissingConfiguration instead.
type EnvironmentPrompter interface {
	SelectEnvironment(environments []string) (string, error)
}

// LoaderOption customises a Loader before first use.
type LoaderOption func(*Loader)

// WithBaseDir points the loader at a directory other than the current one.
func WithBaseDir(dir string) LoaderOption {
	return func(l *Loader) {
		if trimmed := strings.TrimSpace(dir); trimmed != "" {
			l.baseDir = trimmed
		}
	}
}

// WithBaseName overrides the conventional document name.
func WithBaseName(name string) LoaderOption {
	return func(l *Loader) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			l.baseName = trimmed
		}
	}
}

// WithPrompter installs an interactive environment selector.
func WithPrompter(prompter EnvironmentPrompter) LoaderOption {
	return func(l *Loader) {
		l.prompter = prompter
	}
}

// Loader locates and decodes the configuration-value document. The decoded
// Document and the resolved environment are memoized, so a second Load in
// the same run re-reads nothing and never re-prompts.
type Loader struct {
	baseDir  string
	baseName string
	prompter EnvironmentPrompter

	doc *Document
}

// NewLoader constructs a Loader applying any provided options.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{
		baseDir:  ".",
		baseName: DefaultBaseName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Load resolves and decodes the value document for the given environment.
// An empty environment selects the default document name; if that is absent
// and environment variants exist on disk, a configured prompter picks one.
// The first successful Load wins for the lifetime of the Loader.
func (l *Loader) Load(environment string) (*Document, error) {
	if l.doc != nil {
		return l.doc, nil
	}
	logger := logging.GetLogger("values")

	environment = strings.TrimSpace(environment)
	if environment == "" && !l.defaultDocumentExists() {
		if selected, err := l.promptEnvironment(); err != nil {
			return nil, err
		} else if selected != "" {
			logger.Debug().Str("environment", selected).Msg("environment selected interactively")
			environment = selected
		}
	}

	base := l.baseName
	if environment != "" {
		base += "." + environment
	}

	for _, ext := range extensions {
		path := filepath.Join(l.baseDir, base+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("values: read %s: %w", path, err)
		}

		root, err := decode(data, ext)
		if err != nil {
			return nil, fmt.Errorf("values: decode %s: %w", path, err)
		}

		logger.Debug().Str("path", path).Str("environment", environment).Msg("value document loaded")
		doc := NewDocument(root)
		doc.environment = environment
		l.doc = doc
		return doc, nil
	}

	return nil, fmt.Errorf("%w: %s{.yml,.json,.toml} in %s", ErrMissingConfiguration, base, l.baseDir)
}

func (l *Loader) defaultDocumentExists() bool {
	for _, ext := range extensions {
		if _, err := os.Stat(filepath.Join(l.baseDir, l.baseName+ext)); err == nil {
			return true
		}
	}
	return false
}

// promptEnvironment asks the configured prompter to choose among the
// environment variants present on disk. No prompter or no variants means no
// selection, which falls through to the default resolution (and its
// ErrMissingConfiguration failure).
func (l *Loader) promptEnvironment() (string, error) {
	if l.prompter == nil {
		return "", nil
	}
	environments := l.availableEnvironments()
	if len(environments) == 0 {
		return "", nil
	}
	selected, err := l.prompter.SelectEnvironment(environments)
	if err != nil {
		return "", fmt.Errorf("values: select environment: %w", err)
	}
	return strings.TrimSpace(selected), nil
}

// availableEnvironments lists the environment infixes of every
// <baseName>.<environment>.<ext> variant in the base directory, sorted and
// deduplicated.
func (l *Loader) availableEnvironments() []string {
	seen := make(map[string]struct{})
	for _, ext := range extensions {
		matches, err := filepath.Glob(filepath.Join(l.baseDir, l.baseName+".*"+ext))
		if err != nil {
			continue
		}
		for _, match := range matches {
			name := strings.TrimSuffix(filepath.Base(match), ext)
			env := strings.TrimPrefix(name, l.baseName+".")
			if env == "" || env == name {
				continue
			}
			seen[env] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for env := range seen {
		out = append(out, env)
	}
	sort.Strings(out)
	return out
}

func decode(data []byte, ext string) (map[string]any, error) {
	root := map[string]any{}
	switch ext {
	case ".yml":
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
	case ".json":
		if err := json.Unmarshal(data, &root); err != nil {
			return nil, err
		}
	case ".toml":
		if err := toml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported extension %q", ext)
	}
	return root, nil
}
