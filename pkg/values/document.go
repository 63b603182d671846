package values

import (
	"fmt"
	"strings"
)

// Document wraps a decoded configuration-value mapping and exposes
// dotted-path read access to arbitrarily nested values. Documents are
// immutable after construction; a generation run loads one Document and
// reads from it until the process exits.
type Document struct {
	root        map[string]any
	environment string
}

// UndefinedValueError reports a dotted path that does not resolve against
// the loaded document. Template is set when the miss surfaced while
// rendering a template and is empty for direct Get calls.
type UndefinedValueError struct {
	Path     string
	Template string
}

func (e *UndefinedValueError) Error() string {
	if e.Template != "" {
		return fmt.Sprintf("values: %q is not defined in the configuration (referenced by %s)", e.Path, e.Template)
	}
	return fmt.Sprintf("values: %q is not defined in the configuration", e.Path)
}

// NewDocument wraps an already-decoded mapping. Nested maps keyed by
// non-string types are normalized so template evaluation and Lookup agree
// on the shape of the data.
func NewDocument(root map[string]any) *Document {
	return &Document{root: normalizeMap(root)}
}

// Environment returns the environment identifier the document was loaded
// for, or the empty string for the default document.
func (d *Document) Environment() string {
	if d == nil {
		return ""
	}
	return d.environment
}

// Context returns the root mapping handed to the template engine as its
// evaluation context.
func (d *Document) Context() map[string]any {
	if d == nil {
		return nil
	}
	return d.root
}

// Lookup resolves a dotted path (`db.host` reads key "db" then key "host")
// and reports whether every segment resolved. Intermediate segments must be
// mappings; anything else terminates the walk unresolved.
func (d *Document) Lookup(path string) (any, bool) {
	if d == nil || path == "" {
		return nil, false
	}

	var current any = d.root
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		value, ok := node[segment]
		if !ok {
			return nil, false
		}
		current = value
	}
	return current, true
}

// Get resolves a dotted path or returns an *UndefinedValueError naming the
// missing path.
func (d *Document) Get(path string) (any, error) {
	value, ok := d.Lookup(path)
	if !ok {
		return nil, &UndefinedValueError{Path: path}
	}
	return value, nil
}

// normalizeMap rewrites nested mappings into map[string]any so Lookup and
// the template engine traverse the same shapes regardless of which decoder
// produced the document.
func normalizeMap(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = normalizeValue(value)
	}
	return out
}

func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[string]any:
		return normalizeMap(v)
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, nested := range v {
			out[fmt.Sprint(key)] = normalizeValue(nested)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeValue(item)
		}
		return out
	default:
		return value
	}
}
