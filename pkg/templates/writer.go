package templates

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer persists rendered results, overwriting any existing file. Paths are
// resolved against the configured base directory.
type Writer struct {
	baseDir string
}

// NewWriter constructs a Writer rooted at dir; an empty dir means the
// current directory.
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{baseDir: dir}
}

// Write truncates or creates the file at path and writes the rendered text.
// Failures propagate to the caller; a partially written run is not rolled
// back.
func (w *Writer) Write(path string, text string) error {
	target := filepath.Join(w.baseDir, path)
	if err := os.WriteFile(target, []byte(text), 0o644); err != nil {
		return fmt.Errorf("templates: write %s: %w", path, err)
	}
	return nil
}

// ReadSource returns the raw text of a template file under dir. It reports
// read failures with the same path flavor the writer uses, so template I/O
// errors look uniform to the caller.
func ReadSource(dir, path string) (string, error) {
	if dir == "" {
		dir = "."
	}
	data, err := os.ReadFile(filepath.Join(dir, path))
	if err != nil {
		return "", fmt.Errorf("templates: read %s: %w", path, err)
	}
	return string(data), nil
}
