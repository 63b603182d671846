package values_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-confgen/pkg/values"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoader_PrefersYAMLOverJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app_config.yml", "source: yaml\n")
	writeFile(t, dir, "app_config.json", `{"source":"json"}`)

	loader := values.NewLoader(values.WithBaseDir(dir))
	doc, err := loader.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got, ok := doc.Lookup("source")
	if !ok || got != "yaml" {
		t.Fatalf("source = %v (resolved=%v), want %q", got, ok, "yaml")
	}
}

func TestLoader_FallsBackToJSONThenTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app_config.json", `{"db":{"host":"json-host"}}`)

	loader := values.NewLoader(values.WithBaseDir(dir))
	doc, err := loader.Load("")
	if err != nil {
		t.Fatalf("load json: %v", err)
	}
	if got, _ := doc.Lookup("db.host"); got != "json-host" {
		t.Fatalf("db.host = %v, want json-host", got)
	}

	tomlDir := t.TempDir()
	writeFile(t, tomlDir, "app_config.toml", "[db]\nhost = \"toml-host\"\n")

	doc, err = values.NewLoader(values.WithBaseDir(tomlDir)).Load("")
	if err != nil {
		t.Fatalf("load toml: %v", err)
	}
	if got, _ := doc.Lookup("db.host"); got != "toml-host" {
		t.Fatalf("db.host = %v, want toml-host", got)
	}
}

func TestLoader_EnvironmentSelectsVariant(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app_config.yml", "env: default\n")
	writeFile(t, dir, "app_config.production.yml", "env: production\n")

	loader := values.NewLoader(values.WithBaseDir(dir))
	doc, err := loader.Load("production")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := doc.Lookup("env"); got != "production" {
		t.Fatalf("env = %v, want production", got)
	}
	if doc.Environment() != "production" {
		t.Fatalf("Environment() = %q, want production", doc.Environment())
	}
}

func TestLoader_MissingConfiguration(t *testing.T) {
	loader := values.NewLoader(values.WithBaseDir(t.TempDir()))

	_, err := loader.Load("")
	if !errors.Is(err, values.ErrMissingConfiguration) {
		t.Fatalf("expected ErrMissingConfiguration, got %v", err)
	}

	_, err = values.NewLoader(values.WithBaseDir(t.TempDir())).Load("staging")
	if !errors.Is(err, values.ErrMissingConfiguration) {
		t.Fatalf("expected ErrMissingConfiguration for staging, got %v", err)
	}
}

func TestLoader_DecodeErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app_config.yml", "key: [unclosed\n")

	_, err := values.NewLoader(values.WithBaseDir(dir)).Load("")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if errors.Is(err, values.ErrMissingConfiguration) {
		t.Fatalf("decode failure must not be reported as missing configuration: %v", err)
	}
}

func TestLoader_CachesAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "app_config.yml", "cached: first\n")

	loader := values.NewLoader(values.WithBaseDir(dir))
	first, err := loader.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	// Removing the file proves the second call never touches the disk.
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}

	second, err := loader.Load("")
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Fatal("expected the memoized document instance")
	}
	if diff := cmp.Diff(first.Context(), second.Context()); diff != "" {
		t.Fatalf("cached document drifted (-first +second):\n%s", diff)
	}
}

type stubPrompter struct {
	selection string
	err       error
	calls     int
}

func (s *stubPrompter) SelectEnvironment(environments []string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	if s.selection != "" {
		return s.selection, nil
	}
	return environments[0], nil
}

func TestLoader_PromptsWhenOnlyVariantsExist(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app_config.production.yml", "env: production\n")
	writeFile(t, dir, "app_config.staging.yml", "env: staging\n")

	prompter := &stubPrompter{selection: "staging"}
	loader := values.NewLoader(values.WithBaseDir(dir), values.WithPrompter(prompter))

	doc, err := loader.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got, _ := doc.Lookup("env"); got != "staging" {
		t.Fatalf("env = %v, want staging", got)
	}
	if prompter.calls != 1 {
		t.Fatalf("prompter calls = %d, want 1", prompter.calls)
	}

	// Memoized: a second load must not re-prompt.
	if _, err := loader.Load(""); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if prompter.calls != 1 {
		t.Fatalf("prompter re-invoked: calls = %d", prompter.calls)
	}
}

func TestLoader_NoPromptWhenEnvironmentSupplied(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app_config.production.yml", "env: production\n")

	prompter := &stubPrompter{}
	loader := values.NewLoader(values.WithBaseDir(dir), values.WithPrompter(prompter))

	if _, err := loader.Load("production"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if prompter.calls != 0 {
		t.Fatalf("prompter invoked %d times despite explicit environment", prompter.calls)
	}
}
