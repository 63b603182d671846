package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommand_WritesConfigFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app_config.yml"),
		[]byte("db:\n  host: localhost\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "database.yml.erb"),
		[]byte("host: {{ db.host }}\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"generate", "--dir", dir})
	t.Cleanup(func() {
		generateDir = ""
		generateQuiet = false
	})

	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(filepath.Join(dir, "config", "database.yml"))
	require.NoError(t, err)
	assert.Equal(t, "host: localhost\n", string(data))
	assert.Contains(t, out.String(), "saving config/database.yml")
}

func TestGenerateCommand_FailsWithoutValueDocument(t *testing.T) {
	dir := t.TempDir()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"generate", "--dir", dir, "--quiet"})
	t.Cleanup(func() {
		generateDir = ""
		generateQuiet = false
	})

	require.Error(t, rootCmd.Execute())
	_, err := os.Stat(filepath.Join(dir, ".env"))
	assert.True(t, os.IsNotExist(err))
}
