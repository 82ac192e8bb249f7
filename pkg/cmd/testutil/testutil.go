package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/r-k-jonynas/chparse/pkg/config"
	"github.com/r-k-jonynas/chparse/pkg/consts"
)

// SQLFixture is an isolated temp directory holding SQL files and an optional
// chparse.yaml.
type SQLFixture struct {
	Dir string
	t   *testing.T
}

// TestFiles creates an empty fixture directory.
func TestFiles(t *testing.T) *SQLFixture {
	t.Helper()

	return &SQLFixture{
		Dir: t.TempDir(),
		t:   t,
	}
}

// WithFile writes content to name, relative to the fixture directory,
// creating parent directories as needed.
func (f *SQLFixture) WithFile(name, content string) *SQLFixture {
	f.t.Helper()

	path := f.Path(name)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(path), consts.ModeDir), "Failed to create directory for %s", name)
	require.NoError(f.t, os.WriteFile(path, []byte(content), consts.ModeFile), "Failed to write file: %s", name)

	return f
}

// WithConfig writes cfg as chparse.yaml in the fixture directory.
func (f *SQLFixture) WithConfig(cfg *config.Config) *SQLFixture {
	f.t.Helper()

	data, err := yaml.Marshal(cfg)
	require.NoError(f.t, err, "Failed to marshal config")

	return f.WithFile(consts.DefaultConfigFile, string(data))
}

// Path returns the absolute path of name inside the fixture directory.
func (f *SQLFixture) Path(name string) string {
	return filepath.Join(f.Dir, name)
}

// ConfigPath returns the path of the fixture's chparse.yaml.
func (f *SQLFixture) ConfigPath() string {
	return f.Path(consts.DefaultConfigFile)
}

// Read returns the current content of name.
func (f *SQLFixture) Read(name string) string {
	f.t.Helper()

	content, err := os.ReadFile(f.Path(name))
	require.NoError(f.t, err, "Failed to read file: %s", name)

	return string(content)
}
