package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(NewViper())
	require.NoError(t, err)

	assert.Equal(t, ".", c.SourceDirectory)
	assert.Equal(t, ".", c.OutputRoot)
	assert.Equal(t, "json-schema", c.OutputSubdirectory)
	assert.Equal(t, []string{"**"}, c.IncludePatterns)
	assert.Empty(t, c.ExcludePatterns)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.Comments)
	assert.Equal(t, filepath.Join(".", "json-schema"), c.OutputDirectory())
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schemagen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source-directory: ./models
output-root: build
include-patterns:
  - "models/**"
  - "api/,dto/"
exclude-patterns: ["**/internal/**"]
comments: true
log-level: DEBUG
`), 0o644))

	v := NewViper()
	v.SetConfigFile(path)
	c, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "./models", c.SourceDirectory)
	assert.Equal(t, filepath.Join("build", "json-schema"), c.OutputDirectory())
	assert.Equal(t, []string{"models/**", "api/,dto/"}, c.IncludePatterns)
	assert.Equal(t, []string{"**/internal/**"}, c.ExcludePatterns)
	assert.True(t, c.Comments)
	assert.Equal(t, "debug", c.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SCHEMAGEN_OUTPUT_SUBDIRECTORY", "schemas")
	t.Setenv("SCHEMAGEN_LOG_LEVEL", "warn")

	c, err := Load(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "schemas", c.OutputSubdirectory)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	v := NewViper()
	v.SetConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load(v)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	bad := c
	bad.IncludePatterns = nil
	assert.Error(t, bad.Validate())

	bad = c
	bad.LogLevel = "verbose"
	assert.Error(t, bad.Validate())

	bad = c
	bad.OutputSubdirectory = ""
	assert.Error(t, bad.Validate())
}

func TestDefault(t *testing.T) {
	var c Config
	require.NotPanics(t, func() { c = Default() })
	assert.Equal(t, "json-schema", c.OutputSubdirectory)
	assert.Equal(t, []string{"**"}, c.IncludePatterns)
	assert.Equal(t, "info", c.LogLevel)
	assert.NoError(t, c.Validate())
}
