package schemagen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/schemagen/config"
	"github.com/reoring/schemagen/examples/models"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	c := config.Default()
	c.SourceDirectory = filepath.Join("examples", "models")
	c.OutputRoot = t.TempDir()
	return c
}

func TestEnumerate_ExampleModels(t *testing.T) {
	names, err := Enumerate(testConfig(t))
	require.NoError(t, err)

	const pkg = "github.com/reoring/schemagen/examples/models."
	assert.Equal(t, []string{
		pkg + "Person", pkg + "Address", pkg + "Node", pkg + "Color",
		pkg + "Circle", pkg + "Square", pkg + "Drawing",
	}, names)
}

func TestRun_WritesRegisteredTypes(t *testing.T) {
	cfg := testConfig(t)
	rep, err := Run(cfg, modelRegistry(), WithLogger(quiet))
	require.NoError(t, err)

	// Person, Address, Node load; the other four are unregistered
	assert.Equal(t, 3, rep.Count())
	assert.Len(t, rep.Failures(), 4)
	for _, f := range rep.Failures() {
		assert.Equal(t, KindTypeLoad, f.Kind)
	}

	out := cfg.OutputDirectory()
	for _, n := range []string{"Person.json", "Address.json", "Node.json"} {
		_, err := os.Stat(filepath.Join(out, n))
		assert.NoError(t, err, n)
	}
}

func TestRun_IncludeExclude(t *testing.T) {
	cfg := testConfig(t)
	cfg.IncludePatterns = []string{"nothing/**,*.go"}
	cfg.ExcludePatterns = []string{"/models.go"}
	rep, err := Run(cfg, modelRegistry(), WithLogger(quiet))
	require.NoError(t, err)
	assert.Empty(t, rep.Outcomes)
}

func TestRun_EnumerationFailureIsFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.SourceDirectory = filepath.Join(t.TempDir(), "absent")
	_, err := Run(cfg, modelRegistry(), WithLogger(quiet))
	require.Error(t, err)
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindEnumeration, e.Kind)
}

func TestRun_MetadataFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetadataFile = filepath.Join(t.TempDir(), "meta.yaml")
	require.NoError(t, os.WriteFile(cfg.MetadataFile, []byte(`types:
  github.com/reoring/schemagen/examples/models.Address:
    members:
      Zip: {name: zip}
`), 0o644))

	rep, err := Run(cfg, NewRegistry().MustRegister(models.Address{}), WithLogger(quiet))
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Count())

	data, err := os.ReadFile(filepath.Join(cfg.OutputDirectory(), "Address.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"zip"`)
	assert.NotContains(t, string(data), `"postcode"`)

	cfg.MetadataFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = Run(cfg, modelRegistry(), WithLogger(quiet))
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindEnumeration, e.Kind)
}

func TestRun_Comments(t *testing.T) {
	cfg := testConfig(t)
	cfg.Comments = true
	_, err := Run(cfg, modelRegistry(), WithLogger(quiet))
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(cfg.OutputDirectory(), "Node.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description": "Node is a tree whose children are nodes."`)
}
