package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gold-calc/core/types"
	"gold-calc/internal/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, "cli", cfg.Output.DefaultFormat)
	assert.Equal(t, types.LanguageEnglish, cfg.Output.Language)
	assert.Equal(t, 100.0, cfg.Rates.AddedMetalPurity)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gold-calc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
output:
  default_format: markdown
  language: ta
rates:
  default_24k: 7250
  added_metal_purity: 99.5
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "markdown", cfg.Output.DefaultFormat)
	assert.Equal(t, types.LanguageTamil, cfg.Output.Language)
	assert.Equal(t, 7250.0, cfg.Rates.Default24k)
	assert.Equal(t, 99.5, cfg.Rates.AddedMetalPurity)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestSaveAndLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Default()
	cfg.Server.Addr = ":9090"
	cfg.Output.ShowWords = false

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", loaded.Server.Addr)
	assert.False(t, loaded.Output.ShowWords)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output":{"default_format":"pdf"}}`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}
