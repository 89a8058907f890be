package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTomlConfigLoader_FindsConfigInParent(t *testing.T) {
	root := t.TempDir()
	path := writeConfigFile(t, root, "[god_class]\nmin_cohesion_gain = 0.3\n")
	nested := filepath.Join(root, "src", "main", "java")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	loader := NewTomlConfigLoader()
	assert.Equal(t, path, loader.FindConfigFileFromPath(nested))

	// a file path starts the search from its directory
	source := filepath.Join(nested, "Shop.java")
	require.NoError(t, os.WriteFile(source, []byte("class Shop {}"), 0o644))
	assert.Equal(t, path, loader.FindConfigFileFromPath(source))

	cfg, err := loader.LoadConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, 0.3, cfg.GodClass.MinCohesionGain)
}

func TestTomlConfigLoader_NearestWins(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, "[god_class]\ntarget_suffix = \"Outer\"\n")
	inner := filepath.Join(root, "module")
	require.NoError(t, os.MkdirAll(inner, 0o755))
	writeConfigFile(t, inner, "[god_class]\ntarget_suffix = \"Inner\"\n")

	cfg, err := NewTomlConfigLoader().LoadConfig(inner)
	require.NoError(t, err)
	assert.Equal(t, "Inner", cfg.GodClass.TargetSuffix)
}

func TestTomlConfigLoader_PartialFileKeepsDefaults(t *testing.T) {
	root := t.TempDir()
	path := writeConfigFile(t, root, `
[god_class]
max_candidates_per_class = 3
pin_overriding_methods = false

[analysis]
exclude_patterns = ["**/test/**"]

[telemetry]
enabled = true
`)

	cfg, err := NewTomlConfigLoader().LoadFile(path)
	require.NoError(t, err)

	defaults := DefaultConfig()
	assert.Equal(t, 3, cfg.GodClass.MaxCandidatesPerClass)
	assert.False(t, cfg.GodClass.PinOverridingMethods)
	assert.Equal(t, defaults.GodClass.MinCohesionGain, cfg.GodClass.MinCohesionGain)
	assert.Equal(t, defaults.GodClass.TargetSuffix, cfg.GodClass.TargetSuffix)
	assert.True(t, cfg.GodClass.SkipSerializable)
	assert.Equal(t, []string{"**/test/**"}, cfg.Analysis.ExcludePatterns)
	assert.Equal(t, defaults.Analysis.IncludePatterns, cfg.Analysis.IncludePatterns)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, defaults.Telemetry.HeartbeatInterval, cfg.Telemetry.HeartbeatInterval)
}

func TestTomlConfigLoader_Errors(t *testing.T) {
	loader := NewTomlConfigLoader()

	t.Run("syntax error", func(t *testing.T) {
		path := writeConfigFile(t, t.TempDir(), "[god_class\n")
		_, err := loader.LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("invalid value", func(t *testing.T) {
		path := writeConfigFile(t, t.TempDir(), "[performance]\nmax_goroutines = 0\n")
		_, err := loader.LoadFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "performance.max_goroutines")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.LoadFile(filepath.Join(t.TempDir(), ConfigFileName))
		assert.Error(t, err)
	})
}

func TestDefaultConfigTemplate(t *testing.T) {
	content, err := GenerateDefaultConfigTOML()
	require.NoError(t, err)
	assert.Contains(t, content, "[god_class]")
	assert.Contains(t, content, `target_suffix = "Product"`)
	assert.Contains(t, content, "min_cohesion_gain = 0.15")

	cfg, err := LoadDefaultConfigFromTOML()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	defaults := DefaultConfig()
	assert.Equal(t, defaults.GodClass, cfg.GodClass)
	assert.Equal(t, defaults.Analysis.IncludePatterns, cfg.Analysis.IncludePatterns)
	assert.Empty(t, cfg.Analysis.ExcludePatterns)
	assert.Equal(t, defaults.Output, cfg.Output)
	assert.Equal(t, defaults.Performance, cfg.Performance)
	assert.Equal(t, defaults.Telemetry, cfg.Telemetry)
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, WriteDefaultConfig(path, false))

	err := WriteDefaultConfig(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, WriteDefaultConfig(path, true))

	cfg, err := NewTomlConfigLoader().LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().GodClass, cfg.GodClass)
}
