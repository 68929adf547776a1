package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv runs the test in an empty directory with every RASTERLAB_*
// variable unset.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	for _, k := range []string{"RASTERLAB_CONFIG", "RASTERLAB_LOG_LEVEL", "RASTERLAB_LOG_FORMAT", "RASTERLAB_OUTPUT_DIR", "RASTERLAB_PRECISION"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadConfigDefaults(t *testing.T) {
	isolateEnv(t)
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := isolateEnv(t)
	writeFile(t, filepath.Join(dir, DefaultConfigFile), `
log_level = "debug"
log_format = "json"
output_dir = "results"
precision = 3
`)
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "results", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Precision)
	assert.Equal(t, DefaultConfig().UpdateRepo, cfg.UpdateRepo)

	t.Setenv("RASTERLAB_OUTPUT_DIR", "elsewhere")
	t.Setenv("RASTERLAB_PRECISION", "8")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "elsewhere", cfg.OutputDir)
	assert.Equal(t, 8, cfg.Precision)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := isolateEnv(t)
	writeFile(t, filepath.Join(dir, ".env"), "RASTERLAB_LOG_FORMAT=json\n")
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "custom.toml")
	writeFile(t, path, `update_repo = "someone/fork"`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "someone/fork", cfg.UpdateRepo)

	t.Setenv("RASTERLAB_CONFIG", path)
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "someone/fork", cfg.UpdateRepo)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := isolateEnv(t)
	bad := filepath.Join(dir, "bad.toml")
	writeFile(t, bad, `precision = "six"`)
	_, err := LoadConfig(bad)
	assert.Error(t, err)

	t.Setenv("RASTERLAB_PRECISION", "lots")
	_, err = LoadConfig("")
	assert.Error(t, err)

	t.Setenv("RASTERLAB_PRECISION", "")
	t.Setenv("RASTERLAB_LOG_FORMAT", "xml")
	_, err = LoadConfig("")
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	cfg.Precision = -1
	assert.Error(t, cfg.Validate())
	cfg = DefaultConfig()
	cfg.OutputDir = ""
	assert.Error(t, cfg.Validate())
}
