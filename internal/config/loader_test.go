package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent-on-purpose"), nil)
	require.Error(t, err, "an explicit but missing config file is an error")

	cfg, err = Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultPreviewRows, cfg.PreviewRows)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.True(t, cfg.Watch)
	assert.False(t, cfg.AutoOpen)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeConfig(t, "port: 9000\ndata_dir: /tmp/data\npreview_rows: 10\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, 10, cfg.PreviewRows)
	assert.Equal(t, path, ConfigFileUsed())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "port: 9000\n")
	t.Setenv("DATALENS_PORT", "9100")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
}

func TestLoad_FlagOverridesEverything(t *testing.T) {
	path := writeConfig(t, "port: 9000\n")
	t.Setenv("DATALENS_PORT", "9100")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", DefaultPort, "")
	flags.String("data-dir", "", "")
	require.NoError(t, flags.Parse([]string{"--port", "9200"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Port)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	path := writeConfig(t, "port: 9000\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", DefaultPort, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
}

func TestLoad_KebabFlagMapsToSnakeKey(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("data-dir", "", "")
	require.NoError(t, flags.Parse([]string{"--data-dir", "/srv/data"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "/srv/data", cfg.DataDir)
}

func TestLoad_PreviewRowsFloor(t *testing.T) {
	path := writeConfig(t, "preview_rows: -3\n")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultPreviewRows, cfg.PreviewRows)
}
