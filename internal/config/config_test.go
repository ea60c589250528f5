package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMainConfigDefaults(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, `
input_dir: `+filepath.Join(base, "in")+`
output_dir: `+filepath.Join(base, "out")+`
input_archive_dir: `+filepath.Join(base, "arch")+`
endpoint:
  url: https://x3.example.com/soap
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "{module}_{timestamp}_{uuid}", cfg.OutputNameFormat)
	assert.Equal(t, 4, cfg.MaxConcurrency)

	assert.Equal(t, "ZBPI", cfg.Endpoint.PoolAlias)
	assert.Equal(t, "FRA", cfg.Endpoint.Language)
	assert.Equal(t, "AOWSEXPORT", cfg.Endpoint.ExportPublicName)
	assert.Equal(t, "AOWSIMPORT", cfg.Endpoint.ImportPublicName)
	assert.Equal(t, 30*time.Second, cfg.Endpoint.Timeout())

	assert.Equal(t, "ZCLIENT", cfg.Endpoint.Modules.Login)
	assert.Equal(t, "ZCOMMANDE", cfg.Endpoint.Modules.Orders)
	assert.Equal(t, "ZARTICLE", cfg.Endpoint.Modules.Materials)
	assert.Equal(t, "ZSOH", cfg.Endpoint.Modules.OrderImport)

	// Local directories are created during validation.
	for _, dir := range []string{cfg.InputDir, cfg.OutputDir, cfg.InputArchiveDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestLoadMainConfigOverrides(t *testing.T) {
	base := t.TempDir()
	path := writeConfig(t, `
input_dir: `+filepath.Join(base, "in")+`
output_dir: `+filepath.Join(base, "out")+`
input_archive_dir: `+filepath.Join(base, "arch")+`
log_level: debug
max_concurrency: 8
endpoint:
  url: https://x3.example.com/soap
  pool_alias: TESTPOOL
  timeout_seconds: 5
  modules:
    orders: YCOMMANDE
`)

	cfg, err := LoadMainConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.MaxConcurrency)
	assert.Equal(t, "TESTPOOL", cfg.Endpoint.PoolAlias)
	assert.Equal(t, 5*time.Second, cfg.Endpoint.Timeout())
	assert.Equal(t, "YCOMMANDE", cfg.Endpoint.Modules.Orders)
	// Unset module names still default.
	assert.Equal(t, "ZARTICLE", cfg.Endpoint.Modules.Materials)
}

func TestLoadMainConfigMissingFile(t *testing.T) {
	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadMainConfigBadYAML(t *testing.T) {
	path := writeConfig(t, "input_dir: [unclosed")
	_, err := LoadMainConfig(path)
	assert.Error(t, err)
}

func TestCredentialsFromEnvironment(t *testing.T) {
	endpoint := EndpointConfig{UsernameEnv: "X3_TEST_USER", PasswordEnv: "X3_TEST_PASS"}

	_, _, err := endpoint.Credentials()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "X3_TEST_USER")

	t.Setenv("X3_TEST_USER", "admin")
	t.Setenv("X3_TEST_PASS", "secret")

	username, password, err := endpoint.Credentials()
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
	assert.Equal(t, "secret", password)
}
