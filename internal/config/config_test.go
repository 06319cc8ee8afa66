package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o600))
	return p
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

const sampleYAML = `
env: "prod"
api:
  base_url: "https://api.example.com/api/v1/"
  timeout: "3s"
web:
  base_url: "https://app.example.com/"
storage:
  dir: "/var/lib/vlp"
log:
  level: "warn"
  file: "/var/log/vlp.log"
`

const brokenYAML = `
env: [unclosed
`

func TestLoad_WithExplicitPath_OK(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)

	cfg, err := Load(cfgPath)
	require.NoError(t, err)

	require.Equal(t, "prod", cfg.Env)
	require.Equal(t, "https://api.example.com/api/v1", cfg.API.BaseURL)
	require.Equal(t, 3*time.Second, cfg.API.Timeout)
	require.Equal(t, "/var/lib/vlp", cfg.Storage.Dir)
	require.Equal(t, "warn", cfg.Log.Level)
	require.Equal(t, "/var/log/vlp.log", cfg.LogPath())
	require.Equal(t, "https://app.example.com/billing/abc/print", cfg.Web.DocumentURL("abc"))
}

func TestLoad_EnvOverlaysFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", sampleYAML)
	t.Setenv("VLP_API_URL", "http://10.0.0.5:8000/api/v1")

	cfg, err := Load(cfgPath)
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.5:8000/api/v1", cfg.API.BaseURL)
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "stat failed")
}

func TestLoad_BrokenYAML(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "broken.yaml", brokenYAML)

	_, err := Load(cfgPath)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "c.yaml", sampleYAML)
	t.Setenv("CONFIG_PATH", cfgPath)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "prod", cfg.Env)
}

func TestLoad_LocalFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, LocalFile, "env: \"dev\"\nstorage:\n  dir: \"/tmp/vlp-test\"\n")
	chdir(t, dir)
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "/tmp/vlp-test", cfg.Storage.Dir)
	require.Equal(t, "/tmp/vlp-test/vlp.log", cfg.LogPath())
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	home := t.TempDir()
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("HOME", home)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Env)
	require.Equal(t, "http://localhost:8000/api/v1", cfg.API.BaseURL)
	require.Equal(t, 15*time.Second, cfg.API.Timeout)
	require.Equal(t, filepath.Join(home, ".vlp"), cfg.Storage.Dir)
}

func TestLoad_RejectsNonPositiveTimeout(t *testing.T) {
	cfgPath := writeFile(t, t.TempDir(), "c.yaml", "api:\n  timeout: \"-1s\"\n")

	_, err := Load(cfgPath)
	require.Error(t, err)
}
