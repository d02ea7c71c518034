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
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultImage, cfg.Node.Image)
	assert.Equal(t, DefaultContainerPrefix, cfg.Node.ContainerPrefix)
	assert.Equal(t, DefaultLogDir, cfg.Node.LogDir)
	assert.Equal(t, DefaultCleanupPattern, cfg.Cleanup.Pattern)
	assert.False(t, cfg.Server.Enabled)
	assert.False(t, cfg.MySQL.Enabled)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
node:
  image: prover-node:v2
  container_prefix: prover
  probe_delay: 10s
cleanup:
  interval: 1h
  max_age: 48h
server:
  enabled: true
  listen: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "prover-node:v2", cfg.Node.Image)
	assert.Equal(t, "prover", cfg.Node.ContainerPrefix)
	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.True(t, cfg.Server.Enabled)

	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultLogDir, cfg.Node.LogDir)
	assert.Equal(t, DefaultCleanupPattern, cfg.Cleanup.Pattern)

	delay, err := cfg.Node.ProbeDelayDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, delay)

	maxAge, err := cfg.Cleanup.MaxAgeDuration()
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, maxAge)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "node: [broken")
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty image", func(c *Config) { c.Node.Image = "" }, "node.image"},
		{"empty prefix", func(c *Config) { c.Node.ContainerPrefix = "" }, "node.container_prefix"},
		{"relative log dir", func(c *Config) { c.Node.LogDir = "logs" }, "node.log_dir"},
		{"relative container log", func(c *Config) { c.Node.ContainerLogPath = "node.log" }, "node.container_log_path"},
		{"bad probe delay", func(c *Config) { c.Node.ProbeDelay = "soon" }, "node.probe_delay"},
		{"zero interval", func(c *Config) { c.Cleanup.Interval = "0s" }, "cleanup.interval"},
		{"bad max age", func(c *Config) { c.Cleanup.MaxAge = "week" }, "cleanup.max_age"},
		{"bad pattern", func(c *Config) { c.Cleanup.Pattern = "[" }, "cleanup.pattern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDBConfigAddr(t *testing.T) {
	d := DBConfig{Host: "10.0.0.5", Port: 6379}
	assert.Equal(t, "10.0.0.5:6379", d.Addr())
}
