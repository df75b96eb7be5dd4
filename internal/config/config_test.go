package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrjoshuak/htmlcase/internal/casing"
)

func load(t *testing.T, file string, paths ...string) (*Config, error) {
	t.Helper()
	v, err := NewViper(file, paths...)
	require.NoError(t, err)
	return Load(v)
}

func TestDefaults(t *testing.T) {
	cfg, err := load(t, "", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Log.Debug)

	size, err := cfg.Server.MaxBodyBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(1000*1000), size)

	n, err := cfg.Transform.Normalization()
	require.NoError(t, err)
	assert.Equal(t, casing.NormalizeNone, n)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `server:
  addr: "127.0.0.1:9090"
  max_body_size: 2MiB
  read_timeout: 3s
log:
  debug: true
transform:
  normalize: nfc
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(content), 0o600))

	cfg, err := load(t, "", dir)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Log.Debug)

	size, err := cfg.Server.MaxBodyBytes()
	require.NoError(t, err)
	assert.Equal(t, int64(2<<20), size)

	n, err := cfg.Transform.Normalization()
	require.NoError(t, err)
	assert.Equal(t, casing.NormalizeNFC, n)
}

func TestExplicitFileMustExist(t *testing.T) {
	_, err := NewViper(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("HTMLCASE_SERVER_ADDR", ":7000")
	t.Setenv("HTMLCASE_SERVER_WRITE_TIMEOUT", "1m")
	t.Setenv("HTMLCASE_LOG_JSON", "true")

	cfg, err := load(t, "", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
	assert.True(t, cfg.Log.JSON)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: Server{
				Addr:            ":8080",
				MaxBodySize:     "1MB",
				ReadTimeout:     time.Second,
				WriteTimeout:    time.Second,
				ShutdownTimeout: time.Second,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "missing addr", mutate: func(c *Config) { c.Server.Addr = "" }, wantErr: "Addr is required"},
		{name: "zero timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }, wantErr: "ReadTimeout must be greater than 0"},
		{name: "bad size", mutate: func(c *Config) { c.Server.MaxBodySize = "lots" }, wantErr: "max_body_size"},
		{name: "size overflows int64", mutate: func(c *Config) { c.Server.MaxBodySize = "10EB" }, wantErr: "too large"},
		{name: "zero size", mutate: func(c *Config) { c.Server.MaxBodySize = "0B" }, wantErr: "must be positive"},
		{name: "bad normalize", mutate: func(c *Config) { c.Transform.Normalize = "nfx" }, wantErr: "transform.normalize"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
