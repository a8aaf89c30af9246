package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	v := New()
	v.Set("data_dir", dir)

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "file", cfg.Backend)
	assert.Empty(t, cfg.Actor)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.Equal(t, 3, cfg.Log.MaxBackups)
	assert.Equal(t, filepath.Join(dir, "logs", "opstrack.log"), cfg.LogFile())
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	content := "backend: sqlite\nactor: مدير المشتريات\nlog:\n  level: debug\n  max_backups: 7\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	v := New()
	v.Set("data_dir", dir)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Backend)
	assert.Equal(t, "مدير المشتريات", cfg.Actor)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7, cfg.Log.MaxBackups)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("backend: sqlite\n"), 0644))
	t.Setenv("OPSTRACK_BACKEND", "memory")
	t.Setenv("OPSTRACK_LOG_LEVEL", "warn")

	v := New()
	v.Set("data_dir", dir)
	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "backend: [unclosed\n"},
		{"unknown backend", "backend: redis\n"},
		{"unknown level", "log:\n  level: chatty\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tc.content), 0644))
			v := New()
			v.Set("data_dir", dir)
			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	v := New()
	v.Set("data_dir", dir)
	cfg, err := Load(v)
	require.NoError(t, err)
	cfg.Backend = "sqlite"

	require.NoError(t, WriteDefault(dir, cfg))
	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "data_dir")

	v2 := New()
	v2.Set("data_dir", dir)
	loaded, err := Load(v2)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
