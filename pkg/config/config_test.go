package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"des-go/pkg/des"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.TraceGroup)
	assert.Equal(t, ":7780", cfg.APIListenAddr)
	assert.Equal(t, "zstd", cfg.TranscriptCompression)
	_, err = cfg.MasterKey()
	assert.ErrorIs(t, err, des.ErrInvalidKey)
}

func TestFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "des.yaml")
	require.NoError(t, os.WriteFile(path, []byte("key: 133457799BBCDFF1\ntrace_group: 8\ntranscript_compression: gzip\n"), 0644))
	t.Setenv("DES_API_LISTEN_ADDRESS", "127.0.0.1:9000")

	cfg, err := Load(path)
	require.NoError(t, err)
	key, err := cfg.MasterKey()
	require.NoError(t, err)
	assert.Equal(t, uint64(0x133457799BBCDFF1), key)
	assert.Equal(t, 8, cfg.TraceGroup)
	assert.Equal(t, "gzip", cfg.TranscriptCompression)
	assert.Equal(t, "127.0.0.1:9000", cfg.APIListenAddr)
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestInvalid(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("key: 1ffffffffffffffff\n"), 0644))
	_, err := Load(bad)
	assert.True(t, errors.Is(err, des.ErrInvalidKey), "got %v", err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.TraceGroup = -1
	assert.Error(t, cfg.Validate())
	cfg = DefaultConfig()
	cfg.TranscriptCompression = "brotli"
	assert.Error(t, cfg.Validate())
}
