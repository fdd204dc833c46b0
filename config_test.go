package fixtext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, defaultCandidates, cfg.Encodings)
	assert.Equal(t, defaultMaxPasses, cfg.MaxPasses)
	assert.Zero(t, cfg.CacheEntries)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtext.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
encodings:
  - latin-1
  - windows-1252
max_passes: 3
cache_entries: 512
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"latin-1", "windows-1252"}, cfg.Encodings)
	assert.Equal(t, 3, cfg.MaxPasses)
	assert.Equal(t, int64(512), cfg.CacheEntries)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("encodings: {not: a list}"), 0644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)
}

func TestConfigValidation(t *testing.T) {
	_, err := NewFixer(Config{Encodings: []string{"no-such-charmap"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-charmap")

	// The variant codec is not a single-byte candidate.
	_, err = NewFixer(Config{Encodings: []string{"utf-8-variants"}})
	require.Error(t, err)

	_, err = NewFixer(Config{CacheEntries: -5})
	require.Error(t, err)
}
