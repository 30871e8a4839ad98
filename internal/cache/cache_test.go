package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGet(t *testing.T) {
	s, err := Open(t.TempDir(), 24*time.Hour)
	require.NoError(t, err)

	key := Key("gemini", "gemini-2.5-pro", "review this")
	_, ok := s.Get(key)
	assert.False(t, ok, "miss before put")

	require.NoError(t, s.Put(key, "gemini", "gemini-2.5-pro", "## Overview\nLooks fine."))
	got, ok := s.Get(key)
	require.True(t, ok)
	assert.Equal(t, "## Overview\nLooks fine.", got)
}

func TestStore_TTLExpiration(t *testing.T) {
	s, err := Open(t.TempDir(), time.Hour)
	require.NoError(t, err)

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Put("k", "p", "m", "data"))
	_, ok := s.Get("k")
	assert.True(t, ok)

	now = now.Add(2 * time.Hour)
	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Expired)

	_, ok = s.Get("k")
	assert.False(t, ok)
	_, err = os.Stat(filepath.Join(s.Dir(), "k.json"))
	assert.True(t, os.IsNotExist(err), "expired entry removed on read")
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	s, err := Open(t.TempDir(), 0)
	require.NoError(t, err)
	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Put("k", "p", "m", "data"))
	now = now.Add(24 * 365 * time.Hour)
	_, ok := s.Get("k")
	assert.True(t, ok)
}

func TestStore_ClearAndStats(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.Put("a", "p", "m", "1"))
	require.NoError(t, s.Put("b", "p", "m", "2"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	stats, err := s.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Positive(t, stats.TotalBytes)
	assert.Equal(t, dir, stats.Dir)

	n, err := s.Clear()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stats, err = s.Stats()
	require.NoError(t, err)
	assert.Zero(t, stats.Entries)
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
}

func TestStore_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir, time.Hour)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o644))
	_, ok := s.Get("bad")
	assert.False(t, ok)
}

func TestKey(t *testing.T) {
	k1 := Key("gemini", "m", "prompt")
	assert.Len(t, k1, 64)
	assert.Equal(t, k1, Key("gemini", "m", "prompt"))
	assert.NotEqual(t, k1, Key("openai", "m", "prompt"))
	assert.NotEqual(t, k1, Key("gemini", "m2", "prompt"))
	assert.NotEqual(t, Key("a", "bc", "d"), Key("ab", "c", "d"))
}

func TestDefaultDir_XDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg-cache", "lgtm"), dir)
}
