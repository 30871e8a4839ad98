package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir and clears LGTM_* env.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for env := range envKeys {
		t.Setenv(env, "")
	}
	return filepath.Join(dir, "lgtm")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "develop", cfg.BaseBranch)
	assert.Equal(t, AliasConfig{Prefix: "@/", Dir: "src"}, cfg.Alias)
	assert.Equal(t, []string{".ts", ".tsx", ".js", ".jsx", ".mjs"}, cfg.Extensions)
	assert.Equal(t, 2, cfg.HistoryWindow)
	assert.Equal(t, 2*time.Second, cfg.FailureDelay)
	assert.InDelta(t, 0.3, cfg.Temperature, 1e-9)
	assert.Equal(t, 8192, cfg.MaxOutputTokens)
	assert.True(t, cfg.Privacy.RedactSecrets)
	assert.True(t, cfg.Cache.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestEffectiveModel(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultModels["gemini"], cfg.EffectiveModel())
	cfg.Provider = "openai"
	assert.Equal(t, "gpt-4o", cfg.EffectiveModel())
	cfg.Model = "gpt-4.1"
	assert.Equal(t, "gpt-4.1", cfg.EffectiveModel())
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	file := `provider: openai
baseBranch: main
failureDelay: 500ms
cache:
  enabled: false
alias:
  prefix: "~/"
  dir: app
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(file), 0o644))
	t.Setenv("LGTM_PROVIDER", "anthropic")
	t.Setenv("LGTM_MODEL", "claude-x")

	cfg, err := Load(map[string]string{"model": "claude-y", "scanner": ""})
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.Provider, "env beats file")
	assert.Equal(t, "claude-y", cfg.Model, "flag beats env")
	assert.Equal(t, "main", cfg.BaseBranch)
	assert.Equal(t, 500*time.Millisecond, cfg.FailureDelay)
	assert.False(t, cfg.Cache.Enabled, "explicit false in file is kept")
	assert.Equal(t, 86400, cfg.Cache.TTLSeconds, "absent keys keep defaults")
	assert.Equal(t, AliasConfig{Prefix: "~/", Dir: "app"}, cfg.Alias)
	assert.Equal(t, "regex", cfg.Scanner, "empty override ignored")
}

func TestLoad_NoFile(t *testing.T) {
	isolate(t)
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)
	_, err := Load(map[string]string{"provider": "bard"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Provider")

	_, err = Load(map[string]string{"historyWindow": "two"})
	assert.Error(t, err)

	_, err = Load(map[string]string{"extensions": "ts,tsx"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "startswith")

	_, err = Load(map[string]string{"baseURL": "not a url"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BaseURL")
}

func TestLoad_BadYAML(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("provider: [x"), 0o644))
	_, err := Load(nil)
	assert.ErrorContains(t, err, "parsing config file")
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	cfg := Default()
	cfg.Model = "gemini-2.5-flash"
	cfg.FailureDelay = 3 * time.Second
	cfg.Exclude = []string{"dist/**"}
	require.NoError(t, Save(cfg))

	got, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestSetField(t *testing.T) {
	cfg := Default()
	tests := []struct {
		key, value string
		check      func() bool
	}{
		{"baseBranch", "main", func() bool { return cfg.BaseBranch == "main" }},
		{"extensions", ".ts, .vue", func() bool { return len(cfg.Extensions) == 2 && cfg.Extensions[1] == ".vue" }},
		{"failureDelay", "1s", func() bool { return cfg.FailureDelay == time.Second }},
		{"temperature", "0.7", func() bool { return cfg.Temperature == 0.7 }},
		{"cache.enabled", "false", func() bool { return !cfg.Cache.Enabled }},
		{"privacy.redactSecrets", "false", func() bool { return !cfg.Privacy.RedactSecrets }},
		{"log.level", "debug", func() bool { return cfg.Log.Level == "debug" }},
	}
	for _, tt := range tests {
		require.NoError(t, SetField(&cfg, tt.key, tt.value), tt.key)
		assert.True(t, tt.check(), tt.key)
	}

	assert.Error(t, SetField(&cfg, "nope", "x"))
	assert.Error(t, SetField(&cfg, "failureDelay", "soon"))
	assert.Error(t, SetField(&cfg, "cache.enabled", "maybe"))
}

func TestConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := ConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "lgtm"), dir)

	path, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "lgtm", "config.yaml"), path)
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("baseBranch: main\n"), 0o644))
	t.Setenv("LGTM_BASE_BRANCH", "trunk")

	cfg, err := LoadFile()
	require.NoError(t, err)
	assert.Equal(t, "main", cfg.BaseBranch)
}
