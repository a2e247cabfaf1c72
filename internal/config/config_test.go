package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "dark", cfg.UI.Theme)
	assert.Equal(t, int64(64<<20), cfg.MaxFileBytes())
	assert.Equal(t, 1, cfg.ExpandDepth())
	assert.True(t, cfg.ShowRaw())
	assert.False(t, cfg.Watch())
	assert.Equal(t, []string{"cool", "dark", "warm"}, cfg.ThemeNames())
	assert.Equal(t, ColorValue("81"), cfg.Themes["dark"].Accent)
	assert.Equal(t, "dracula", cfg.Themes["dark"].Syntax)
	require.NoError(t, cfg.Validate())
}

func TestDefault_ReturnsIndependentCopies(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	*a.UI.ExpandDepth = 9
	a.Themes["dark"] = ThemeConfig{}

	b, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 1, b.ExpandDepth())
	assert.Equal(t, ColorValue("81"), b.Themes["dark"].Accent)
}

func TestLoad_EmptyPathIsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	def, err := Default()
	require.NoError(t, err)
	assert.Equal(t, def, cfg)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
app:
  log_level: debug
  max_file_bytes: 1024
ui:
  theme: warm
  expand_depth: 0
  show_raw: false
themes:
  warm:
    accent: "#ff8800"
  custom:
    key: 42
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, int64(1024), cfg.MaxFileBytes())
	assert.Equal(t, "warm", cfg.UI.Theme)
	assert.Equal(t, 0, cfg.ExpandDepth())
	assert.False(t, cfg.ShowRaw())

	warm := cfg.Themes["warm"]
	assert.Equal(t, ColorValue("#ff8800"), warm.Accent)
	assert.Equal(t, ColorValue("215"), warm.Key, "unset colors keep defaults")

	custom := cfg.Themes["custom"]
	assert.Equal(t, ColorValue("42"), custom.Key)
	assert.Equal(t, ColorValue("252"), custom.Value, "new themes start from the default theme")
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[app]
log_level = "warn"

[ui]
theme = "cool"
watch = true
expand_depth = 3

[themes.cool]
accent = "200"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, "cool", cfg.UI.Theme)
	assert.True(t, cfg.Watch())
	assert.Equal(t, 3, cfg.ExpandDepth())
	assert.Equal(t, ColorValue("200"), cfg.Themes["cool"].Accent)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "bad.yaml", "ui: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "theme.yaml", "ui:\n  theme: neon\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "neon"`)

	_, err = Load(writeConfig(t, "level.yaml", "app:\n  log_level: chatty\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")

	_, err = Load(writeConfig(t, "neg.yaml", "app:\n  max_file_bytes: -1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_file_bytes")

	_, err = Load(writeConfig(t, "unknown.toml", "[ui]\nbogus = 1\n"))
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]int8{"debug": -1, "": 0, "INFO": 0, "warn": 1, "warning": 1, "error": 2}
	for in, want := range cases {
		got, err := ParseLogLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLogLevel("trace")
	assert.Error(t, err)
}

func TestMarshal(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	out, err := Marshal(cfg, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(out), "accent: 81\n", "numeric colors are emitted as YAML ints")

	var round Config
	require.NoError(t, yaml.Unmarshal(out, &round))
	assert.Equal(t, cfg, round)

	out, err = Marshal(cfg, "json")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "{"))
	assert.Contains(t, string(out), `"theme": "dark"`)

	out, err = Marshal(cfg, "toml")
	require.NoError(t, err)
	assert.Contains(t, string(out), "[ui]")

	_, err = Marshal(cfg, "xml")
	assert.Error(t, err)
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	if got := Discover(); got != "" && !strings.HasPrefix(got, dir) {
		t.Fatalf("Discover found a file outside the test dir: %s", got)
	}

	appDir := filepath.Join(dir, "jsonexplorer")
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	path := filepath.Join(appDir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\n"), 0o600))

	got := Discover()
	if got != path {
		t.Skipf("user config dir does not follow XDG_CONFIG_HOME on this platform (%s)", got)
	}
	assert.Equal(t, path, got)
}
