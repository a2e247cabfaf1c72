package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/jsonexplorer/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

var (
	embeddedConfigOnce sync.Once
	embeddedConfig     Config
	embeddedConfigErr  error
)

// DefaultConfigYAML returns a copy of the embedded default config YAML bytes.
func DefaultConfigYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default parses and returns the embedded default configuration. The
// result is a deep copy; callers may modify it.
func Default() (Config, error) {
	embeddedConfigOnce.Do(func() {
		if len(embeddedDefaultConfig) == 0 {
			embeddedConfigErr = fmt.Errorf("embedded default config is empty")
			return
		}
		if err := yaml.Unmarshal(embeddedDefaultConfig, &embeddedConfig); err != nil {
			embeddedConfigErr = fmt.Errorf("decode embedded default config: %w", err)
			return
		}
		if embeddedConfig.UI.Theme == "" || len(embeddedConfig.Themes) == 0 {
			embeddedConfigErr = fmt.Errorf("default config is missing required theme defaults")
		}
	})
	if embeddedConfigErr != nil {
		return Config{}, embeddedConfigErr
	}
	return embeddedConfig.clone(), nil
}

func (c Config) clone() Config {
	out := c
	out.App.MaxFileBytes = clonePtr(c.App.MaxFileBytes)
	out.UI.ExpandDepth = clonePtr(c.UI.ExpandDepth)
	out.UI.ShowRaw = clonePtr(c.UI.ShowRaw)
	out.UI.Watch = clonePtr(c.UI.Watch)
	out.Themes = make(map[string]ThemeConfig, len(c.Themes))
	for name, th := range c.Themes {
		out.Themes[name] = th
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Discover returns the first existing user config file under the user
// config directory ($XDG_CONFIG_HOME on Linux), or "" when there is none.
func Discover() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
		path := filepath.Join(dir, settings.CliBinaryName, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// Load returns the embedded defaults merged with the file at path. An empty
// path loads defaults only. Files ending in .toml are read as TOML,
// everything else as YAML.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	user, err := Decode(data, formatFor(path))
	if err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg = Merge(cfg, user)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func formatFor(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return "toml"
	}
	return "yaml"
}

// Decode parses a config document in the given format (yaml or toml).
func Decode(data []byte, format string) (Config, error) {
	var cfg Config
	switch format {
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, err
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", format)
	}
	return cfg, nil
}

// Merge overlays every field set in over onto base. Themes merge by name,
// color by color.
func Merge(base, over Config) Config {
	cfg := base.clone()
	fallback := base.Themes[base.UI.Theme]

	if over.App.LogLevel != "" {
		cfg.App.LogLevel = over.App.LogLevel
	}
	if over.App.LogFile != "" {
		cfg.App.LogFile = over.App.LogFile
	}
	if over.App.MaxFileBytes != nil {
		cfg.App.MaxFileBytes = clonePtr(over.App.MaxFileBytes)
	}

	if over.UI.Theme != "" {
		cfg.UI.Theme = over.UI.Theme
	}
	if over.UI.ExpandDepth != nil {
		cfg.UI.ExpandDepth = clonePtr(over.UI.ExpandDepth)
	}
	if over.UI.ShowRaw != nil {
		cfg.UI.ShowRaw = clonePtr(over.UI.ShowRaw)
	}
	if over.UI.Watch != nil {
		cfg.UI.Watch = clonePtr(over.UI.Watch)
	}

	for name, th := range over.Themes {
		existing, ok := cfg.Themes[name]
		if !ok {
			existing = fallback
		}
		cfg.Themes[name] = existing.merge(th)
	}
	return cfg
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.App.LogLevel); err != nil {
		return err
	}
	if c.App.MaxFileBytes != nil && *c.App.MaxFileBytes < 0 {
		return fmt.Errorf("app.max_file_bytes must not be negative")
	}
	if c.UI.ExpandDepth != nil && *c.UI.ExpandDepth < 0 {
		return fmt.Errorf("ui.expand_depth must not be negative")
	}
	if _, ok := c.Themes[c.UI.Theme]; !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", c.UI.Theme, strings.Join(c.ThemeNames(), ", "))
	}
	return nil
}

// ThemeNames lists the configured themes, sorted.
func (c Config) ThemeNames() []string {
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseLogLevel maps a level name to its zap level value.
func ParseLogLevel(name string) (int8, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return -1, nil
	case "", "info":
		return 0, nil
	case "warn", "warning":
		return 1, nil
	case "error":
		return 2, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// MaxFileBytes returns the input size limit; zero means unlimited.
func (c Config) MaxFileBytes() int64 {
	if c.App.MaxFileBytes == nil {
		return 0
	}
	return *c.App.MaxFileBytes
}

// ExpandDepth returns how many levels are opened after a load.
func (c Config) ExpandDepth() int {
	if c.UI.ExpandDepth == nil {
		return 1
	}
	return *c.UI.ExpandDepth
}

// ShowRaw reports whether the raw document pane starts visible.
func (c Config) ShowRaw() bool {
	return c.UI.ShowRaw == nil || *c.UI.ShowRaw
}

// Watch reports whether file watching is on by default.
func (c Config) Watch() bool {
	return c.UI.Watch != nil && *c.UI.Watch
}

// Marshal renders the config as yaml, toml or json.
func Marshal(c Config, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", "yaml", "yml":
		return yaml.Marshal(c)
	case "toml":
		return toml.Marshal(c)
	case "json":
		return json.MarshalIndent(c, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported output format %q (use yaml, toml or json)", format)
	}
}
