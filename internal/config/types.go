// Package config defines the jsonexplorer configuration file and merges the
// embedded defaults with an optional user file (YAML or TOML).
package config

import (
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the whole configuration file.
type Config struct {
	App    AppConfig              `yaml:"app" toml:"app" json:"app"`
	UI     UIConfig               `yaml:"ui" toml:"ui" json:"ui"`
	Themes map[string]ThemeConfig `yaml:"themes" toml:"themes" json:"themes"`
}

// AppConfig holds process-level settings.
type AppConfig struct {
	LogLevel     string `yaml:"log_level,omitempty" toml:"log_level,omitempty" json:"log_level,omitempty"`
	LogFile      string `yaml:"log_file,omitempty" toml:"log_file,omitempty" json:"log_file,omitempty"`
	MaxFileBytes *int64 `yaml:"max_file_bytes,omitempty" toml:"max_file_bytes,omitempty" json:"max_file_bytes,omitempty"`
}

// UIConfig holds viewer settings. Pointer fields distinguish "unset" from
// the zero value during merges.
type UIConfig struct {
	Theme       string `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty"`
	ExpandDepth *int   `yaml:"expand_depth,omitempty" toml:"expand_depth,omitempty" json:"expand_depth,omitempty"`
	ShowRaw     *bool  `yaml:"show_raw,omitempty" toml:"show_raw,omitempty" json:"show_raw,omitempty"`
	Watch       *bool  `yaml:"watch,omitempty" toml:"watch,omitempty" json:"watch,omitempty"`
}

// ThemeConfig is one named palette. Colors accept ANSI numbers or hex.
type ThemeConfig struct {
	Accent        ColorValue `yaml:"accent,omitempty" toml:"accent,omitempty" json:"accent,omitempty"`
	Key           ColorValue `yaml:"key,omitempty" toml:"key,omitempty" json:"key,omitempty"`
	Value         ColorValue `yaml:"value,omitempty" toml:"value,omitempty" json:"value,omitempty"`
	TypeName      ColorValue `yaml:"type_name,omitempty" toml:"type_name,omitempty" json:"type_name,omitempty"`
	Guide         ColorValue `yaml:"guide,omitempty" toml:"guide,omitempty" json:"guide,omitempty"`
	SelectedFG    ColorValue `yaml:"selected_fg,omitempty" toml:"selected_fg,omitempty" json:"selected_fg,omitempty"`
	SelectedBG    ColorValue `yaml:"selected_bg,omitempty" toml:"selected_bg,omitempty" json:"selected_bg,omitempty"`
	Border        ColorValue `yaml:"border,omitempty" toml:"border,omitempty" json:"border,omitempty"`
	BorderStyle   string     `yaml:"border_style,omitempty" toml:"border_style,omitempty" json:"border_style,omitempty"`
	StatusColor   ColorValue `yaml:"status_color,omitempty" toml:"status_color,omitempty" json:"status_color,omitempty"`
	StatusError   ColorValue `yaml:"status_error,omitempty" toml:"status_error,omitempty" json:"status_error,omitempty"`
	StatusSuccess ColorValue `yaml:"status_success,omitempty" toml:"status_success,omitempty" json:"status_success,omitempty"`
	HelpKey       ColorValue `yaml:"help_key,omitempty" toml:"help_key,omitempty" json:"help_key,omitempty"`
	HelpValue     ColorValue `yaml:"help_value,omitempty" toml:"help_value,omitempty" json:"help_value,omitempty"`
	// Syntax names the chroma style used for the raw document pane.
	Syntax string `yaml:"syntax,omitempty" toml:"syntax,omitempty" json:"syntax,omitempty"`
}

// ColorValue stores a color token (number or name) and marshals numerics as YAML ints.
type ColorValue string

func (c ColorValue) MarshalYAML() (interface{}, error) {
	if c == "" {
		return "", nil
	}
	s := string(c)
	if _, err := strconv.Atoi(s); err == nil {
		return &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: s,
		}, nil
	}
	return s, nil
}

func (c *ColorValue) UnmarshalYAML(value *yaml.Node) error {
	if value == nil {
		*c = ""
		return nil
	}
	// Accept both ints and strings; store the literal value.
	*c = ColorValue(value.Value)
	return nil
}

// merge overlays every non-empty color of o onto t.
func (t ThemeConfig) merge(o ThemeConfig) ThemeConfig {
	pick := func(base, over ColorValue) ColorValue {
		if over != "" {
			return over
		}
		return base
	}
	t.Accent = pick(t.Accent, o.Accent)
	t.Key = pick(t.Key, o.Key)
	t.Value = pick(t.Value, o.Value)
	t.TypeName = pick(t.TypeName, o.TypeName)
	t.Guide = pick(t.Guide, o.Guide)
	t.SelectedFG = pick(t.SelectedFG, o.SelectedFG)
	t.SelectedBG = pick(t.SelectedBG, o.SelectedBG)
	t.Border = pick(t.Border, o.Border)
	t.StatusColor = pick(t.StatusColor, o.StatusColor)
	t.StatusError = pick(t.StatusError, o.StatusError)
	t.StatusSuccess = pick(t.StatusSuccess, o.StatusSuccess)
	t.HelpKey = pick(t.HelpKey, o.HelpKey)
	t.HelpValue = pick(t.HelpValue, o.HelpValue)
	if o.BorderStyle != "" {
		t.BorderStyle = o.BorderStyle
	}
	if o.Syntax != "" {
		t.Syntax = o.Syntax
	}
	return t
}
