// Package theme turns a configured palette into the lipgloss styles shared
// by every pane.
package theme

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jsonexplorer/internal/config"
)

// DefaultSyntax is the chroma style used when a theme names none.
const DefaultSyntax = "dracula"

// Theme defines colors used across the UI. Nil colors render unstyled.
type Theme struct {
	Accent        color.Color // Title and focused border
	Key           color.Color // Node labels
	Value         color.Color // Leaf values
	TypeName      color.Color // Type annotations in editor tables
	Guide         color.Color // Tree connector lines
	SelectedFG    color.Color
	SelectedBG    color.Color
	Border        color.Color // Unfocused pane border
	BorderStyle   string      // normal|rounded
	StatusColor   color.Color
	StatusError   color.Color
	StatusSuccess color.Color
	HelpKey       color.Color
	HelpValue     color.Color
	Syntax        string // chroma style name
	NoColor       bool
}

// FromConfig builds a Theme from a ThemeConfig. With noColor set, every
// color is dropped and selection falls back to reverse video.
func FromConfig(cfg config.ThemeConfig, noColor bool) Theme {
	th := Theme{
		BorderStyle: normalizeBorderStyle(cfg.BorderStyle),
		Syntax:      strings.TrimSpace(cfg.Syntax),
		NoColor:     noColor,
	}
	if th.Syntax == "" {
		th.Syntax = DefaultSyntax
	}
	if noColor {
		return th
	}
	set := func(val config.ColorValue, dst *color.Color) {
		if val != "" {
			*dst = lipgloss.Color(string(val))
		}
	}
	set(cfg.Accent, &th.Accent)
	set(cfg.Key, &th.Key)
	set(cfg.Value, &th.Value)
	set(cfg.TypeName, &th.TypeName)
	set(cfg.Guide, &th.Guide)
	set(cfg.SelectedFG, &th.SelectedFG)
	set(cfg.SelectedBG, &th.SelectedBG)
	set(cfg.Border, &th.Border)
	set(cfg.StatusColor, &th.StatusColor)
	set(cfg.StatusError, &th.StatusError)
	set(cfg.StatusSuccess, &th.StatusSuccess)
	set(cfg.HelpKey, &th.HelpKey)
	set(cfg.HelpValue, &th.HelpValue)
	return th
}

// Plain is the colorless theme used by tests and --no-color.
func Plain() Theme {
	return FromConfig(config.ThemeConfig{}, true)
}

func normalizeBorderStyle(val string) string {
	switch strings.TrimSpace(strings.ToLower(val)) {
	case "rounded", "round":
		return "rounded"
	default:
		return "normal"
	}
}

// Fg returns a style with c as foreground, or an empty style for nil.
func Fg(c color.Color) lipgloss.Style {
	s := lipgloss.NewStyle()
	if c != nil {
		s = s.Foreground(c)
	}
	return s
}

// Selected styles the row under the cursor.
func (t Theme) Selected() lipgloss.Style {
	if t.NoColor || (t.SelectedFG == nil && t.SelectedBG == nil) {
		return lipgloss.NewStyle().Reverse(true)
	}
	s := lipgloss.NewStyle()
	if t.SelectedFG != nil {
		s = s.Foreground(t.SelectedFG)
	}
	if t.SelectedBG != nil {
		s = s.Background(t.SelectedBG)
	}
	return s
}

// Title styles pane and window titles.
func (t Theme) Title() lipgloss.Style {
	return Fg(t.Accent).Bold(true)
}

// Pane returns the bordered frame for a pane.
func (t Theme) Pane(focused bool) lipgloss.Style {
	border := lipgloss.NormalBorder()
	if t.BorderStyle == "rounded" {
		border = lipgloss.RoundedBorder()
	}
	s := lipgloss.NewStyle().Border(border)
	c := t.Border
	if focused {
		c = t.Accent
	}
	if c != nil {
		s = s.BorderForeground(c)
	}
	return s
}
