package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/oakwood-commons/jsonexplorer/internal/config"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/theme"
)

// configLoader centralizes config/theme loading so callers avoid duplicating merge logic.
type configLoader struct {
	discover func() string
	load     func(path string) (config.Config, error)
}

var cfgLoader = configLoader{discover: config.Discover, load: config.Load}

// resolveConfigPath returns the explicit path if set, otherwise the user
// config file under $XDG_CONFIG_HOME/jsonexplorer when one exists.
func resolveConfigPath(explicit string) string {
	return cfgLoader.resolvePath(explicit)
}

func loadMergedConfig(cfgPath string) (config.Config, error) {
	return cfgLoader.load(cfgPath)
}

func (l configLoader) resolvePath(explicit string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		return explicit
	}
	return l.discover()
}

// selectTheme picks the theme named by the flag, else the configured one.
func selectTheme(cfg config.Config, name string, noColor bool) (theme.Theme, error) {
	if name == "" {
		name = cfg.UI.Theme
	}
	tc, ok := cfg.Themes[name]
	if !ok {
		return theme.Theme{}, fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(cfg.ThemeNames(), ", "))
	}
	return theme.FromConfig(tc, noColor), nil
}

// writeThemes lists theme names one per line, marking the default with '*'.
func writeThemes(w io.Writer, cfg config.Config) error {
	for _, name := range cfg.ThemeNames() {
		marker := " "
		if name == cfg.UI.Theme {
			marker = "*"
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", marker, name); err != nil {
			return err
		}
	}
	return nil
}
