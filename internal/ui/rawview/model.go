// Package rawview is the raw document pane: the loaded file's source text,
// syntax highlighted and scrollable.
package rawview

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonexplorer/internal/ui/theme"
)

// Model is the raw document pane.
type Model struct {
	viewport viewport.Model
	raw      string
	theme    theme.Theme
	focused  bool
}

// New returns an empty pane.
func New(th theme.Theme) *Model {
	return &Model{
		viewport: viewport.New(viewport.WithWidth(40), viewport.WithHeight(10)),
		theme:    th,
	}
}

// SetContent replaces the displayed source and scrolls to the top.
func (m *Model) SetContent(raw []byte) {
	m.raw = strings.ReplaceAll(string(raw), "\r\n", "\n")
	m.render()
	m.viewport.GotoTop()
}

// Raw returns the source text as displayed, before highlighting.
func (m *Model) Raw() string { return m.raw }

func (m *Model) render() {
	content := m.raw
	if !m.theme.NoColor && len(content) <= MaxHighlightBytes {
		content = Highlight(content, m.theme.Syntax)
	}
	m.viewport.SetContent(content)
}

// SetTheme replaces the theme and re-highlights the source.
func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
	m.render()
}

// SetSize sets the pane's inner size.
func (m *Model) SetSize(width, height int) {
	m.viewport.SetWidth(width)
	m.viewport.SetHeight(height)
}

// Focus gives the pane scroll keys.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return nil
}

// Blur removes keyboard input.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the pane receives keys.
func (m *Model) Focused() bool { return m.focused }

// Lines returns the number of source lines.
func (m *Model) Lines() int { return m.viewport.TotalLineCount() }

// Update scrolls when focused.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the visible window of the source.
func (m *Model) View() string {
	if m.raw == "" {
		return theme.Fg(m.theme.Guide).Render("No document loaded")
	}
	return m.viewport.View()
}
