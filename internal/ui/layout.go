package ui

import (
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/jsonexplorer/internal/ui/theme"
)

// Constants for fixed component heights and minimum sizes.
const (
	HeaderLineCount = 1
	StatusLineCount = 1
	FooterLineCount = 1
	BorderSize      = 2 // one line or column per side
	PaneTitleLines  = 1
	MinPaneWidth    = 12
	MinPaneHeight   = 4
	MinWindowWidth  = 2 * MinPaneWidth
	MinWindowHeight = HeaderLineCount + StatusLineCount + FooterLineCount + MinPaneHeight
	// TreeWidthPercent is the tree pane's share of the window width.
	TreeWidthPercent = 45
)

// Rect is an outer pane size, border included.
type Rect struct {
	Width  int
	Height int
}

// Inner returns the body size inside the border and title line.
func (r Rect) Inner() (width, height int) {
	width = r.Width - BorderSize
	height = r.Height - BorderSize - PaneTitleLines
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return width, height
}

// Layout is the result of a layout pass.
type Layout struct {
	BodyHeight int
	Tree       Rect
	Editor     Rect
	Raw        Rect // zero when hidden
}

// LayoutManager manages the layout calculations for the TUI
type LayoutManager struct {
	width  int
	height int
}

// NewLayoutManager creates a new layout manager
func NewLayoutManager(width, height int) *LayoutManager {
	return &LayoutManager{width: width, height: height}
}

// TooSmall reports whether the window cannot fit the panes.
func (lm *LayoutManager) TooSmall() bool {
	return lm.width < MinWindowWidth || lm.height < MinWindowHeight
}

// Calculate splits the window: tree on the left, editor on the right with
// the raw pane below it when visible.
func (lm *LayoutManager) Calculate(showRaw bool) Layout {
	body := lm.height - HeaderLineCount - StatusLineCount - FooterLineCount
	if body < MinPaneHeight {
		body = MinPaneHeight
	}
	treeW := lm.width * TreeWidthPercent / 100
	if treeW < MinPaneWidth {
		treeW = MinPaneWidth
	}
	rightW := lm.width - treeW
	if rightW < MinPaneWidth {
		rightW = MinPaneWidth
	}

	l := Layout{
		BodyHeight: body,
		Tree:       Rect{Width: treeW, Height: body},
		Editor:     Rect{Width: rightW, Height: body},
	}
	if showRaw && body >= 2*MinPaneHeight {
		editorH := body / 2
		l.Editor.Height = editorH
		l.Raw = Rect{Width: rightW, Height: body - editorH}
	}
	return l
}

// layout resizes every pane for the current window.
func (m *Model) layout() {
	lm := NewLayoutManager(m.width, m.height)
	l := lm.Calculate(m.showRaw)

	m.tree.SetSize(l.Tree.Inner())
	m.editor.SetSize(l.Editor.Inner())
	if l.Raw.Height > 0 {
		m.raw.SetSize(l.Raw.Inner())
	}
	m.status.Width = m.width
	m.prompt.SetWidth(max(m.width-len(m.prompt.Prompt)-1, 1))
}

// Render draws the full screen as a string.
func (m *Model) Render() string {
	lm := NewLayoutManager(m.width, m.height)
	if lm.TooSmall() {
		return theme.Fit("Terminal too small", m.width, m.height)
	}
	l := lm.Calculate(m.showRaw)

	var body string
	if m.mode == HelpMode {
		body = m.box("Help", m.help.View(m.keys), Rect{Width: m.width, Height: l.BodyHeight}, true)
	} else {
		left := m.box("Tree", m.tree.View(), l.Tree, m.focus == TreePane)
		right := m.box(m.editor.Title(), m.editor.View(), l.Editor, m.focus == EditorPane)
		if l.Raw.Height > 0 {
			raw := m.box("Raw", m.raw.View(), l.Raw, m.focus == RawPane)
			right = lipgloss.JoinVertical(lipgloss.Left, right, raw)
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	return strings.Join([]string{m.renderHeader(), body, m.renderStatus(), m.renderFooter()}, "\n")
}

// box frames a pane body under a title line.
func (m *Model) box(title, content string, r Rect, focused bool) string {
	w, h := r.Inner()
	inner := theme.PadRight(m.theme.Title().Render(title), w) + "\n" + theme.Fit(content, w, h)
	return m.theme.Pane(focused).Render(inner)
}

func (m *Model) renderHeader() string {
	parts := []string{m.theme.Title().Render("jsonexplorer")}
	if m.snap != nil {
		parts = append(parts, m.snap.Path)
	} else if m.path != "" {
		parts = append(parts, m.path)
	}
	if m.selPath != "" {
		parts = append(parts, m.selPath)
	}
	return theme.PadRight(strings.Join(parts, "  "), m.width)
}

func (m *Model) renderStatus() string {
	if m.mode == PromptMode {
		return theme.PadRight(m.prompt.View(), m.width)
	}
	return m.status.View(m.theme)
}

func (m *Model) renderFooter() string {
	if m.mode == HelpMode {
		return theme.PadRight("esc/? close help", m.width)
	}
	var km help.KeyMap = m.keys
	if m.mode == PromptMode {
		km = promptKeys{m.keys}
	}
	h := m.help
	h.ShowAll = false
	return theme.PadRight(h.View(km), m.width)
}
