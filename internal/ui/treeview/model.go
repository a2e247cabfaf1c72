// Package treeview is the tree pane: a scrollable, collapsible rendering of
// the projected display tree with a single selected row.
package treeview

import (
	"slices"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
	"github.com/oakwood-commons/jsonexplorer/internal/tree"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/theme"
)

// Model is the tree pane.
type Model struct {
	root     *tree.Node
	rows     []tree.Row
	expanded map[*tree.Node]bool
	cursor   int
	offset   int

	keys    KeyMap
	theme   theme.Theme
	width   int
	height  int
	focused bool
}

// New returns an empty tree pane.
func New(th theme.Theme) *Model {
	return &Model{
		expanded: map[*tree.Node]bool{},
		keys:     DefaultKeyMap(),
		theme:    th,
		width:    40,
		height:   10,
	}
}

// SetRoot replaces the displayed tree, opens it depth levels deep and
// selects the root. depth 0 still shows the root's children.
func (m *Model) SetRoot(root *tree.Node, depth int) {
	m.root = root
	m.expanded = map[*tree.Node]bool{}
	m.cursor = 0
	m.offset = 0
	m.ExpandToDepth(depth)
}

// Root returns the displayed tree.
func (m *Model) Root() *tree.Node { return m.root }

// Rows returns the visible rows.
func (m *Model) Rows() []tree.Row { return m.rows }

// Cursor returns the selected row index.
func (m *Model) Cursor() int { return m.cursor }

// Selected returns the node under the cursor, or nil for an empty pane.
func (m *Model) Selected() *tree.Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor].Node
}

// Trail returns the selected node and its ancestors, root first.
func (m *Model) Trail() []*tree.Node {
	var out []*tree.Node
	for i := m.cursor; i >= 0 && i < len(m.rows); i = m.rows[i].Parent {
		out = append(out, m.rows[i].Node)
	}
	slices.Reverse(out)
	return out
}

// IsExpanded reports whether n is open.
func (m *Model) IsExpanded(n *tree.Node) bool {
	return n == m.root || m.expanded[n]
}

// refresh rebuilds the rows, keeping the selected node under the cursor.
// If it was hidden, fallback is selected instead.
func (m *Model) refresh(fallback *tree.Node) {
	selected := m.Selected()
	m.rows = tree.Flatten(m.root, m.IsExpanded)
	m.cursor = 0
	for _, want := range []*tree.Node{selected, fallback} {
		if m.indexOf(want) >= 0 {
			m.cursor = m.indexOf(want)
			break
		}
	}
	m.clampCursor()
}

func (m *Model) indexOf(n *tree.Node) int {
	if n == nil {
		return -1
	}
	for i, r := range m.rows {
		if r.Node == n {
			return i
		}
	}
	return -1
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if h := m.height; h > 0 && m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// Expand opens n.
func (m *Model) Expand(n *tree.Node) {
	if n == nil || len(n.Children) == 0 {
		return
	}
	m.expanded[n] = true
	m.refresh(n)
}

// Collapse closes n. The root always stays open.
func (m *Model) Collapse(n *tree.Node) {
	if n == nil || n == m.root {
		return
	}
	delete(m.expanded, n)
	m.refresh(n)
}

// ExpandAll opens every container.
func (m *Model) ExpandAll() {
	if m.root == nil {
		return
	}
	m.root.Walk(func(n *tree.Node, _ int) bool {
		if len(n.Children) > 0 {
			m.expanded[n] = true
		}
		return true
	})
	m.refresh(nil)
}

// CollapseAll closes everything below the root and selects the root.
func (m *Model) CollapseAll() {
	m.expanded = map[*tree.Node]bool{}
	m.cursor = 0
	m.offset = 0
	m.rows = tree.Flatten(m.root, m.IsExpanded)
}

// ExpandToDepth opens exactly the containers above depth; the root is
// depth 0.
func (m *Model) ExpandToDepth(depth int) {
	m.expanded = map[*tree.Node]bool{}
	if m.root != nil {
		m.root.Walk(func(n *tree.Node, d int) bool {
			if d >= depth {
				return false
			}
			if len(n.Children) > 0 {
				m.expanded[n] = true
			}
			return true
		})
	}
	m.refresh(m.root)
}

// Select moves the cursor to n, opening its ancestors. It reports whether n
// is part of the displayed tree.
func (m *Model) Select(n *tree.Node) bool {
	path := m.pathTo(n)
	if path == nil {
		return false
	}
	for _, anc := range path[:len(path)-1] {
		m.expanded[anc] = true
	}
	m.rows = tree.Flatten(m.root, m.IsExpanded)
	m.cursor = m.indexOf(n)
	m.clampCursor()
	return true
}

// SelectRef selects the node projected from ref.
func (m *Model) SelectRef(ref document.Ref) bool {
	var found *tree.Node
	if m.root != nil {
		m.root.Walk(func(n *tree.Node, _ int) bool {
			if found != nil {
				return false
			}
			if n.Ref == ref {
				found = n
				return false
			}
			return true
		})
	}
	if found == nil {
		return false
	}
	return m.Select(found)
}

func (m *Model) pathTo(target *tree.Node) []*tree.Node {
	if m.root == nil || target == nil {
		return nil
	}
	var path []*tree.Node
	var visit func(n *tree.Node) bool
	visit = func(n *tree.Node) bool {
		path = append(path, n)
		if n == target {
			return true
		}
		for _, c := range n.Children {
			if visit(c) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if !visit(m.root) {
		return nil
	}
	return path
}

// SetSize sets the pane's inner size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clampCursor()
}

// Focus gives the pane keyboard input.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return nil
}

// Blur removes keyboard input.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the pane receives keys.
func (m *Model) Focused() bool { return m.focused }

// SetTheme replaces the color theme.
func (m *Model) SetTheme(th theme.Theme) { m.theme = th }

// KeyMap returns the pane's bindings for help rendering.
func (m *Model) KeyMap() KeyMap { return m.keys }

// Update handles navigation keys when focused.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !m.focused || len(m.rows) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor--
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor++
	case key.Matches(keyMsg, m.keys.PageUp):
		m.cursor -= m.pageSize()
	case key.Matches(keyMsg, m.keys.PageDown):
		m.cursor += m.pageSize()
	case key.Matches(keyMsg, m.keys.GotoTop):
		m.cursor = 0
	case key.Matches(keyMsg, m.keys.GotoEnd):
		m.cursor = len(m.rows) - 1
	case key.Matches(keyMsg, m.keys.Expand):
		m.expandOrDescend()
		return m, nil
	case key.Matches(keyMsg, m.keys.Collapse):
		m.collapseOrAscend()
		return m, nil
	case key.Matches(keyMsg, m.keys.Toggle):
		if n := m.Selected(); n != nil && len(n.Children) > 0 {
			if m.IsExpanded(n) {
				m.Collapse(n)
			} else {
				m.Expand(n)
			}
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.ExpandAll):
		m.ExpandAll()
		return m, nil
	case key.Matches(keyMsg, m.keys.CollapseAll):
		m.CollapseAll()
		return m, nil
	case key.Matches(keyMsg, m.keys.ExpandLevels):
		if d, err := strconv.Atoi(keyMsg.String()); err == nil {
			m.ExpandToDepth(d)
		}
		return m, nil
	}
	m.clampCursor()
	return m, nil
}

func (m *Model) pageSize() int {
	if m.height > 1 {
		return m.height - 1
	}
	return 1
}

func (m *Model) expandOrDescend() {
	row := m.rows[m.cursor]
	if len(row.Node.Children) == 0 {
		return
	}
	if !row.Expanded {
		m.Expand(row.Node)
		return
	}
	m.cursor++
	m.clampCursor()
}

func (m *Model) collapseOrAscend() {
	row := m.rows[m.cursor]
	if row.Expanded && row.Node != m.root {
		m.Collapse(row.Node)
		return
	}
	if row.Parent >= 0 {
		m.cursor = row.Parent
		m.clampCursor()
	}
}

// View renders the visible window of rows, one per line.
func (m *Model) View() string {
	if m.root == nil {
		return theme.Fg(m.theme.Guide).Render("No document loaded")
	}
	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}
	var b strings.Builder
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderRow(m.rows[i], i == m.cursor))
	}
	return b.String()
}

func (m *Model) renderRow(r tree.Row, selected bool) string {
	var prefix strings.Builder
	for _, more := range r.Guides {
		if more {
			prefix.WriteString("│  ")
		} else {
			prefix.WriteString("   ")
		}
	}
	if r.Depth > 0 {
		if r.Last {
			prefix.WriteString("└─")
		} else {
			prefix.WriteString("├─")
		}
	}
	switch {
	case len(r.Node.Children) == 0:
		prefix.WriteString("  ")
	case r.Expanded:
		prefix.WriteString("▾ ")
	default:
		prefix.WriteString("▸ ")
	}

	label := r.Node.Label
	value := r.Node.Secondary
	avail := m.width - runewidth.StringWidth(prefix.String())
	if avail < 1 {
		avail = 1
	}
	text := label
	if value != "" {
		text = label + "  " + value
	}
	if runewidth.StringWidth(text) > avail {
		text = runewidth.Truncate(text, avail, "…")
	}

	if selected {
		return theme.Fg(m.theme.Guide).Render(prefix.String()) + m.theme.Selected().Render(text)
	}
	if value != "" && strings.HasPrefix(text, label+"  ") {
		return theme.Fg(m.theme.Guide).Render(prefix.String()) +
			theme.Fg(m.theme.Key).Render(label) + "  " +
			theme.Fg(m.theme.Value).Render(strings.TrimPrefix(text, label+"  "))
	}
	return theme.Fg(m.theme.Guide).Render(prefix.String()) + theme.Fg(m.theme.Key).Render(text)
}
