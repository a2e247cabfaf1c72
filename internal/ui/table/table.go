// Package table lists typed values in a bubbles table. Callers keep their
// own values and supply a function that turns one into cells.
package table

import (
	"image/color"

	bubtable "charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

type (
	Column = bubtable.Column
	Row    = bubtable.Row
)

// minLastColumn keeps the trailing column readable in narrow panes.
const minLastColumn = 4

// Palette colors the header and the cursor row. Nil entries keep the
// terminal default.
type Palette struct {
	Header     color.Color
	SelectedFG color.Color
	SelectedBG color.Color
	NoColor    bool
}

// styles builds the table styles for p. Cells are flush left with one
// space of right padding; the header gets an underline.
func styles(p Palette) bubtable.Styles {
	cell := lipgloss.NewStyle().Padding(0, 1, 0, 0)
	s := bubtable.Styles{
		Cell: cell,
		Header: cell.Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false),
		Selected: lipgloss.NewStyle().Bold(true),
	}
	if p.NoColor {
		s.Selected = s.Selected.Reverse(true)
		return s
	}
	if p.Header != nil {
		s.Header = s.Header.Foreground(p.Header)
	}
	if p.SelectedFG != nil {
		s.Selected = s.Selected.Foreground(p.SelectedFG)
	}
	if p.SelectedBG != nil {
		s.Selected = s.Selected.Background(p.SelectedBG)
	}
	return s
}

// Model is a table of V values.
type Model[V any] struct {
	inner   bubtable.Model
	values  []V
	layout  []Column
	cells   func(V) Row
	palette Palette
	width   int
}

// NewModel returns an unfocused table with the given column layout.
func NewModel[V any](columns []Column, cells func(V) Row) *Model[V] {
	m := &Model[V]{
		inner:  bubtable.New(bubtable.WithColumns(columns), bubtable.WithHeight(5)),
		layout: columns,
		cells:  cells,
		width:  40,
	}
	m.inner.SetStyles(styles(m.palette))
	return m
}

// SetRows replaces the listed values and puts the cursor on the first one.
func (m *Model[V]) SetRows(values []V) {
	m.values = values
	rows := make([]Row, 0, len(values))
	for _, v := range values {
		rows = append(rows, m.cells(v))
	}
	m.inner.SetRows(rows)
	m.inner.SetCursor(0)
}

func (m *Model[V]) Rows() []V { return m.values }

func (m *Model[V]) Cursor() int { return m.inner.Cursor() }

// SelectedRow returns the value under the cursor, nil when empty.
func (m *Model[V]) SelectedRow() *V {
	i := m.inner.Cursor()
	if i < 0 || i >= len(m.values) {
		return nil
	}
	return &m.values[i]
}

// SetSize resizes the table. Leading columns keep their widths and the last
// one takes what remains.
func (m *Model[V]) SetSize(width, height int) {
	m.width = width
	m.inner.SetWidth(width)
	m.inner.SetHeight(height)
	if len(m.layout) == 0 {
		return
	}
	cols := append([]Column(nil), m.layout...)
	rest := width - 1
	for _, c := range cols[:len(cols)-1] {
		rest -= c.Width + 1
	}
	cols[len(cols)-1].Width = max(rest, minLastColumn)
	m.inner.SetColumns(cols)
}

func (m *Model[V]) Focus()        { m.inner.Focus() }
func (m *Model[V]) Blur()         { m.inner.Blur() }
func (m *Model[V]) Focused() bool { return m.inner.Focused() }

// SetNoColor drops every color and marks the cursor row in reverse video.
func (m *Model[V]) SetNoColor(on bool) {
	m.palette.NoColor = on
	m.inner.SetStyles(styles(m.palette))
}

// SetColors sets the header and cursor row colors.
func (m *Model[V]) SetColors(header, selectedFG, selectedBG color.Color) {
	m.palette.Header = header
	m.palette.SelectedFG = selectedFG
	m.palette.SelectedBG = selectedBG
	m.inner.SetStyles(styles(m.palette))
}

func (m *Model[V]) Update(msg tea.Msg) (*Model[V], tea.Cmd) {
	var cmd tea.Cmd
	m.inner, cmd = m.inner.Update(msg)
	return m, cmd
}

func (m *Model[V]) View() string { return m.inner.View() }
