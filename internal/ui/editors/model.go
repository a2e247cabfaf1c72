// Package editors is the editor pane. It holds one view per editable value
// type and shows exactly one of them, chosen by editor.Switcher. Changes
// made in a view stay local to the pane.
package editors

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
	"github.com/oakwood-commons/jsonexplorer/internal/editor"
	"github.com/oakwood-commons/jsonexplorer/internal/tree"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/theme"
)

// Model is the editor pane.
type Model struct {
	switcher *editor.Switcher

	boolView   *BoolView
	numberView *NumberView
	textView   *TextView
	arrayView  *CollectionView
	objectView *CollectionView

	bound   bool
	message string
	label   string

	theme   theme.Theme
	width   int
	height  int
	focused bool
}

// New returns an unbound pane showing the bool view.
func New(th theme.Theme) *Model {
	m := &Model{
		switcher:   editor.NewSwitcher(),
		boolView:   &BoolView{},
		numberView: newNumberView(),
		textView:   newTextView(),
		arrayView:  newCollectionView(document.KindArray),
		objectView: newCollectionView(document.KindObject),
		message:    "Select a value",
		width:      40,
		height:     10,
	}
	m.SetTheme(th)
	return m
}

// Bind shows the editor for v and pre-populates it. Values without an
// editor leave the visible view in place, mark the pane unbound and
// return editor.ErrNoEditor.
func (m *Model) Bind(v document.Value, label string) error {
	wasFocused := m.focused
	m.blurActive()
	defer func() {
		if wasFocused {
			m.focusActive()
		}
	}()

	slot, err := m.switcher.ActivateFor(v.Kind())
	if err != nil {
		m.bound = false
		m.label = label
		m.message = fmt.Sprintf("No editor for %s values", tree.TypeName(v.Kind()))
		return err
	}
	m.bound = true
	m.label = label
	m.message = ""

	switch slot {
	case editor.SlotBool:
		m.boolView.SetValue(v.Bool())
	case editor.SlotNumber:
		m.numberView.SetValue(v.Float())
	case editor.SlotString:
		m.textView.SetValue(v.Text())
	case editor.SlotArray:
		m.arrayView.SetValue(v)
	case editor.SlotObject:
		m.objectView.SetValue(v)
	}
	return nil
}

// Unbind clears the pane, e.g. when no document is loaded.
func (m *Model) Unbind(message string) {
	m.bound = false
	m.label = ""
	m.message = message
}

// Active returns the visible editor slot.
func (m *Model) Active() editor.Slot { return m.switcher.Active() }

// Bound reports whether the visible view holds the selected value.
func (m *Model) Bound() bool { return m.bound }

// Message returns the text shown while unbound.
func (m *Model) Message() string { return m.message }

// BoolView returns the bool editor.
func (m *Model) BoolView() *BoolView { return m.boolView }

// NumberView returns the number editor.
func (m *Model) NumberView() *NumberView { return m.numberView }

// TextView returns the string editor.
func (m *Model) TextView() *TextView { return m.textView }

// ArrayView returns the array editor.
func (m *Model) ArrayView() *CollectionView { return m.arrayView }

// ObjectView returns the object editor.
func (m *Model) ObjectView() *CollectionView { return m.objectView }

// SetSize sets the pane's inner size.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	inputWidth := width - 4
	if inputWidth < 4 {
		inputWidth = 4
	}
	m.numberView.input.SetWidth(inputWidth)
	m.textView.input.SetWidth(inputWidth)
	// title line
	tableHeight := height - 1
	if tableHeight < 2 {
		tableHeight = 2
	}
	m.arrayView.table.SetSize(width, tableHeight)
	m.objectView.table.SetSize(width, tableHeight)
}

// SetTheme replaces the color theme.
func (m *Model) SetTheme(th theme.Theme) {
	m.theme = th
	m.arrayView.applyTheme(th)
	m.objectView.applyTheme(th)
}

// Focus gives the visible view keyboard input.
func (m *Model) Focus() tea.Cmd {
	m.focused = true
	return m.focusActive()
}

// Blur removes keyboard input.
func (m *Model) Blur() {
	m.focused = false
	m.blurActive()
}

// Focused reports whether the pane receives keys.
func (m *Model) Focused() bool { return m.focused }

func (m *Model) focusActive() tea.Cmd {
	switch m.switcher.Active() {
	case editor.SlotBool:
		m.boolView.focused = true
	case editor.SlotNumber:
		return m.numberView.input.Focus()
	case editor.SlotString:
		return m.textView.input.Focus()
	case editor.SlotArray:
		m.arrayView.table.Focus()
	case editor.SlotObject:
		m.objectView.table.Focus()
	}
	return nil
}

func (m *Model) blurActive() {
	m.boolView.focused = false
	m.numberView.input.Blur()
	m.textView.input.Blur()
	m.arrayView.table.Blur()
	m.objectView.table.Blur()
}

// Update routes input to the visible view. Unbound panes ignore keys.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if !m.focused || !m.bound {
		return m, nil
	}
	var cmd tea.Cmd
	switch m.switcher.Active() {
	case editor.SlotBool:
		if k, ok := msg.(tea.KeyPressMsg); ok {
			m.boolView.update(k)
		}
	case editor.SlotNumber:
		m.numberView.input, cmd = m.numberView.input.Update(msg)
	case editor.SlotString:
		m.textView.input, cmd = m.textView.input.Update(msg)
	case editor.SlotArray:
		if k, ok := msg.(tea.KeyPressMsg); ok {
			cmd = m.arrayView.update(k)
		}
	case editor.SlotObject:
		if k, ok := msg.(tea.KeyPressMsg); ok {
			cmd = m.objectView.update(k)
		}
	}
	return m, cmd
}

// Title names the visible view for the pane border.
func (m *Model) Title() string {
	name := m.switcher.Active().String()
	if !m.bound {
		return "Editor (" + name + ", unbound)"
	}
	return "Editor (" + name + ")"
}

// View renders the selected node's label followed by the visible view.
func (m *Model) View() string {
	header := m.theme.Title().Render(m.label)
	if !m.bound {
		body := theme.Fg(m.theme.StatusColor).Render(m.message)
		if m.label == "" {
			return body
		}
		return header + "\n" + body
	}
	var body string
	switch m.switcher.Active() {
	case editor.SlotBool:
		body = m.boolView.view(m.theme)
	case editor.SlotNumber:
		body = m.numberView.view(m.theme)
	case editor.SlotString:
		body = m.textView.view(m.theme)
	case editor.SlotArray:
		body = m.arrayView.view()
	case editor.SlotObject:
		body = m.objectView.view()
	}
	return header + "\n" + body
}
