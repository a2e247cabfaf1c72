package ui

import tea "charm.land/bubbletea/v2"

// Pane is implemented by the tree, editor and raw panes. The root model
// sizes them on resize and cycles keyboard focus between them; each pane
// keeps its own concretely typed Update.
type Pane interface {
	// SetSize sets the inner width and height, excluding the border.
	SetSize(width, height int)

	// Focus is called when the pane gains focus.
	Focus() tea.Cmd

	// Blur is called when the pane loses focus.
	Blur()

	// Focused returns true if the pane currently has focus.
	Focused() bool

	// View renders the pane body.
	View() string
}

// PaneID names a pane in the focus cycle.
type PaneID int

const (
	TreePane PaneID = iota
	EditorPane
	RawPane
)

func (p PaneID) String() string {
	switch p {
	case TreePane:
		return "tree"
	case EditorPane:
		return "editor"
	case RawPane:
		return "raw"
	default:
		return "unknown"
	}
}
