package ui

import (
	"charm.land/bubbles/v2/key"

	"github.com/oakwood-commons/jsonexplorer/internal/ui/treeview"
)

// KeyMap holds the bindings handled by the root model before a key reaches
// the focused pane.
type KeyMap struct {
	Quit      key.Binding
	NextPane  key.Binding
	PrevPane  key.Binding
	Open      key.Binding
	Reload    key.Binding
	ToggleRaw key.Binding
	Copy      key.Binding
	CopyPath  key.Binding
	Goto      key.Binding
	Help      key.Binding
	Cancel    key.Binding
	Submit    key.Binding

	Tree treeview.KeyMap
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		NextPane: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevPane: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		ToggleRaw: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "raw pane"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy value"),
		),
		CopyPath: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "copy path"),
		),
		Goto: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "go to path"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Tree: treeview.DefaultKeyMap(),
	}
}

// ShortHelp is the one-line footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tree.Toggle, k.NextPane, k.Open, k.Copy, k.Help, k.Quit}
}

// FullHelp is the help overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	groups := k.Tree.FullHelp()
	return append(groups,
		[]key.Binding{k.NextPane, k.PrevPane, k.ToggleRaw, k.Goto},
		[]key.Binding{k.Copy, k.CopyPath},
		[]key.Binding{k.Open, k.Reload, k.Help, k.Quit},
	)
}

// promptKeys is shown while a prompt has focus.
type promptKeys struct {
	KeyMap
}

func (k promptKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k promptKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
