package editors

import (
	"strconv"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
	"github.com/oakwood-commons/jsonexplorer/internal/tree"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/table"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/theme"
)

// Entry is one element or member listed by a CollectionView.
type Entry struct {
	Key   string
	Type  string
	Value string
	Ref   document.Ref
}

// OpenRefMsg asks the shell to select the tree node for Ref.
type OpenRefMsg struct {
	Ref document.Ref
}

// CollectionView lists the children of an array or an object.
type CollectionView struct {
	table *table.Model[Entry]
	kind  document.Kind
}

func collectionColumns(kind document.Kind) []table.Column {
	first := "INDEX"
	if kind == document.KindObject {
		first = "KEY"
	}
	return []table.Column{
		{Title: first, Width: 16},
		{Title: "TYPE", Width: 9},
		{Title: "VALUE", Width: 20},
	}
}

func newCollectionView(kind document.Kind) *CollectionView {
	toRow := func(e Entry) table.Row { return table.Row{e.Key, e.Type, e.Value} }
	return &CollectionView{
		table: table.NewModel(collectionColumns(kind), toRow),
		kind:  kind,
	}
}

// Entries builds the listing for a container value. Nested containers show
// their size in place of a value.
func Entries(v document.Value) []Entry {
	out := make([]Entry, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		child := v.Index(i)
		e := Entry{Ref: child.Ref(), Type: tree.TypeName(child.Kind())}
		if v.Kind() == document.KindObject {
			e.Key = v.Key(i)
		} else {
			e.Key = strconv.Itoa(i)
		}
		switch child.Kind() {
		case document.KindArray:
			e.Value = "[" + strconv.Itoa(child.Len()) + "]"
		case document.KindObject:
			e.Value = "{" + strconv.Itoa(child.Len()) + "}"
		default:
			_, e.Value = tree.FormatLeaf(child)
		}
		out = append(out, e)
	}
	return out
}

// SetValue pre-populates the listing from v.
func (c *CollectionView) SetValue(v document.Value) {
	c.table.SetRows(Entries(v))
}

// Entries returns the listed rows.
func (c *CollectionView) Entries() []Entry { return c.table.Rows() }

// Selected returns the row under the cursor.
func (c *CollectionView) Selected() *Entry { return c.table.SelectedRow() }

func (c *CollectionView) update(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "enter" {
		if e := c.Selected(); e != nil {
			ref := e.Ref
			return func() tea.Msg { return OpenRefMsg{Ref: ref} }
		}
		return nil
	}
	_, cmd := c.table.Update(msg)
	return cmd
}

func (c *CollectionView) applyTheme(th theme.Theme) {
	c.table.SetNoColor(th.NoColor)
	c.table.SetColors(th.Accent, th.SelectedFG, th.SelectedBG)
}

func (c *CollectionView) view() string {
	if len(c.table.Rows()) == 0 {
		if c.kind == document.KindObject {
			return "(empty object)"
		}
		return "(empty array)"
	}
	return c.table.View()
}
