package treeview

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
	"github.com/oakwood-commons/jsonexplorer/internal/tree"
	"github.com/oakwood-commons/jsonexplorer/internal/ui/theme"
)

const sample = `{"name":"svc","ports":[80,443],"meta":{"owner":{"team":"core"},"tags":[]}}`

func newPane(t *testing.T, input string, depth int) (*Model, *document.Document) {
	t.Helper()
	doc, err := document.Parse([]byte(input))
	require.NoError(t, err)
	root, err := tree.Project(doc)
	require.NoError(t, err)

	m := New(theme.Plain())
	m.SetSize(60, 20)
	m.SetRoot(root, depth)
	m.Focus()
	return m, doc
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyPressMsg
		switch k {
		case "enter":
			msg = tea.KeyPressMsg{Code: tea.KeyEnter}
		case "space":
			msg = tea.KeyPressMsg{Code: ' ', Text: " "}
		case "down":
			msg = tea.KeyPressMsg{Code: tea.KeyDown}
		case "left":
			msg = tea.KeyPressMsg{Code: tea.KeyLeft}
		case "right":
			msg = tea.KeyPressMsg{Code: tea.KeyRight}
		default:
			r := []rune(k)[0]
			msg = tea.KeyPressMsg{Code: r, Text: k}
		}
		m.Update(msg)
	}
}

func plainView(m *Model) string {
	return ansi.Strip(m.View())
}

func labels(m *Model) []string {
	out := make([]string, 0, len(m.Rows()))
	for _, r := range m.Rows() {
		out = append(out, r.Node.Label)
	}
	return out
}

func TestSetRoot_SelectsRootAndOpensDepth(t *testing.T) {
	m, _ := newPane(t, sample, 1)

	require.NotNil(t, m.Selected())
	assert.Equal(t, "root{3}", m.Selected().Label)
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, []string{"root{3}", "name : (String)", "ports : [2]", "meta : {2}"}, labels(m))

	m.SetRoot(m.Root(), 2)
	assert.Equal(t, []string{
		"root{3}",
		"name : (String)",
		"ports : [2]", "0 : (Double)", "1 : (Double)",
		"meta : {2}", "owner : {1}", "tags : [0]",
	}, labels(m))
}

func TestSetRoot_DepthZeroStillShowsChildren(t *testing.T) {
	m, _ := newPane(t, sample, 0)
	assert.Len(t, m.Rows(), 4)
	assert.True(t, m.IsExpanded(m.Root()))
}

func TestNavigation_MovesCursorWithinBounds(t *testing.T) {
	m, _ := newPane(t, sample, 1)

	press(m, "j", "j")
	assert.Equal(t, "ports : [2]", m.Selected().Label)

	press(m, "G")
	assert.Equal(t, "meta : {2}", m.Selected().Label)
	press(m, "j")
	assert.Equal(t, 3, m.Cursor(), "cursor stays on the last row")

	press(m, "g")
	assert.Equal(t, 0, m.Cursor())
	press(m, "k")
	assert.Equal(t, 0, m.Cursor())
}

func TestToggle_ExpandsAndCollapses(t *testing.T) {
	m, _ := newPane(t, sample, 1)

	press(m, "j", "j", "enter")
	assert.Len(t, m.Rows(), 6)
	assert.Equal(t, "ports : [2]", m.Selected().Label, "selection stays on the toggled node")

	press(m, "space")
	assert.Len(t, m.Rows(), 4)
}

func TestRightDescendsLeftAscends(t *testing.T) {
	m, _ := newPane(t, sample, 1)

	press(m, "G", "right")
	assert.True(t, m.IsExpanded(m.Selected()))
	press(m, "right")
	assert.Equal(t, "owner : {1}", m.Selected().Label)

	press(m, "left")
	assert.Equal(t, "meta : {2}", m.Selected().Label, "left on a closed node moves to its parent")
	press(m, "left")
	assert.False(t, m.IsExpanded(m.Selected()))
	assert.Equal(t, "meta : {2}", m.Selected().Label)
}

func TestCollapseHidingSelection_SelectsCollapsedNode(t *testing.T) {
	m, _ := newPane(t, sample, 3)
	press(m, "G")
	assert.Equal(t, "tags : [0]", m.Selected().Label)

	meta := m.Rows()[m.Rows()[m.Cursor()].Parent].Node
	m.Collapse(meta)
	assert.Same(t, meta, m.Selected())
}

func TestCollapseRootIsIgnored(t *testing.T) {
	m, _ := newPane(t, sample, 1)
	press(m, "h")
	assert.Len(t, m.Rows(), 4)
	m.Collapse(m.Root())
	assert.Len(t, m.Rows(), 4)
}

func TestExpandAllAndCollapseAll(t *testing.T) {
	m, _ := newPane(t, sample, 1)

	press(m, "e")
	assert.Len(t, m.Rows(), m.Root().Count())

	press(m, "j", "c")
	assert.Len(t, m.Rows(), 4)
	assert.Equal(t, 0, m.Cursor())
}

func TestDigitExpandsToDepth(t *testing.T) {
	m, _ := newPane(t, sample, 1)
	press(m, "3")
	assert.Contains(t, labels(m), "team : (String)")
	press(m, "1")
	assert.Len(t, m.Rows(), 4)
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	m, _ := newPane(t, sample, 1)
	m.Blur()
	assert.False(t, m.Focused())
	press(m, "j")
	assert.Equal(t, 0, m.Cursor())
}

func TestSelectRef_OpensAncestors(t *testing.T) {
	m, doc := newPane(t, sample, 0)

	meta, ok := doc.Root().Member("meta")
	require.True(t, ok)
	owner, ok := meta.Member("owner")
	require.True(t, ok)
	team, ok := owner.Member("team")
	require.True(t, ok)

	require.True(t, m.SelectRef(team.Ref()))
	assert.Equal(t, "team : (String)", m.Selected().Label)
	assert.Equal(t, `"core"`, m.Selected().Secondary)

	other, err := document.Parse([]byte(sample))
	require.NoError(t, err)
	assert.False(t, m.SelectRef(other.Root().Ref()), "refs from another document never match")
	assert.False(t, m.Select(&tree.Node{}))
}

func TestTrail_RootFirst(t *testing.T) {
	m, doc := newPane(t, sample, 0)
	assert.Equal(t, []*tree.Node{m.Root()}, m.Trail())

	meta, _ := doc.Root().Member("meta")
	owner, _ := meta.Member("owner")
	require.True(t, m.SelectRef(owner.Ref()))

	var got []string
	for _, n := range m.Trail() {
		got = append(got, n.Label)
	}
	assert.Equal(t, []string{"root{3}", "meta : {2}", "owner : {1}"}, got)

	assert.Empty(t, New(theme.Plain()).Trail())
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	m, _ := newPane(t, `[1,2,3,4,5,6,7,8,9,10,11,12]`, 1)
	m.SetSize(30, 4)

	press(m, "G")
	view := plainView(m)
	lines := strings.Split(view, "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[3], "11 : (Double)")
	assert.NotContains(t, view, "root[12]")
}

func TestView_RendersGuidesAndValues(t *testing.T) {
	m, _ := newPane(t, sample, 2)
	view := plainView(m)

	assert.Contains(t, view, "▾ root{3}")
	assert.Contains(t, view, `├─  name : (String)  "svc"`)
	assert.Contains(t, view, "│  ├─  0 : (Double)  80")
	assert.Contains(t, view, "└─▾ meta : {2}")
	assert.Contains(t, view, "   └─  tags : [0]")
}

func TestView_TruncatesToWidth(t *testing.T) {
	m, _ := newPane(t, `{"k":"a very long string value that will not fit"}`, 1)
	m.SetSize(20, 5)
	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 20)
	}
	assert.Contains(t, plainView(m), "…")
}

func TestView_Empty(t *testing.T) {
	m := New(theme.Plain())
	assert.Equal(t, "No document loaded", plainView(m))
	assert.Nil(t, m.Selected())
	m.Focus()
	m.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})
	assert.Equal(t, 0, m.Cursor())
}
