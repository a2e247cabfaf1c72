package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
)

func mustParse(t *testing.T, input string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(input))
	require.NoError(t, err)
	return doc
}

func countScalars(v document.Value) int {
	if !v.Kind().IsContainer() {
		return 1
	}
	total := 0
	for i := 0; i < v.Len(); i++ {
		total += countScalars(v.Index(i))
	}
	return total
}

type shape struct {
	Label     string
	Secondary string
	Children  []shape
}

func shapeOf(n *Node) shape {
	s := shape{Label: n.Label, Secondary: n.Secondary}
	for _, c := range n.Children {
		s.Children = append(s.Children, shapeOf(c))
	}
	return s
}

func TestFormatLeaf_Table(t *testing.T) {
	doc := mustParse(t, `[true, false, 3.5, "hi", null]`)
	root := doc.Root()

	cases := []struct {
		idx      int
		typeName string
		display  string
	}{
		{0, "Bool", "True"},
		{1, "Bool", "False"},
		{2, "Double", "3.5"},
		{3, "String", `"hi"`},
		{4, "Null", "Null"},
	}
	for _, tc := range cases {
		typeName, display := FormatLeaf(root.Index(tc.idx))
		assert.Equal(t, tc.typeName, typeName)
		assert.Equal(t, tc.display, display)
	}
}

func TestFormatLeaf_UndefinedAndUnknown(t *testing.T) {
	b := document.NewBuilder()
	doc := b.Build(b.Array(b.Undefined()))

	typeName, display := FormatLeaf(doc.Root().Index(0))
	assert.Equal(t, "Undefined", typeName)
	assert.Equal(t, "Undefined", display)

	typeName, display = FormatLeaf(document.Value{})
	assert.Equal(t, "unknown", typeName)
	assert.Equal(t, "unknown", display)

	typeName, display = FormatLeaf(doc.Root())
	assert.Equal(t, "unknown", typeName)
	assert.Equal(t, "unknown", display)
}

func TestFormatLeaf_StringIsNotEscaped(t *testing.T) {
	doc := mustParse(t, `["say \"hi\""]`)
	_, display := FormatLeaf(doc.Root().Index(0))
	assert.Equal(t, `"say "hi""`, display)
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		1:         "1",
		-2:        "-2",
		3.5:       "3.5",
		0.1:       "0.1",
		1000000:   "1000000",
		123456789: "123456789",
		1e21:      "1e+21",
		1.5e-7:    "1.5e-07",
		0.000001:  "0.000001",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatNumber(in), "input %v", in)
	}
}

func TestProject_RootLabels(t *testing.T) {
	obj, err := Project(mustParse(t, `{"a":1,"b":2}`))
	require.NoError(t, err)
	assert.Equal(t, "root{2}", obj.Label)
	assert.Len(t, obj.Children, 2)

	arr, err := Project(mustParse(t, `[1,2,3]`))
	require.NoError(t, err)
	assert.Equal(t, "root[3]", arr.Label)
	assert.Len(t, arr.Children, 3)
}

func TestProject_ScalarRootRejected(t *testing.T) {
	for _, input := range []string{`42`, `"hello"`, `null`, `true`} {
		root, err := Project(mustParse(t, input))
		assert.ErrorIs(t, err, ErrUnsupportedRoot, input)
		assert.Nil(t, root)
	}
}

func TestProject_ArrayOrderAndIndexLabels(t *testing.T) {
	root, err := Project(mustParse(t, `["a","b","c","d"]`))
	require.NoError(t, err)

	require.Len(t, root.Children, 4)
	for i, want := range []string{`"a"`, `"b"`, `"c"`, `"d"`} {
		child := root.Children[i]
		assert.Equal(t, []string{"0", "1", "2", "3"}[i]+" : (String)", child.Label)
		assert.Equal(t, want, child.Secondary)
		assert.Empty(t, child.Children)
	}
}

func TestProject_ObjectOrderIsSourceOrder(t *testing.T) {
	root, err := Project(mustParse(t, `{"zeta":true,"alpha":[1],"mid":{}}`))
	require.NoError(t, err)

	require.Len(t, root.Children, 3)
	assert.Equal(t, "zeta : (Bool)", root.Children[0].Label)
	assert.Equal(t, "True", root.Children[0].Secondary)
	assert.Equal(t, "alpha : [1]", root.Children[1].Label)
	assert.Equal(t, "mid : {0}", root.Children[2].Label)
	assert.Equal(t, "0 : (Double)", root.Children[1].Children[0].Label)
	assert.Empty(t, root.Children[2].Children)
}

func TestProject_LeafCountEqualsScalarCount(t *testing.T) {
	inputs := []string{
		`[]`,
		`{}`,
		`[1,[2,[3,[4]]]]`,
		`{"a":{"b":{"c":[true,false,null,"x",1.25]}},"d":[[],{}],"e":"f"}`,
		`[{"k":1},{"k":2},{"k":[null,null]}]`,
	}
	for _, input := range inputs {
		doc := mustParse(t, input)
		root, err := Project(doc)
		require.NoError(t, err)
		assert.Equal(t, countScalars(doc.Root()), root.Leaves(), input)
		assert.Equal(t, doc.Len(), root.Count(), input)
	}
}

func TestProject_ChildCountMatchesContainer(t *testing.T) {
	doc := mustParse(t, `{"a":[1,2,3],"b":{"x":1,"y":2},"c":[]}`)
	root, err := Project(doc)
	require.NoError(t, err)

	root.Walk(func(n *Node, _ int) bool {
		v, err := doc.Resolve(n.Ref)
		require.NoError(t, err)
		assert.Equal(t, v.Kind(), n.Kind)
		if n.IsLeaf() {
			assert.Empty(t, n.Children)
		} else {
			assert.Len(t, n.Children, v.Len())
		}
		return true
	})
}

func TestProject_Idempotent(t *testing.T) {
	doc := mustParse(t, `{"list":[1,"two",{"three":3}],"flag":false,"none":null}`)
	first, err := Project(doc)
	require.NoError(t, err)
	second, err := Project(doc)
	require.NoError(t, err)

	assert.Equal(t, shapeOf(first), shapeOf(second))
	assert.NotSame(t, first, second)
}

func TestWalk_SkipChildren(t *testing.T) {
	root, err := Project(mustParse(t, `{"a":[1,2],"b":3}`))
	require.NoError(t, err)

	var labels []string
	root.Walk(func(n *Node, depth int) bool {
		labels = append(labels, n.Label)
		return depth == 0
	})
	assert.Equal(t, []string{"root{2}", "a : [2]", "b : (Double)"}, labels)
}

func TestFlatten_RespectsExpansion(t *testing.T) {
	root, err := Project(mustParse(t, `{"a":[1,2],"b":{"c":true}}`))
	require.NoError(t, err)

	collapsed := Flatten(root, func(n *Node) bool { return n == root })
	require.Len(t, collapsed, 3)
	assert.Equal(t, -1, collapsed[0].Parent)
	assert.True(t, collapsed[0].Expanded)
	assert.False(t, collapsed[1].Expanded)
	assert.Equal(t, 0, collapsed[2].Parent)
	assert.True(t, collapsed[2].Last)

	all := Flatten(root, func(*Node) bool { return true })
	require.Len(t, all, root.Count())
	labels := make([]string, len(all))
	for i, r := range all {
		labels[i] = r.Node.Label
	}
	assert.Equal(t, []string{
		"root{2}", "a : [2]", "0 : (Double)", "1 : (Double)", "b : {1}", "c : (Bool)",
	}, labels)
	assert.Equal(t, 1, all[2].Parent)
	assert.Equal(t, 2, all[2].Depth)
	assert.Equal(t, []bool{true}, all[2].Guides)
	assert.Equal(t, []bool{false}, all[5].Guides)
}

func TestFlatten_Nil(t *testing.T) {
	assert.Nil(t, Flatten(nil, func(*Node) bool { return true }))
}
