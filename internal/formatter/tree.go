// Package formatter renders the display tree as plain text for
// non-interactive output.
package formatter

import (
	"github.com/mattn/go-runewidth"
	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/jsonexplorer/internal/tree"
)

// indentWidth is the number of columns treeprint spends per nesting level.
const indentWidth = 4

// TreeOptions controls tree output formatting.
type TreeOptions struct {
	// NoValues hides leaf values (structure only).
	NoValues bool
	// MaxDepth limits tree depth (0 = unlimited). Containers at the limit
	// get a single "..." child.
	MaxDepth int
	// MaxWidth truncates each line to this many terminal columns
	// (0 = no truncation). Wide runes count double.
	MaxWidth int
}

// FormatTree renders root and its descendants as an ASCII tree. A leaf root
// prints with its value. A nil root renders as the empty string.
func FormatTree(root *tree.Node, opts TreeOptions) string {
	if root == nil {
		return ""
	}
	label := root.Label
	if root.IsLeaf() {
		label = leafText(root, opts)
	}
	t := treeprint.NewWithRoot(fit(label, opts.MaxWidth))
	buildTree(t, root, opts, 1)
	return t.String()
}

func buildTree(branch treeprint.Tree, n *tree.Node, opts TreeOptions, depth int) {
	if len(n.Children) == 0 {
		return
	}
	if opts.MaxDepth > 0 && depth > opts.MaxDepth {
		branch.AddNode("...")
		return
	}
	width := 0
	if opts.MaxWidth > 0 {
		width = opts.MaxWidth - depth*indentWidth
		if width < 1 {
			width = 1
		}
	}
	for _, c := range n.Children {
		if c.IsLeaf() {
			branch.AddNode(fit(leafText(c, opts), width))
			continue
		}
		child := branch.AddBranch(fit(c.Label, width))
		buildTree(child, c, opts, depth+1)
	}
}

func leafText(n *tree.Node, opts TreeOptions) string {
	if opts.NoValues || n.Secondary == "" {
		return n.Label
	}
	return n.Label + " " + n.Secondary
}

// fit truncates s to width columns; width <= 0 leaves s alone.
func fit(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
