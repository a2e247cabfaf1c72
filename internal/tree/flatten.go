package tree

// Row is one visible line of the tree pane.
type Row struct {
	Node     *Node
	Parent   int // row index of the parent, -1 for the root
	Depth    int
	Expanded bool
	// Last reports whether the node is the final child of its parent.
	Last bool
	// Guides holds, per ancestor depth (excluding the root), whether that
	// ancestor still has siblings below it. Used to draw connector lines.
	Guides []bool
}

// Flatten lists the rows visible when the containers for which expanded
// returns true are open. The root row is always present.
func Flatten(root *Node, expanded func(*Node) bool) []Row {
	if root == nil {
		return nil
	}
	rows := make([]Row, 0, 64)
	var visit func(n *Node, parent, depth int, last bool, guides []bool)
	visit = func(n *Node, parent, depth int, last bool, guides []bool) {
		open := len(n.Children) > 0 && expanded(n)
		rows = append(rows, Row{
			Node:     n,
			Parent:   parent,
			Depth:    depth,
			Expanded: open,
			Last:     last,
			Guides:   guides,
		})
		if !open {
			return
		}
		self := len(rows) - 1
		var childGuides []bool
		if depth > 0 {
			childGuides = make([]bool, len(guides)+1)
			copy(childGuides, guides)
			childGuides[len(guides)] = !last
		}
		for i, c := range n.Children {
			visit(c, self, depth+1, i == len(n.Children)-1, childGuides)
		}
	}
	visit(root, -1, 0, true, nil)
	return rows
}
