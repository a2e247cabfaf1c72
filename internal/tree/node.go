// Package tree projects a parsed document into the display tree shown by
// the viewer. Every node mirrors exactly one document value and keeps a
// handle to it.
package tree

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/oakwood-commons/jsonexplorer/internal/document"
)

// ErrUnsupportedRoot is returned when the document root is not an array
// or an object.
var ErrUnsupportedRoot = errors.New("unsupported root value")

// RootKey labels the synthetic top-level node.
const RootKey = "root"

// Node is one entry of the display tree.
type Node struct {
	Label     string
	Secondary string // leaf value text; empty for containers
	Kind      document.Kind
	Ref       document.Ref
	Children  []*Node
}

// IsLeaf reports whether the node has no children and stands for a scalar.
func (n *Node) IsLeaf() bool { return !n.Kind.IsContainer() }

// Walk visits n and its descendants depth-first in display order. Returning
// false from fn skips the children of the node just visited.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of nodes in the subtree, n included.
func (n *Node) Count() int {
	total := 0
	n.Walk(func(*Node, int) bool { total++; return true })
	return total
}

// Leaves returns the number of scalar nodes in the subtree.
func (n *Node) Leaves() int {
	total := 0
	n.Walk(func(node *Node, _ int) bool {
		if node.IsLeaf() {
			total++
		}
		return true
	})
	return total
}

// Project builds the display tree for doc. The root must be an array or an
// object; any other root yields ErrUnsupportedRoot and no tree.
func Project(doc *document.Document) (*Node, error) {
	root := doc.Root()
	if !root.Kind().IsContainer() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedRoot, TypeName(root.Kind()))
	}
	return ProjectValue(root, RootKey), nil
}

// ProjectValue builds the subtree for v. key prefixes the label; children
// receive "<index> : " or "<member> : " as theirs.
func ProjectValue(v document.Value, key string) *Node {
	n := &Node{Kind: v.Kind(), Ref: v.Ref()}

	switch v.Kind() {
	case document.KindArray:
		count := v.Len()
		n.Label = key + "[" + strconv.Itoa(count) + "]"
		n.Children = make([]*Node, count)
		for i := 0; i < count; i++ {
			n.Children[i] = ProjectValue(v.Index(i), strconv.Itoa(i)+" : ")
		}
	case document.KindObject:
		count := v.Len()
		n.Label = key + "{" + strconv.Itoa(count) + "}"
		n.Children = make([]*Node, count)
		for i := 0; i < count; i++ {
			n.Children[i] = ProjectValue(v.Index(i), v.Key(i)+" : ")
		}
	case document.KindNull, document.KindBool, document.KindNumber, document.KindString,
		document.KindUndefined, document.KindInvalid:
		typeName, display := FormatLeaf(v)
		n.Label = key + "(" + typeName + ")"
		n.Secondary = display
	default:
		typeName, display := FormatLeaf(v)
		n.Label = key + "(" + typeName + ")"
		n.Secondary = display
	}
	return n
}
