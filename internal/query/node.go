// Package query is a small, syntax-agnostic selection API over a concrete
// syntax tree, modelled on the query-ast style of chaining child lookups.
package query

import (
	"strings"

	"bennypowers.dev/sass2ts/internal/position"
)

// Node is one element of a concrete syntax tree
type Node struct {
	// Type is the node kind, e.g. "declaration" or "variable"
	Type string
	// Content is the semantic text of a leaf: "DDEEFF" for the color #DDEEFF
	Content string
	// Text is the literal source text the node spans
	Text     string
	Children []*Node
	Parent   *Node
	Range    position.Range
}

// NewNode creates an interior node and adopts its children
func NewNode(typ string, children ...*Node) *Node {
	n := &Node{Type: typ}
	n.Append(children...)
	return n
}

// NewLeaf creates a node with content and no children
func NewLeaf(typ, content, text string) *Node {
	return &Node{Type: typ, Content: content, Text: text}
}

// Append adds children to n and sets their parent
func (n *Node) Append(children ...*Node) {
	for _, c := range children {
		c.Parent = n
		n.Children = append(n.Children, c)
	}
}

// IsLeaf reports whether n has no children
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Value concatenates the content of every leaf under n
func (n *Node) Value() string {
	if n.IsLeaf() {
		return n.Content
	}
	var b strings.Builder
	n.writeValue(&b)
	return b.String()
}

func (n *Node) writeValue(b *strings.Builder) {
	if n.IsLeaf() {
		b.WriteString(n.Content)
		return
	}
	for _, c := range n.Children {
		c.writeValue(b)
	}
}

// Walk visits n and its descendants in document order until fn returns false
func (n *Node) Walk(fn func(*Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// Prune removes, in place, every descendant of root whose type is listed.
// Removed nodes take their subtrees with them.
func Prune(root *Node, types ...string) {
	drop := make(map[string]bool, len(types))
	for _, t := range types {
		drop[t] = true
	}
	prune(root, drop)
}

func prune(n *Node, drop map[string]bool) {
	kept := n.Children[:0]
	for _, c := range n.Children {
		if drop[c.Type] {
			c.Parent = nil
			continue
		}
		prune(c, drop)
		kept = append(kept, c)
	}
	// clear the tail so dropped nodes can be collected
	for i := len(kept); i < len(n.Children); i++ {
		n.Children[i] = nil
	}
	n.Children = kept
}
