package query

// Selection is an ordered set of nodes. Every operation returns a new
// Selection; the tree itself is never modified.
type Selection struct {
	nodes []*Node
}

// Root starts a traversal at n, which may be any inner node
func Root(n *Node) Selection {
	if n == nil {
		return Selection{}
	}
	return Selection{nodes: []*Node{n}}
}

// Of wraps nodes in a Selection
func Of(nodes ...*Node) Selection {
	return Selection{nodes: nodes}
}

// Children returns the direct children of every selected node. When types
// are given, only children of those types are kept.
func (s Selection) Children(types ...string) Selection {
	var out []*Node
	for _, n := range s.nodes {
		for _, c := range n.Children {
			if matches(c, types) {
				out = append(out, c)
			}
		}
	}
	return Selection{nodes: out}
}

// Find returns every descendant of the selected nodes with the given type,
// in document order. The selected nodes themselves are not candidates.
func (s Selection) Find(typ string) Selection {
	var out []*Node
	for _, n := range s.nodes {
		for _, c := range n.Children {
			c.Walk(func(d *Node) bool {
				if d.Type == typ {
					out = append(out, d)
				}
				return true
			})
		}
	}
	return Selection{nodes: out}
}

// Parent returns the distinct parents of the selected nodes
func (s Selection) Parent() Selection {
	var out []*Node
	seen := make(map[*Node]bool)
	for _, n := range s.nodes {
		if n.Parent == nil || seen[n.Parent] {
			continue
		}
		seen[n.Parent] = true
		out = append(out, n.Parent)
	}
	return Selection{nodes: out}
}

// Length returns the number of selected nodes
func (s Selection) Length() int {
	return len(s.nodes)
}

// First narrows the selection to its first node
func (s Selection) First() Selection {
	return s.At(0)
}

// At narrows the selection to the node at index i
func (s Selection) At(i int) Selection {
	if n := s.Get(i); n != nil {
		return Selection{nodes: []*Node{n}}
	}
	return Selection{}
}

// Get returns the node at index i, or nil when out of range
func (s Selection) Get(i int) *Node {
	if i < 0 || i >= len(s.nodes) {
		return nil
	}
	return s.nodes[i]
}

// Nodes returns the selected nodes
func (s Selection) Nodes() []*Node {
	return append([]*Node(nil), s.nodes...)
}

// Value returns the leaf content of the first node, or "" when empty
func (s Selection) Value() string {
	if n := s.Get(0); n != nil {
		return n.Value()
	}
	return ""
}

// Text returns the source text of the first node, or "" when empty
func (s Selection) Text() string {
	if n := s.Get(0); n != nil {
		return n.Text
	}
	return ""
}

// Texts returns the source text of every selected node
func (s Selection) Texts() []string {
	return Map(s, func(n *Node) string { return n.Text })
}

// Map applies fn to every selected node
func Map[T any](s Selection, fn func(*Node) T) []T {
	out := make([]T, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, fn(n))
	}
	return out
}

func matches(n *Node, types []string) bool {
	if len(types) == 0 {
		return true
	}
	for _, t := range types {
		if n.Type == t {
			return true
		}
	}
	return false
}
