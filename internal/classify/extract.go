package classify

import (
	"bennypowers.dev/sass2ts/internal/parser/sass"
	"bennypowers.dev/sass2ts/internal/query"
)

// Declarations returns one view per property in the tree, in source order.
// Each view is rooted at the property's parent so that the variable name and
// the value expression can be reached together.
func Declarations(root *query.Node) []query.Selection {
	props := query.Root(root).Find(sass.TypeProperty)
	return query.Map(props, func(n *query.Node) query.Selection {
		return query.Root(n.Parent)
	})
}

func valueOf(decl query.Selection) query.Selection {
	return decl.Children(sass.TypeValue)
}

func variableName(decl query.Selection) string {
	return decl.
		Children(sass.TypeProperty).
		Children(sass.TypeVariable).
		Children(sass.TypeIdent).
		First().
		Value()
}

func firstValueOf(decl query.Selection, typ string) string {
	return valueOf(decl).Children(typ).First().Value()
}

// fragments splits the top-level value nodes on spaces. A comma starts a
// fragment of its own; nested groups and calls stay whole.
// e.g. 0 8px 8px rgba($black, 0.1) -> [0, 8px, 8px, rgba($black, 0.1)]
func fragments(nodes []*query.Node) []string {
	var groups []string
	open := false
	for _, n := range nodes {
		switch {
		case n.Type == sass.TypeSpace:
			open = false
		case n.Type == sass.TypeOperator && n.Text == ",":
			groups = append(groups, n.Text)
			open = true
		case open:
			groups[len(groups)-1] += n.Text
		default:
			groups = append(groups, n.Text)
			open = true
		}
	}
	return groups
}
