package query_test

import (
	"strings"
	"testing"

	"bennypowers.dev/sass2ts/internal/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func variable(name string) *query.Node {
	n := query.NewNode("variable", query.NewLeaf("ident", name, name))
	n.Text = "$" + name
	return n
}

// $desktop: 960px + (2 * $gap)
func declaration() *query.Node {
	dim := query.NewNode("dimension",
		query.NewLeaf("number", "960", "960"),
		query.NewLeaf("ident", "px", "px"))
	dim.Text = "960px"

	parens := query.NewNode("parentheses",
		query.NewLeaf("number", "2", "2"),
		query.NewLeaf("space", " ", " "),
		query.NewLeaf("operator", "*", "*"),
		query.NewLeaf("space", " ", " "),
		variable("gap"))
	parens.Text = "(2 * $gap)"

	value := query.NewNode("value",
		dim,
		query.NewLeaf("space", " ", " "),
		query.NewLeaf("operator", "+", "+"),
		query.NewLeaf("space", " ", " "),
		parens)

	return query.NewNode("stylesheet",
		query.NewNode("declaration",
			query.NewNode("property", variable("desktop")),
			query.NewLeaf("propertyDelimiter", ":", ":"),
			query.NewLeaf("space", " ", " "),
			value,
			query.NewLeaf("singlelineComment", " note", "// note")))
}

func TestSelectionChildren(t *testing.T) {
	root := query.Root(declaration())
	decl := root.Children("declaration")
	require.Equal(t, 1, decl.Length())

	t.Run("filtered by type", func(t *testing.T) {
		value := decl.Children("value")
		assert.Equal(t, 1, value.Children("dimension").Length())
		assert.Equal(t, 2, value.Children("space").Length())
		assert.Equal(t, 0, value.Children("number").Length())
	})

	t.Run("unfiltered", func(t *testing.T) {
		assert.Equal(t, 5, decl.Children().Length())
	})

	t.Run("chained across every selected node", func(t *testing.T) {
		// variables nested one level below the value
		nested := decl.Children("value").Children().Children("variable")
		assert.Equal(t, []string{"$gap"}, nested.Texts())
	})

	t.Run("variable name", func(t *testing.T) {
		name := decl.Children("property").Children("variable").Children("ident").First().Value()
		assert.Equal(t, "desktop", name)
	})
}

func TestSelectionValueAndText(t *testing.T) {
	value := query.Root(declaration()).Children("declaration").Children("value")

	assert.Equal(t, "960px", value.Children("dimension").Value())
	assert.Equal(t, "960px", value.Children("dimension").Text())
	assert.Equal(t, "gap", value.Find("variable").Value())
	assert.Equal(t, "", value.Children("color").Value())
	assert.Equal(t, "", value.Children("color").Text())
}

func TestSelectionNavigation(t *testing.T) {
	root := declaration()
	props := query.Root(root).Find("property")
	require.Equal(t, 1, props.Length())

	parent := props.Parent()
	assert.Equal(t, "declaration", parent.Get(0).Type)

	t.Run("parent is distinct", func(t *testing.T) {
		spaces := parent.Children("value").Children("space")
		assert.Equal(t, 1, spaces.Parent().Length())
	})

	t.Run("out of range", func(t *testing.T) {
		assert.Nil(t, props.Get(3))
		assert.Equal(t, 0, props.At(-1).Length())
		assert.Equal(t, 0, query.Root(nil).Length())
	})

	t.Run("re-rooting", func(t *testing.T) {
		view := query.Root(parent.Get(0))
		assert.Equal(t, 1, view.Children("value").Length())
	})

	t.Run("map", func(t *testing.T) {
		types := query.Map(query.Root(root).Find("operator"), func(n *query.Node) string {
			return strings.ToUpper(n.Content)
		})
		assert.Equal(t, []string{"+", "*"}, types)
	})
}

func TestPrune(t *testing.T) {
	root := declaration()
	query.Prune(root, "singlelineComment", "propertyDelimiter")

	decl := query.Root(root).Children("declaration")
	assert.Equal(t, 0, decl.Children("singlelineComment").Length())
	assert.Equal(t, 0, decl.Children("propertyDelimiter").Length())
	assert.Equal(t, 3, decl.Children().Length())

	t.Run("prunes at any depth", func(t *testing.T) {
		query.Prune(root, "operator")
		assert.Equal(t, 0, query.Root(root).Find("operator").Length())
		assert.Equal(t, 1, query.Root(root).Find("parentheses").Length())
	})
}
