package collections_test

import (
	"testing"

	"bennypowers.dev/sass2ts/internal/collections"
	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	t.Run("duplicates collapse", func(t *testing.T) {
		s := collections.NewSet("a", "b", "a")
		assert.Len(t, s, 2)
		assert.True(t, s.Has("a"))
		assert.False(t, s.Has("c"))
	})

	t.Run("add to empty set", func(t *testing.T) {
		s := collections.NewSet[int]()
		s.Add(1, 2)
		assert.True(t, s.Has(2))
	})
}

func TestOrderedSet(t *testing.T) {
	t.Run("keeps first-seen order", func(t *testing.T) {
		s := collections.NewOrderedSet("evaluate", "color", "evaluate", "findColor")
		assert.Equal(t, []string{"evaluate", "color", "findColor"}, s.Members())
		assert.Equal(t, 3, s.Len())
	})

	t.Run("add reports new members", func(t *testing.T) {
		s := collections.NewOrderedSet("a")
		assert.Equal(t, 1, s.Add("a", "b", "b"))
		assert.Equal(t, []string{"a", "b"}, s.Members())
	})

	t.Run("zero value is usable", func(t *testing.T) {
		var s collections.OrderedSet[string]
		assert.False(t, s.Has("x"))
		assert.Equal(t, -1, s.IndexOf("x"))
		s.Add("x")
		assert.True(t, s.Has("x"))
		assert.Equal(t, 0, s.IndexOf("x"))
	})

	t.Run("members is a copy", func(t *testing.T) {
		s := collections.NewOrderedSet("a", "b")
		m := s.Members()
		m[0] = "z"
		assert.Equal(t, []string{"a", "b"}, s.Members())
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "[a b]", collections.NewOrderedSet("a", "b").String())
		assert.Equal(t, "[]", collections.NewOrderedSet[string]().String())
	})
}

func TestUnique(t *testing.T) {
	assert.Equal(t, []string{"white", "black", "light"},
		collections.Unique([]string{"white", "black", "black", "white", "light"}))
	assert.Empty(t, collections.Unique[string](nil))
}
