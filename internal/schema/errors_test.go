package schema_test

import (
	"errors"
	"fmt"
	"testing"

	"bennypowers.dev/sass2ts/internal/schema"
	"github.com/stretchr/testify/assert"
)

func TestSchemaErrors(t *testing.T) {
	t.Run("CircularReferenceError", func(t *testing.T) {
		err := schema.NewCircularReferenceError("theme.sass", []string{"a", "b", "a"})

		assert.Contains(t, err.Error(), "theme.sass")
		assert.Contains(t, err.Error(), "a → b → a")
		assert.True(t, errors.Is(err, schema.ErrCircularReference))
	})

	t.Run("CircularReferenceError without file", func(t *testing.T) {
		err := schema.NewCircularReferenceError("", []string{"x", "x"})
		assert.NotContains(t, err.Error(), " in ")
	})

	t.Run("DanglingReferenceError", func(t *testing.T) {
		err := schema.NewDanglingReferenceError("link", "primry", []string{"primary"})

		assert.Contains(t, err.Error(), "$link references undeclared variable $primry")
		assert.Contains(t, err.Error(), "Did you mean $primary?")
		assert.True(t, errors.Is(err, schema.ErrDanglingReference))
		assert.False(t, errors.Is(err, schema.ErrCircularReference))
	})

	t.Run("SyntaxError", func(t *testing.T) {
		err := schema.NewSyntaxError("", 3, 7, "unclosed (")

		assert.Equal(t, "<input>:3:7: unclosed (", err.Error())
		assert.True(t, errors.Is(err, schema.ErrSyntax))
	})

	t.Run("ImportNotFoundError", func(t *testing.T) {
		err := schema.NewImportNotFoundError("bulma.sass", "utilities/all", []string{"/a", "/b"})

		assert.Contains(t, err.Error(), `"utilities/all"`)
		assert.Contains(t, err.Error(), "/a, /b")
		assert.True(t, errors.Is(err, schema.ErrImportNotFound))
	})

	t.Run("InvalidConfigError", func(t *testing.T) {
		err := schema.NewInvalidConfigError("sass2ts.yaml", "names.factory", "must be an identifier")

		assert.Contains(t, err.Error(), "sass2ts.yaml")
		assert.True(t, errors.Is(err, schema.ErrInvalidConfig))
	})

	t.Run("wrapped errors keep their sentinel", func(t *testing.T) {
		err := fmt.Errorf("sorting declarations: %w", schema.NewCircularReferenceError("", []string{"a", "a"}))

		var cycle *schema.CircularReferenceError
		assert.True(t, errors.As(err, &cycle))
		assert.Equal(t, []string{"a", "a"}, cycle.ReferenceChain)
	})
}
