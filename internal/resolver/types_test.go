package resolver_test

import (
	"testing"

	"bennypowers.dev/sass2ts/internal/resolver"
	"bennypowers.dev/sass2ts/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publish(t *testing.T, raw ...schema.Descriptor) map[string]resolver.Published {
	t.Helper()
	sorted, err := resolver.Sort(raw)
	require.NoError(t, err)
	published := resolver.ResolveTypes(resolver.ResolveValues(sorted))
	out := make(map[string]resolver.Published, len(published))
	for _, p := range published {
		out[p.Name] = p
	}
	return out
}

func TestResolveTypes(t *testing.T) {
	types := publish(t,
		lit("size-1", "1"),
		schema.Descriptor{Name: "white", Type: schema.Color, Value: schema.Text("FFEEDD")},
		schema.Descriptor{Name: "colorHashMap", Type: schema.VariableList, Dependencies: []string{"white", "black"}},
		schema.Descriptor{Name: "sizesArray", Type: schema.Array, Dependencies: []string{"size-1", "size-2"}},
		schema.Descriptor{Name: "booleanType", Type: schema.Identifier, Value: schema.Text("true")},
		lit("numberType", "1"),
		schema.Descriptor{Name: "colorType", Type: schema.Color, Value: schema.Text("FFEEDD")},
		schema.Descriptor{Name: "dimensions", Type: schema.Array, InnerType: schema.Number, Dependencies: []string{"16", "24"}},
	)

	assert.Equal(t, `Record<"white"|"black", string>`, types["colorHashMap"].TSType)
	assert.Equal(t, "Array<number>", types["sizesArray"].TSType)
	assert.Equal(t, "boolean", types["booleanType"].TSType)
	assert.Equal(t, "number", types["numberType"].TSType)
	assert.Equal(t, "number", types["size1"].TSType)
	assert.Equal(t, "Array<number>", types["dimensions"].TSType)

	assert.False(t, types["colorType"].Structured())
	assert.False(t, types["white"].Structured())
}

func TestResolveTypesOfReferences(t *testing.T) {
	types := publish(t,
		ref("numberReferenceC", "numberReferenceB"),
		ref("numberReferenceB", "numberReferenceA"),
		ref("numberReferenceA", "numberValue"),
		lit("numberValue", "1"),
		schema.Descriptor{Name: "colorVar", Type: schema.Color, Value: schema.Text("DDEEFF")},
		ref("colorRef", "colorVar"),
		ref("dangling", "nowhere"),
		schema.Descriptor{Name: "sizes", Type: schema.Array, InnerType: schema.Number, Dependencies: []string{"1", "2"}},
		ref("sizesRef", "sizes"),
	)

	for _, name := range []string{"numberReferenceA", "numberReferenceB", "numberReferenceC"} {
		assert.Equal(t, "number", types[name].TSType, name)
		assert.Equal(t, schema.Number, types[name].Kind, name)
	}

	assert.False(t, types["colorRef"].Structured())
	assert.Equal(t, schema.String, types["colorRef"].Kind)

	assert.False(t, types["dangling"].Structured())
	assert.Equal(t, "Array<number>", types["sizesRef"].TSType)
}

func TestResolveTypesKeepsOrder(t *testing.T) {
	published := resolver.ResolveTypes(resolver.ResolveValues([]schema.Descriptor{
		lit("b", "1"),
		lit("a", "2"),
	}))
	require.Len(t, published, 2)
	assert.Equal(t, "b", published[0].Name)
	assert.Equal(t, "a", published[1].Name)
}
