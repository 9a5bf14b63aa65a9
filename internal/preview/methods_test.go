package preview_test

import (
	"testing"

	"bennypowers.dev/sass2ts/internal/preview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "0 8px 8px rgba(#000, 0.1), 0 0 0 1px",
		preview.Join([]string{"0", "8px", "8px", "rgba(#000, 0.1)", ",", "0", "0", "0", "1px"}))
	assert.Equal(t, "a,b c", preview.Join([]string{"a", ",b", "c"}))
	assert.Empty(t, preview.Join(nil))
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		want      string
	}{
		{"dimension arithmetic", []string{"960px", "+", "(2 * 64px)"}, "1088px"},
		{"unitless", []string{"10", "-", "4"}, "6"},
		{"division", []string{"3rem", "/", "2"}, "1.5rem"},
		{"percentages", []string{"50%", "-", "10%"}, "40%"},
		{"negative operand", []string{"-4px", "*", "2"}, "-8px"},
		{"mixed units stay text", []string{"1rem", "+", "2px"}, "1rem + 2px"},
		{"no operator", []string{"0", "-2px", "0", "0"}, "0 -2px 0 0"},
		{"shadow list", []string{"0", "8px", ",", "0", "1px"}, "0 8px, 0 1px"},
		{"font stack", []string{"BlinkMacSystemFont", ",", "-apple-system", ",", "sans-serif"}, "BlinkMacSystemFont, -apple-system, sans-serif"},
		{"identifiers stay text", []string{"auto", "+", "1px"}, "auto + 1px"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := preview.Evaluate(tt.fragments...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#DDEEFF", "#ddeeff"},
		{"hsl(0, 0%, 4%)", "#0a0a0a"},
		{"rgb(255, 0, 0)", "#ff0000"},
		{"rgba(#000000, 0.5)", "#00000080"},
		{"rgba(#ff0000, 50%)", "#ff000080"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := preview.Color(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := preview.Color("not-a-color(1)")
	assert.Error(t, err)
}

func TestMethodsWith(t *testing.T) {
	custom := preview.Method(func(args ...string) (string, error) { return "x", nil })
	m := preview.DefaultMethods().With(preview.Methods{"findColorInvert": custom, "color": custom})

	assert.Contains(t, m, "evaluate")
	assert.Contains(t, m, "findColorInvert")
	got, err := m["color"]("#fff")
	require.NoError(t, err)
	assert.Equal(t, "x", got)
}
