package generator_test

import (
	"testing"

	"bennypowers.dev/sass2ts/internal/generator"
	"bennypowers.dev/sass2ts/internal/resolver"
	"bennypowers.dev/sass2ts/internal/schema"
	"github.com/stretchr/testify/assert"
)

func assemble(raw []schema.Descriptor, names generator.Names) string {
	resolved := resolver.ResolveValues(raw)
	return generator.Assemble(resolved, resolver.ResolveTypes(resolved), names)
}

func TestAssemble(t *testing.T) {
	raw := []schema.Descriptor{
		{Name: "colorVar", Type: schema.Color, Value: schema.Text("DDEEFF")},
		{Name: "colorRef", Type: schema.VariableReference, Dependencies: []string{"colorVar"}},
		{Name: "percent", Type: schema.Percent, Value: schema.Text("10")},
		{Name: "shade", Type: schema.ColorFunction, Value: schema.Text("hsl(0%, 0%, $percent)"), FnsToCall: []string{"color"}, Dependencies: []string{"percent"}},
		{Name: "number-value", Type: schema.Number, Value: schema.Text("1")},
		{Name: "dimensions", Type: schema.Array, InnerType: schema.Number, Dependencies: []string{"16", "24"}},
		{Name: "enabled", Type: schema.Identifier, Value: schema.Text("true")},
		{Name: "gap", Type: schema.Dimension, Value: schema.Text("64px")},
		{Name: "desktop", Type: schema.Expression, Value: schema.List("960px", "+", "(2 * $gap)"), FnsToCall: []string{"evaluate"}, Dependencies: []string{"gap"}},
	}

	want := `export type Methods = "color"|"evaluate"
export type InjectedMethods = Record<Methods, (val: string | string[], src?: string) => string>
export type BulmaVars = "colorVar"|"colorRef"|"percent"|"shade"|"gap"|"desktop"
export type BulmaTheme = Record<BulmaVars, string>&{numberValue: number}&{dimensions: Array<number>}&{enabled: boolean}
export const makeBasicTheme = ({color,evaluate}: InjectedMethods) => (overriding: Partial<BulmaTheme>): BulmaTheme => {
  const colorVar = overriding.colorVar || "#DDEEFF"
  const colorRef = overriding.colorRef || colorVar
  const percent = overriding.percent || "10%"
  const shade = overriding.shade || color(` + "`hsl(0%, 0%, ${percent})`" + `)
  const numberValue = overriding.numberValue || 1
  const dimensions = [16,24]
  const enabled = overriding.enabled || true
  const gap = overriding.gap || "64px"
  const desktop = overriding.desktop || evaluate([` + "`960px`,`+`,`(2 * ${gap})`" + `], 'desktop')
  return {
    colorVar,
    colorRef,
    percent,
    shade,
    numberValue,
    dimensions,
    enabled,
    gap,
    desktop
  }
}
`
	assert.Equal(t, want, assemble(raw, generator.DefaultNames()))
}

func TestAssembleWithoutInjectedMethods(t *testing.T) {
	raw := []schema.Descriptor{
		{Name: "a", Type: schema.Number, Value: schema.Text("1")},
		{Name: "map", Type: schema.VariableList, Dependencies: []string{"a"}},
	}

	want := `export type BulmaTheme = {a: number}&{map: Record<"a", number>}
export const makeBasicTheme = () => (overriding: Partial<BulmaTheme>): BulmaTheme => {
  const a = overriding.a || 1
  const map = {a}
  return {
    a,
    map
  }
}
`
	assert.Equal(t, want, assemble(raw, generator.Names{}))
}

func TestAssembleCustomNames(t *testing.T) {
	raw := []schema.Descriptor{
		{Name: "link", Type: schema.Color, Value: schema.Text("485fc7")},
		{Name: "link-invert", Type: schema.Function, Value: schema.Text("findColorInvert"), FnsToCall: []string{"findColorInvert"}, Dependencies: []string{"link"}},
	}
	names := generator.Names{
		Vars:     "ThemeVars",
		Theme:    "Theme",
		Factory:  "createTheme",
		Override: "custom",
	}

	want := `export type Methods = "findColorInvert"
export type InjectedMethods = Record<Methods, (val: string | string[], src?: string) => string>
export type ThemeVars = "link"|"linkInvert"
export type Theme = Record<ThemeVars, string>
export const createTheme = ({findColorInvert}: InjectedMethods) => (custom: Partial<Theme>): Theme => {
  const link = custom.link || "#485fc7"
  const linkInvert = custom.linkInvert || findColorInvert(link)
  return {
    link,
    linkInvert
  }
}
`
	assert.Equal(t, want, assemble(raw, names))
}

func TestAssembleEmpty(t *testing.T) {
	assert.Empty(t, generator.Assemble(nil, nil, generator.DefaultNames()))
}

func TestInjectedMethods(t *testing.T) {
	methods := generator.InjectedMethods([]schema.Descriptor{
		{FnsToCall: []string{"evaluate"}},
		{FnsToCall: []string{"color"}},
		{},
		{FnsToCall: []string{"evaluate", "findColorInvert"}},
	})
	assert.Equal(t, []string{"evaluate", "color", "findColorInvert"}, methods)
}

func TestNamesWithDefaults(t *testing.T) {
	names := generator.Names{Theme: "Theme"}.WithDefaults()
	assert.Equal(t, "Theme", names.Theme)
	assert.Equal(t, "BulmaVars", names.Vars)
	assert.Equal(t, "overriding", names.Override)
}
