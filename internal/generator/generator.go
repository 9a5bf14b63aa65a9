// Package generator assembles the TypeScript theme module from resolved
// descriptors and their published types.
package generator

import (
	"fmt"
	"strings"

	"bennypowers.dev/sass2ts/internal/collections"
	"bennypowers.dev/sass2ts/internal/resolver"
	"bennypowers.dev/sass2ts/internal/schema"
)

const indent = "  "

// InjectedMethods returns the distinct functions the factory must receive,
// in first-use order.
func InjectedMethods(resolved []schema.Descriptor) []string {
	methods := collections.NewOrderedSet[string]()
	for _, d := range resolved {
		methods.Add(d.FnsToCall...)
	}
	return methods.Members()
}

// Assemble renders the theme module. types must be ResolveTypes(resolved).
// An empty descriptor set renders nothing.
func Assemble(resolved []schema.Descriptor, types []resolver.Published, names Names) string {
	if len(resolved) == 0 {
		return ""
	}
	names = names.WithDefaults()

	var plain []string
	var structured []string
	for _, p := range types {
		if p.Structured() {
			structured = append(structured, fmt.Sprintf("{%s: %s}", p.Name, p.TSType))
		} else {
			plain = append(plain, p.Name)
		}
	}

	var b strings.Builder
	methods := InjectedMethods(resolved)
	if len(methods) > 0 {
		fmt.Fprintf(&b, "export type %s = %s\n", names.Methods, union(methods))
		fmt.Fprintf(&b, "export type %s = Record<%s, (val: string | string[], src?: string) => string>\n",
			names.InjectedMethods, names.Methods)
	}

	var theme []string
	if len(plain) > 0 {
		fmt.Fprintf(&b, "export type %s = %s\n", names.Vars, union(plain))
		theme = append(theme, fmt.Sprintf("Record<%s, string>", names.Vars))
	}
	theme = append(theme, structured...)
	fmt.Fprintf(&b, "export type %s = %s\n", names.Theme, strings.Join(theme, "&"))

	params := ""
	if len(methods) > 0 {
		params = fmt.Sprintf("{%s}: %s", strings.Join(methods, ","), names.InjectedMethods)
	}
	fmt.Fprintf(&b, "export const %s = (%s) => (%s: Partial<%s>): %s => {\n",
		names.Factory, params, names.Override, names.Theme, names.Theme)

	exported := make([]string, len(resolved))
	for i, d := range resolved {
		exported[i] = indent + indent + d.Name
		b.WriteString(indent)
		b.WriteString(binding(d, names.Override))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%sreturn {\n%s\n%s}\n}\n", indent, strings.Join(exported, ",\n"), indent)

	return b.String()
}

// binding declares one variable. Containers are not overridable.
func binding(d schema.Descriptor, override string) string {
	if d.Type == schema.Array || d.Type == schema.VariableList {
		return fmt.Sprintf("const %s = %s", d.Name, d.Value)
	}
	return fmt.Sprintf("const %s = %s.%s || %s", d.Name, override, d.Name, d.Value)
}

func union(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = `"` + n + `"`
	}
	return strings.Join(quoted, "|")
}
