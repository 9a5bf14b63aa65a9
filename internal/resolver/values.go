package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"bennypowers.dev/sass2ts/internal/schema"
	"github.com/iancoleman/strcase"
)

// ValueRule maps a sorted descriptor to the TypeScript expression that
// realises its value. The first matching rule wins.
type ValueRule struct {
	Name    string
	Match   func(schema.Descriptor) bool
	Resolve func(schema.Descriptor) schema.Value
}

// ValueRules is the ordered value resolution chain
var ValueRules = []ValueRule{
	{"percent", is(schema.Percent), quoted("", "%")},
	{"color", is(schema.Color), quoted("#", "")},
	{"dimension", is(schema.Dimension), quoted("", "")},
	{"reference", singleReference, func(d schema.Descriptor) schema.Value {
		return schema.Text(joinNames(d.Dependencies))
	}},
	{"array", is(schema.Array), func(d schema.Descriptor) schema.Value {
		return schema.Text("[" + joinNames(d.Dependencies) + "]")
	}},
	{"color-function", is(schema.ColorFunction), func(d schema.Descriptor) schema.Value {
		return schema.Text(schema.MethodColor + "(" + template(d.Value.String(), d.Dependencies) + ")")
	}},
	{"native-function", is(schema.NativeFunction), func(d schema.Descriptor) schema.Value {
		return schema.Text(template(d.Value.String(), d.Dependencies))
	}},
	{"identifier", is(schema.Identifier), identifier},
	{"function", is(schema.Function), func(d schema.Descriptor) schema.Value {
		return schema.Text(d.Value.String() + "(" + joinNames(d.Dependencies) + ")")
	}},
	{"string", is(schema.String, schema.Font), func(d schema.Descriptor) schema.Value {
		return schema.Text(`"` + strings.ReplaceAll(d.Value.String(), `"`, `'`) + `"`)
	}},
	{"number", is(schema.Number), func(d schema.Descriptor) schema.Value {
		return schema.Text(d.Value.String())
	}},
	{"variable-list", is(schema.VariableList), func(d schema.Descriptor) schema.Value {
		return schema.Text("{" + joinNames(d.Dependencies) + "}")
	}},
	{"expression", is(schema.Expression), expression},
}

// CamelCase converts a Sass variable name to the identifier used in
// generated code. Numeric literals are returned unchanged.
func CamelCase(name string) string {
	if isNumeric(name) {
		return name
	}
	return strcase.ToLowerCamel(name)
}

// ResolveValue replaces the descriptor's value with its TypeScript
// expression and camel-cases its name and dependencies. The boolean is false
// when no rule applies.
func ResolveValue(d schema.Descriptor) (schema.Descriptor, bool) {
	for _, rule := range ValueRules {
		if !rule.Match(d) {
			continue
		}
		out := d.Clone()
		out.Name = CamelCase(d.Name)
		if out.Value.Kind() == schema.TextValue {
			out.Value = schema.Text(strings.TrimSpace(out.Value.String()))
		}
		// rules see the original dependency names: templates contain $snake-case
		out.Value = rule.Resolve(out)
		for i, dep := range out.Dependencies {
			out.Dependencies[i] = CamelCase(dep)
		}
		return out, true
	}
	return schema.Descriptor{}, false
}

// ResolveValues resolves every descriptor in order, dropping those no rule
// applies to.
func ResolveValues(sorted []schema.Descriptor) []schema.Descriptor {
	out := make([]schema.Descriptor, 0, len(sorted))
	for _, d := range sorted {
		if r, ok := ResolveValue(d); ok {
			out = append(out, r)
		}
	}
	return out
}

func is(types ...schema.VariableType) func(schema.Descriptor) bool {
	return func(d schema.Descriptor) bool {
		for _, t := range types {
			if d.Type == t {
				return true
			}
		}
		return false
	}
}

func singleReference(d schema.Descriptor) bool {
	return d.Type == schema.VariableReference && len(d.Dependencies) <= 1
}

func quoted(prefix, suffix string) func(schema.Descriptor) schema.Value {
	return func(d schema.Descriptor) schema.Value {
		return schema.Text(`"` + prefix + d.Value.String() + suffix + `"`)
	}
}

func identifier(d schema.Descriptor) schema.Value {
	switch v := d.Value.String(); v {
	case "true", "false":
		return schema.Bool(v == "true")
	default:
		return schema.Text(`"` + v + `"`)
	}
}

func expression(d schema.Descriptor) schema.Value {
	items := d.Value.Items()
	if items == nil {
		items = []string{d.Value.String()}
	}
	fragments := make([]string, len(items))
	for i, item := range items {
		fragments[i] = template(item, d.Dependencies)
	}
	return schema.Text(fmt.Sprintf("%s([%s], '%s')", schema.MethodEvaluate, strings.Join(fragments, ","), d.Name))
}

func joinNames(names []string) string {
	camel := make([]string, len(names))
	for i, n := range names {
		camel[i] = CamelCase(n)
	}
	return strings.Join(camel, ",")
}

// template wraps s in backticks and replaces each $dep with ${dep} in camel
// case.
// literal escapes text that would otherwise be live inside a template
// literal. It runs before placeholders are inserted.
var literal = strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")

func template(s string, deps []string) string {
	return "`" + Interpolate(literal.Replace(s), deps, func(dep string) string {
		return "${" + CamelCase(dep) + "}"
	}) + "`"
}

// Interpolate replaces every reference to a dependency in s with
// with(dep). A reference only matches when it is not the prefix of a longer
// name: $gap never matches inside $gap-large.
func Interpolate(s string, deps []string, with func(dep string) string) string {
	for _, dep := range deps {
		s = substitute(s, "$"+dep, with(dep))
	}
	return s
}

func substitute(s, ref, with string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, ref)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		end := i + len(ref)
		if end < len(s) && isNameByte(s[end]) {
			b.WriteString(s[:end])
		} else {
			b.WriteString(s[:i])
			b.WriteString(with)
		}
		s = s[end:]
	}
}

func isNameByte(c byte) bool {
	return c == '-' || c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9') ||
		c >= 0x80
}

func isNumeric(s string) bool {
	if s == "" || !strings.ContainsAny(s[:1], "0123456789+-.") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
