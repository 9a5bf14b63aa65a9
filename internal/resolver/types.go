package resolver

import (
	"strings"

	"bennypowers.dev/sass2ts/internal/schema"
)

// maxReferenceDepth bounds reference chains followed by the type resolver
const maxReferenceDepth = 64

// stringified types are always published as plain strings
var stringified = map[schema.VariableType]bool{
	schema.Color:          true,
	schema.ColorFunction:  true,
	schema.Dimension:      true,
	schema.Function:       true,
	schema.String:         true,
	schema.NativeFunction: true,
	schema.Identifier:     true,
	schema.Expression:     true,
	schema.Font:           true,
}

// Published is the type a resolved descriptor is exposed with in the theme
type Published struct {
	Name string `yaml:"name" json:"name"`
	// Kind is the descriptor's type after reference chains are followed
	Kind schema.VariableType `yaml:"kind" json:"kind"`
	// TSType is the structured TypeScript type, empty for plain strings
	TSType string `yaml:"tsType,omitempty" json:"tsType,omitempty"`
}

// Structured reports whether the entry needs a type other than string
func (p Published) Structured() bool {
	return p.TSType != ""
}

// typeRule decides the structured type of a descriptor. The first matching
// rule wins; descriptors no rule matches are plain strings.
type typeRule struct {
	Name    string
	Match   func(d schema.Descriptor) bool
	Resolve func(t *typeResolver, d schema.Descriptor) string
}

var typeRules = []typeRule{
	{"record", func(d schema.Descriptor) bool {
		return d.Type == schema.VariableList && d.HasDependencies()
	}, func(t *typeResolver, d schema.Descriptor) string {
		keys := make([]string, len(d.Dependencies))
		for i, dep := range d.Dependencies {
			keys[i] = `"` + dep + `"`
		}
		return "Record<" + strings.Join(keys, "|") + ", " + t.contentType(d) + ">"
	}},
	{"array", func(d schema.Descriptor) bool {
		return d.Type == schema.Array && d.HasDependencies()
	}, func(t *typeResolver, d schema.Descriptor) string {
		return "Array<" + t.contentType(d) + ">"
	}},
	{"boolean", func(d schema.Descriptor) bool {
		_, ok := d.Value.Flag()
		return d.Type == schema.Identifier && ok
	}, func(*typeResolver, schema.Descriptor) string {
		return "boolean"
	}},
	{"number", func(d schema.Descriptor) bool {
		return d.Type == schema.Number
	}, func(*typeResolver, schema.Descriptor) string {
		return "number"
	}},
}

type typeResolver struct {
	byName map[string]schema.Descriptor
}

// ResolveTypes publishes every value-resolved descriptor, in order, as
// either a plain string or a structured type. Lookups use camel-cased names,
// so it must run after ResolveValues.
func ResolveTypes(resolved []schema.Descriptor) []Published {
	t := &typeResolver{byName: make(map[string]schema.Descriptor, len(resolved))}
	for _, d := range resolved {
		t.byName[d.Name] = d
	}

	out := make([]Published, len(resolved))
	for i, d := range resolved {
		out[i] = t.publish(d)
	}
	return out
}

func (t *typeResolver) publish(d schema.Descriptor) Published {
	if d.Type != schema.VariableReference {
		return Published{Name: d.Name, Kind: d.Type, TSType: t.structured(d)}
	}

	// a reference publishes what it points at, unless that is plain text
	target, ok := t.follow(d)
	if !ok || stringified[target.Type] {
		return Published{Name: d.Name, Kind: schema.String}
	}
	return Published{Name: d.Name, Kind: target.Type, TSType: t.structured(target)}
}

func (t *typeResolver) structured(d schema.Descriptor) string {
	for _, rule := range typeRules {
		if rule.Match(d) {
			return rule.Resolve(t, d)
		}
	}
	return ""
}

// follow walks single-dependency reference chains to the first descriptor
// that is not itself a reference.
func (t *typeResolver) follow(d schema.Descriptor) (schema.Descriptor, bool) {
	for range maxReferenceDepth {
		if d.Type != schema.VariableReference || len(d.Dependencies) != 1 {
			return d, true
		}
		next, ok := t.byName[d.Dependencies[0]]
		if !ok {
			return schema.Descriptor{}, false
		}
		d = next
	}
	return schema.Descriptor{}, false
}

// contentType is the element type of an array or record, decided by its
// first dependency.
func (t *typeResolver) contentType(d schema.Descriptor) string {
	first, ok := t.byName[d.Dependencies[0]]
	if ok {
		first, ok = t.follow(first)
	}
	if (ok && first.Type == schema.Number) || d.InnerType == schema.Number {
		return "number"
	}
	return "string"
}
