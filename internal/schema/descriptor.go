package schema

import (
	"encoding/json"
	"strings"
)

// ValueKind says which field of a Value is populated
type ValueKind int

const (
	TextValue ValueKind = iota
	ListValue
	BoolValue
)

// Value is a descriptor value: a literal, an ordered list of literals or a
// boolean.
type Value struct {
	kind ValueKind
	text string
	list []string
	flag bool
}

// Text returns a scalar value
func Text(s string) Value {
	return Value{kind: TextValue, text: s}
}

// List returns an ordered list value
func List(items ...string) Value {
	return Value{kind: ListValue, list: append([]string(nil), items...)}
}

// Bool returns a boolean value
func Bool(b bool) Value {
	return Value{kind: BoolValue, flag: b}
}

// Kind returns which representation v holds
func (v Value) Kind() ValueKind {
	return v.kind
}

// Items returns the list items, or nil for scalar values
func (v Value) Items() []string {
	if v.kind != ListValue {
		return nil
	}
	return append([]string(nil), v.list...)
}

// Flag returns the boolean and whether v is a boolean at all
func (v Value) Flag() (bool, bool) {
	return v.flag, v.kind == BoolValue
}

// IsZero reports whether v is an empty text value
func (v Value) IsZero() bool {
	return v.kind == TextValue && v.text == ""
}

// String renders v as text. Lists are joined with a space, booleans become
// "true" or "false".
func (v Value) String() string {
	switch v.kind {
	case ListValue:
		return strings.Join(v.list, " ")
	case BoolValue:
		if v.flag {
			return "true"
		}
		return "false"
	default:
		return v.text
	}
}

func (v Value) native() any {
	switch v.kind {
	case ListValue:
		return v.Items()
	case BoolValue:
		return v.flag
	default:
		return v.text
	}
}

// MarshalYAML implements yaml.Marshaler
func (v Value) MarshalYAML() (any, error) {
	return v.native(), nil
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.native())
}

// Injected method names required by built-in value shapes
const (
	MethodEvaluate = "evaluate"
	MethodColor    = "color"
)

// Descriptor is the pipeline's record of one declaration
type Descriptor struct {
	Name         string       `yaml:"name" json:"name"`
	Value        Value        `yaml:"value,omitempty" json:"value,omitzero"`
	Type         VariableType `yaml:"type" json:"type"`
	InnerType    VariableType `yaml:"innerType,omitempty" json:"innerType,omitempty"`
	Dependencies []string     `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	FnsToCall    []string     `yaml:"fnsToCall,omitempty" json:"fnsToCall,omitempty"`
}

// HasDependencies reports whether d references anything
func (d Descriptor) HasDependencies() bool {
	return len(d.Dependencies) > 0
}

// Clone returns a copy that shares no slices with d
func (d Descriptor) Clone() Descriptor {
	c := d
	c.Dependencies = append([]string(nil), d.Dependencies...)
	c.FnsToCall = append([]string(nil), d.FnsToCall...)
	if d.Value.kind == ListValue {
		c.Value = List(d.Value.list...)
	}
	return c
}

// CanonicalName is the key under which Sass identifies a variable: '-' and
// '_' are interchangeable, so $gap_large and $gap-large are one variable.
func CanonicalName(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
