package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one realised theme variable. Value is a string, bool, float64,
// []any or an ordered *Theme for maps.
type Entry struct {
	Name  string
	Value any
}

// Theme is an insertion-ordered set of realised variables
type Theme struct {
	entries []Entry
	index   map[string]int
}

// NewTheme creates an empty Theme
func NewTheme() *Theme {
	return &Theme{index: make(map[string]int)}
}

// Set adds or replaces a variable, keeping its first position
func (t *Theme) Set(name string, value any) {
	if i, ok := t.index[name]; ok {
		t.entries[i].Value = value
		return
	}
	t.index[name] = len(t.entries)
	t.entries = append(t.entries, Entry{Name: name, Value: value})
}

// Get returns the value of a variable
func (t *Theme) Get(name string) (any, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.entries[i].Value, true
}

// Entries returns the variables in order
func (t *Theme) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

// Len returns the number of variables
func (t *Theme) Len() int {
	return len(t.entries)
}

// MarshalYAML emits a mapping in theme order
func (t *Theme) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range t.entries {
		var value yaml.Node
		if err := value.Encode(e.Value); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", e.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Name},
			&value)
	}
	return node, nil
}

// MarshalJSON emits an object in theme order
func (t *Theme) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range t.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", e.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// text renders a realised value the way a template literal would
func text(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = text(item)
		}
		return strings.Join(parts, ",")
	case *Theme:
		return "[object Object]"
	default:
		return fmt.Sprint(v)
	}
}
