// Package schema defines the variable descriptor model shared by every
// pipeline stage, and the errors those stages report.
package schema

import "fmt"

// VariableType tags what a declaration's value is
type VariableType int

const (
	// Unset is the zero value; no descriptor carries it after classification
	Unset VariableType = iota
	Color
	Percent
	Dimension
	Number
	String
	Font
	Identifier
	// NativeFunction is a CSS function left for the browser, e.g. calc()
	NativeFunction
	// ColorFunction is rgb(), hsl() or rgba(), realised by the injected color method
	ColorFunction
	// Function is any other call; the callee becomes an injected method
	Function
	VariableReference
	Array
	VariableList
	// Expression is a mixed sequence realised by the injected evaluate method
	Expression
)

var typeNames = [...]string{
	Unset:             "",
	Color:             "color",
	Percent:           "percentage",
	Dimension:         "dimension",
	Number:            "number",
	String:            "string",
	Font:              "font",
	Identifier:        "ident",
	NativeFunction:    "native-function",
	ColorFunction:     "color-fn",
	Function:          "function",
	VariableReference: "variable",
	Array:             "array",
	VariableList:      "variableList",
	Expression:        "expression",
}

func (t VariableType) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("VariableType(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler
func (t VariableType) MarshalText() ([]byte, error) {
	if t < 0 || int(t) >= len(typeNames) {
		return nil, fmt.Errorf("unknown variable type %d", int(t))
	}
	return []byte(typeNames[t]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (t *VariableType) UnmarshalText(b []byte) error {
	parsed, err := ParseVariableType(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseVariableType returns the tag whose name is s
func ParseVariableType(s string) (VariableType, error) {
	for i, n := range typeNames {
		if n == s {
			return VariableType(i), nil
		}
	}
	return Unset, fmt.Errorf("unknown variable type %q", s)
}
