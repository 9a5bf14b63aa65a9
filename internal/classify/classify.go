// Package classify turns declaration views into raw descriptors using an
// ordered chain of rules. The first rule whose predicate matches decides the
// descriptor; rule order is significant.
package classify

import (
	"strings"

	"bennypowers.dev/sass2ts/internal/collections"
	"bennypowers.dev/sass2ts/internal/parser/sass"
	"bennypowers.dev/sass2ts/internal/query"
	"bennypowers.dev/sass2ts/internal/schema"
	"go.uber.org/zap"
)

var (
	// DefaultNativeFunctions are calls the browser evaluates itself
	DefaultNativeFunctions = []string{"calc"}
	// DefaultColorFunctions are calls realised by the injected color method
	DefaultColorFunctions = []string{"rgb", "hsl", "rgba"}
)

// Predicate reports whether a rule applies to a declaration view
type Predicate func(decl query.Selection) bool

// Extractor builds the descriptor for a declaration view a rule matched
type Extractor func(decl query.Selection) schema.Descriptor

// Rule pairs a predicate with the extractor it guards
type Rule struct {
	Name    string
	Match   Predicate
	Extract Extractor
}

// Classifier holds the ordered rule chain
type Classifier struct {
	rules  []Rule
	native collections.Set[string]
	color  collections.Set[string]
	log    *zap.Logger
}

// Option configures a Classifier
type Option func(*Classifier)

// WithNativeFunctions replaces the set of calls classified as NativeFunction
func WithNativeFunctions(names ...string) Option {
	return func(c *Classifier) {
		c.native = collections.NewSet(names...)
	}
}

// WithColorFunctions replaces the set of calls classified as ColorFunction
func WithColorFunctions(names ...string) Option {
	return func(c *Classifier) {
		c.color = collections.NewSet(names...)
	}
}

// WithLogger sets the logger used to report dropped declarations
func WithLogger(log *zap.Logger) Option {
	return func(c *Classifier) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Classifier with the standard rule chain
func New(opts ...Option) *Classifier {
	c := &Classifier{
		native: collections.NewSet(DefaultNativeFunctions...),
		color:  collections.NewSet(DefaultColorFunctions...),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.rules = []Rule{
		{"variable-list", isVariableList, variableList},
		{"expression", isExpression, expression},
		{"numbers-array", isNumbersArray, numbersArray},
		{"function", isFunction, c.function},
		{"identifier", when(sass.TypeIdent), c.then(sass.TypeIdent, schema.Identifier)},
		{"color", when(sass.TypeColor), c.then(sass.TypeColor, schema.Color)},
		{"percent", when(sass.TypePercentage), c.then(sass.TypePercentage, schema.Percent)},
		{"number", when(sass.TypeNumber), c.then(sass.TypeNumber, schema.Number)},
		{"dimension", when(sass.TypeDimension), c.then(sass.TypeDimension, schema.Dimension)},
		{"variables-array", isVariablesArray, variablesArray},
		{"variable-reference", when(sass.TypeVariable), variableReference},
	}
	return c
}

// Rules returns the rule chain in evaluation order
func (c *Classifier) Rules() []Rule {
	return append([]Rule(nil), c.rules...)
}

// Classify returns the descriptor of the first matching rule. The boolean
// is false when no rule matched or the declaration has no variable name.
func (c *Classifier) Classify(decl query.Selection) (schema.Descriptor, bool) {
	if variableName(decl) == "" {
		return schema.Descriptor{}, false
	}
	for _, r := range c.rules {
		if r.Match(decl) {
			return r.Extract(decl), true
		}
	}
	return schema.Descriptor{}, false
}

// ClassifyAll classifies every view in order, silently dropping the ones no
// rule matches.
func (c *Classifier) ClassifyAll(decls []query.Selection) []schema.Descriptor {
	out := make([]schema.Descriptor, 0, len(decls))
	for _, decl := range decls {
		d, ok := c.Classify(decl)
		if !ok {
			c.log.Debug("dropping unclassifiable declaration",
				zap.String("declaration", decl.Text()),
				zap.Stringer("at", decl.Get(0).Range.Start))
			continue
		}
		out = append(out, d)
	}
	return out
}

// LastWins drops every descriptor that a later one with the same name
// redeclares. Names are compared by schema.CanonicalName. Survivors keep
// their relative order.
func LastWins(ds []schema.Descriptor) []schema.Descriptor {
	last := make(map[string]int, len(ds))
	for i, d := range ds {
		last[schema.CanonicalName(d.Name)] = i
	}
	out := make([]schema.Descriptor, 0, len(last))
	for i, d := range ds {
		if last[schema.CanonicalName(d.Name)] == i {
			out = append(out, d)
		}
	}
	return out
}

func when(typ string) Predicate {
	return func(decl query.Selection) bool {
		return firstValueOf(decl, typ) != ""
	}
}

// then keeps the first node of typ. Further terms are lost, e.g. $a: 1px+2px
// lexes as two dimensions with no space between them, so that is logged.
func (c *Classifier) then(typ string, vt schema.VariableType) Extractor {
	return func(decl query.Selection) schema.Descriptor {
		d := schema.Descriptor{
			Name:  variableName(decl),
			Type:  vt,
			Value: schema.Text(firstValueOf(decl, typ)),
		}
		if n := terms(decl); n > 1 {
			c.log.Debug("keeping only the first term of value",
				zap.String("variable", d.Name),
				zap.String("value", valueOf(decl).Text()),
				zap.Int("terms", n))
		}
		return d
	}
}

// terms counts the value nodes that carry meaning
func terms(decl query.Selection) int {
	n := 0
	for _, node := range valueOf(decl).Children().Nodes() {
		switch node.Type {
		case sass.TypeSpace, sass.TypeDefault, sass.TypeImportant:
		default:
			n++
		}
	}
	return n
}

func mapArguments(decl query.Selection) query.Selection {
	return valueOf(decl).Children().Children(sass.TypeArguments).Children(sass.TypeParentheses)
}

// isVariableList matches a map literal passed as an argument, e.g.
// mergeColorMaps(("white": ($white, $black)), $custom)
func isVariableList(decl query.Selection) bool {
	return mapArguments(decl).Children(sass.TypeString).Length() > 0
}

func variableList(decl query.Selection) schema.Descriptor {
	var names []string
	for _, group := range mapArguments(decl).Nodes() {
		names = append(names, query.Root(group).Find(sass.TypeVariable).Children(sass.TypeIdent).Texts()...)
	}
	return schema.Descriptor{
		Name:         variableName(decl),
		Type:         schema.VariableList,
		Dependencies: collections.Unique(names),
	}
}

func isExpression(decl query.Selection) bool {
	value := valueOf(decl)
	dimensions := value.Children(sass.TypeDimension).Length()
	functionParts := value.Children(sass.TypeFunction).Children().Length()
	operators := value.Children(sass.TypeOperator).Length()
	numbers := value.Children(sass.TypeNumber).Length()
	idents := value.Children(sass.TypeIdent).Length()
	spaces := value.Children(sass.TypeSpace).Length()

	mixed := (dimensions > 0 && (idents > 0 || numbers > 0)) ||
		(functionParts > 0 && idents > 0 && numbers > 0) ||
		dimensions > 1 ||
		operators > 0
	return spaces > 0 && mixed
}

func expression(decl query.Selection) schema.Descriptor {
	value := valueOf(decl)
	direct := value.Children(sass.TypeVariable).Children().Texts()
	nested := value.Children().Children(sass.TypeVariable).Children().Texts()
	inCalls := value.
		Children(sass.TypeFunction).
		Children(sass.TypeArguments).
		Children(sass.TypeVariable).
		Children(sass.TypeIdent).
		Texts()

	deps := append(append(direct, nested...), inCalls...)

	// anything nested deeper still has to be substituted into the fragments
	seen := collections.NewSet(deps...)
	for _, name := range value.Find(sass.TypeVariable).Children(sass.TypeIdent).Texts() {
		if !seen.Has(name) {
			seen.Add(name)
			deps = append(deps, name)
		}
	}

	return schema.Descriptor{
		Name:         variableName(decl),
		Type:         schema.Expression,
		Value:        schema.List(fragments(value.Children().Nodes())...),
		FnsToCall:    []string{schema.MethodEvaluate},
		Dependencies: deps,
	}
}

func isNumbersArray(decl query.Selection) bool {
	return valueOf(decl).Children(sass.TypeNumber).Length() > 1
}

func numbersArray(decl query.Selection) schema.Descriptor {
	return schema.Descriptor{
		Name:         variableName(decl),
		Type:         schema.Array,
		InnerType:    schema.Number,
		Dependencies: valueOf(decl).Children(sass.TypeNumber).Texts(),
	}
}

func isFunction(decl query.Selection) bool {
	return valueOf(decl).Children(sass.TypeFunction).Children().Length() > 0
}

var interpolationMarkers = strings.NewReplacer("#", "", "{", "", "}", "")

func (c *Classifier) function(decl query.Selection) schema.Descriptor {
	fn := valueOf(decl).Children(sass.TypeFunction)
	callee := fn.Children(sass.TypeIdent).First().Value()
	args := fn.Children(sass.TypeArguments)
	variables := args.Children(sass.TypeVariable).Children(sass.TypeIdent).Texts()
	name := variableName(decl)

	switch {
	case c.native.Has(callee):
		interpolated := args.
			Children(sass.TypeInterpolation).
			Children(sass.TypeVariable).
			Children(sass.TypeIdent).
			Texts()
		return schema.Descriptor{
			Name: name,
			Type: schema.NativeFunction,
			// the value ends up inside a template literal, so #{} is dropped
			Value:        schema.Text(interpolationMarkers.Replace(fn.Text())),
			Dependencies: append(variables, interpolated...),
		}
	case c.color.Has(callee):
		return schema.Descriptor{
			Name:         name,
			Type:         schema.ColorFunction,
			Value:        schema.Text(fn.Text()),
			FnsToCall:    []string{schema.MethodColor},
			Dependencies: variables,
		}
	default:
		return schema.Descriptor{
			Name:         name,
			Type:         schema.Function,
			Value:        schema.Text(callee),
			FnsToCall:    []string{callee},
			Dependencies: variables,
		}
	}
}

func variableIdents(decl query.Selection) query.Selection {
	return valueOf(decl).Children(sass.TypeVariable).Children(sass.TypeIdent)
}

func isVariablesArray(decl query.Selection) bool {
	return variableIdents(decl).Length() > 1
}

func variablesArray(decl query.Selection) schema.Descriptor {
	return schema.Descriptor{
		Name:         variableName(decl),
		Type:         schema.Array,
		Dependencies: variableIdents(decl).Texts(),
	}
}

func variableReference(decl query.Selection) schema.Descriptor {
	return schema.Descriptor{
		Name:         variableName(decl),
		Type:         schema.VariableReference,
		Dependencies: []string{firstValueOf(decl, sass.TypeVariable)},
	}
}
