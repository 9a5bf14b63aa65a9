// Package preview realises a theme in Go the way the generated factory
// would at runtime, so a variable sheet can be inspected without a
// TypeScript toolchain.
package preview

import (
	"fmt"
	"strconv"
	"strings"

	"bennypowers.dev/sass2ts/internal/collections"
	"bennypowers.dev/sass2ts/internal/resolver"
	"bennypowers.dev/sass2ts/internal/schema"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Previewer realises sorted descriptors into a Theme
type Previewer struct {
	methods Methods
	log     *zap.Logger
}

// Option configures a Previewer
type Option func(*Previewer)

// WithMethods adds or replaces injected methods
func WithMethods(m Methods) Option {
	return func(p *Previewer) {
		p.methods = p.methods.With(m)
	}
}

// WithLogger sets the logger for unknown methods and overrides
func WithLogger(log *zap.Logger) Option {
	return func(p *Previewer) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a Previewer with the default methods
func New(opts ...Option) *Previewer {
	p := &Previewer{
		methods: DefaultMethods(),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Realise computes every variable in order. sorted must be dependency
// ordered raw descriptors. Override keys are camel-cased names; like the
// generated factory, arrays and maps ignore them. A variable that fails to
// realise keeps its best-effort text and its error is collected.
func (p *Previewer) Realise(sorted []schema.Descriptor, overrides map[string]string) (*Theme, error) {
	theme := NewTheme()
	used := collections.NewSet[string]()
	var errs error

	for _, d := range sorted {
		name := resolver.CamelCase(d.Name)

		if raw, ok := overrides[name]; ok && !isContainer(d) {
			used.Add(name)
			theme.Set(name, overrideValue(d, raw))
			continue
		}

		value, err := p.realise(d, theme)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("$%s: %w", d.Name, err))
		}
		theme.Set(name, value)
	}

	for name := range overrides {
		if !used.Has(name) {
			p.log.Warn("override matches no overridable variable", zap.String("name", name))
		}
	}

	return theme, errs
}

func isContainer(d schema.Descriptor) bool {
	return d.Type == schema.Array || d.Type == schema.VariableList
}

func overrideValue(d schema.Descriptor, raw string) any {
	switch d.Type {
	case schema.Number:
		if f, err := strconv.ParseFloat(raw, 64); err == nil {
			return f
		}
	case schema.Identifier:
		if raw == "true" || raw == "false" {
			return raw == "true"
		}
	}
	return raw
}

// lookup reads an already realised dependency
type lookup struct {
	theme   *Theme
	name    string
	missing error
}

func (l *lookup) get(dep string) (any, bool) {
	v, ok := l.theme.Get(resolver.CamelCase(dep))
	if !ok {
		l.missing = multierr.Append(l.missing, schema.NewDanglingReferenceError(l.name, dep, nil))
	}
	return v, ok
}

func (l *lookup) interpolate(s string, deps []string) string {
	return resolver.Interpolate(s, deps, func(dep string) string {
		if v, ok := l.get(dep); ok {
			return text(v)
		}
		return "$" + dep
	})
}

func (p *Previewer) realise(d schema.Descriptor, theme *Theme) (any, error) {
	l := &lookup{theme: theme, name: d.Name}
	raw := strings.TrimSpace(d.Value.String())

	var value any
	var err error
	switch d.Type {
	case schema.Color:
		value = "#" + raw
	case schema.Percent:
		value = raw + "%"
	case schema.Dimension, schema.NativeFunction:
		value = l.interpolate(raw, d.Dependencies)
	case schema.Number:
		value = number(raw)
	case schema.Identifier:
		if raw == "true" || raw == "false" {
			value = raw == "true"
		} else {
			value = raw
		}
	case schema.String, schema.Font:
		value = strings.ReplaceAll(raw, `"`, `'`)
	case schema.VariableReference:
		if len(d.Dependencies) > 0 {
			value, _ = l.get(d.Dependencies[0])
		}
	case schema.Array:
		items := make([]any, 0, len(d.Dependencies))
		for _, dep := range d.Dependencies {
			if d.InnerType == schema.Number {
				items = append(items, number(dep))
				continue
			}
			v, _ := l.get(dep)
			items = append(items, v)
		}
		value = items
	case schema.VariableList:
		m := NewTheme()
		for _, dep := range d.Dependencies {
			v, _ := l.get(dep)
			m.Set(resolver.CamelCase(dep), v)
		}
		value = m
	case schema.ColorFunction:
		value, err = p.call(schema.MethodColor, l.interpolate(raw, d.Dependencies))
	case schema.Function:
		args := make([]string, len(d.Dependencies))
		for i, dep := range d.Dependencies {
			v, _ := l.get(dep)
			args[i] = text(v)
		}
		value, err = p.call(raw, args...)
	case schema.Expression:
		items := d.Value.Items()
		fragments := make([]string, len(items))
		for i, item := range items {
			fragments[i] = l.interpolate(item, d.Dependencies)
		}
		value, err = p.call(schema.MethodEvaluate, fragments...)
	default:
		err = fmt.Errorf("cannot realise type %s", d.Type)
	}

	return value, multierr.Append(l.missing, err)
}

// call runs an injected method. Unknown methods leave the call as text.
func (p *Previewer) call(method string, args ...string) (string, error) {
	fn, ok := p.methods[method]
	if !ok {
		p.log.Warn("no implementation for injected method", zap.String("method", method))
		return method + "(" + strings.Join(args, ", ") + ")", nil
	}
	out, err := fn(args...)
	if err != nil {
		// keep something printable in the theme
		return method + "(" + strings.Join(args, ", ") + ")", err
	}
	return out, nil
}

func number(s string) any {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
