package preview

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"bennypowers.dev/sass2ts/internal/schema"
	"github.com/expr-lang/expr"
	"github.com/mazznoer/csscolorparser"
)

// Method realises an injected function from the realised text of its
// arguments.
type Method func(args ...string) (string, error)

// Methods maps injected function names to their implementations
type Methods map[string]Method

// DefaultMethods returns the built-in evaluate and color methods
func DefaultMethods() Methods {
	return Methods{
		schema.MethodEvaluate: Evaluate,
		schema.MethodColor:    Color,
	}
}

// With returns a copy of m extended with other. Entries in other win.
func (m Methods) With(other Methods) Methods {
	out := make(Methods, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

var (
	quantity   = regexp.MustCompile(`(\d*\.?\d+)([a-zA-Z]+|%)`)
	arithmetic = regexp.MustCompile(`^[\d\s.+\-*/%()]+$`)
	operators  = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}
)

// Join renders expression fragments as CSS text. Commas stick to the
// fragment before them.
func Join(fragments []string) string {
	var b strings.Builder
	for i, f := range fragments {
		if i > 0 && !strings.HasPrefix(f, ",") {
			b.WriteByte(' ')
		}
		b.WriteString(f)
	}
	return b.String()
}

// Evaluate computes arithmetic over CSS quantities of a single unit, e.g.
// "960px + (2 * 64px)" becomes "1088px". Anything else, such as a shadow
// or a font stack, is returned as joined text.
func Evaluate(fragments ...string) (string, error) {
	text := Join(fragments)
	if !hasOperator(fragments) {
		return text, nil
	}

	units := map[string]bool{}
	source := quantity.ReplaceAllStringFunc(text, func(q string) string {
		m := quantity.FindStringSubmatch(q)
		units[m[2]] = true
		return m[1]
	})
	if len(units) > 1 || !arithmetic.MatchString(source) {
		return text, nil
	}

	program, err := expr.Compile(source, expr.AsFloat64())
	if err != nil {
		return text, nil //nolint:nilerr // not arithmetic after all
	}
	out, err := expr.Run(program, nil)
	if err != nil {
		return "", fmt.Errorf("evaluating %q: %w", text, err)
	}

	result := strconv.FormatFloat(out.(float64), 'f', -1, 64)
	for unit := range units {
		result += unit
	}
	return result, nil
}

func hasOperator(fragments []string) bool {
	for _, f := range fragments {
		if strings.HasPrefix(f, ",") {
			return false
		}
	}
	for _, f := range fragments {
		if operators[f] {
			return true
		}
	}
	return false
}

var withAlpha = regexp.MustCompile(`^(?:rgba?|hsla?)\(\s*(.+?)\s*,\s*([\d.]+%?)\s*\)$`)

// Color normalises a CSS color to a hex string. The Sass shorthand
// rgba(<color>, <alpha>) is accepted as well.
func Color(args ...string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, ", "))
	c, err := csscolorparser.Parse(text)
	if err == nil {
		return c.HexString(), nil
	}

	m := withAlpha.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("invalid color %q: %w", text, err)
	}
	base, berr := csscolorparser.Parse(m[1])
	if berr != nil {
		return "", fmt.Errorf("invalid color %q: %w", text, err)
	}
	alpha, aerr := parseAlpha(m[2])
	if aerr != nil {
		return "", fmt.Errorf("invalid alpha in %q: %w", text, aerr)
	}
	base.A = alpha
	return base.HexString(), nil
}

func parseAlpha(s string) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		return v / 100, err
	}
	return strconv.ParseFloat(s, 64)
}
