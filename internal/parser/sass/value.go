package sass

import (
	"strings"

	"bennypowers.dev/sass2ts/internal/query"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// valueParser turns the tokens right of a declaration's ':' into value
// nodes. The statement splitter has already checked bracket balance.
type valueParser struct {
	b    *builder
	toks []token
	pos  int
}

func (v *valueParser) peek(offset int) (token, bool) {
	i := v.pos + offset
	if i >= len(v.toks) {
		return token{}, false
	}
	return v.toks[i], true
}

// items parses until the closer token type, which is left unconsumed. Inside
// a container commas separate arguments and become delimiters; at the top
// level they are operators.
func (v *valueParser) items(closer css.TokenType, container bool) []*query.Node {
	var out []*query.Node
	for v.pos < len(v.toks) {
		t := v.toks[v.pos]
		if t.tt == closer {
			return out
		}

		switch t.tt {
		case css.WhitespaceToken:
			out = append(out, v.b.leaf(TypeSpace, t.text, t))
		case css.NumberToken:
			out = append(out, v.b.leaf(TypeNumber, t.text, t))
		case css.PercentageToken:
			n := query.NewNode(TypePercentage, v.b.leaf(TypeNumber, strings.TrimSuffix(t.text, "%"), token{tt: css.NumberToken, text: strings.TrimSuffix(t.text, "%"), start: t.start}))
			v.b.span(n, t.start, t.end())
			out = append(out, n)
		case css.DimensionToken:
			out = append(out, v.dimension(t))
		case css.HashToken:
			out = append(out, v.b.leaf(TypeColor, strings.TrimPrefix(t.text, "#"), t))
		case css.StringToken:
			out = append(out, v.b.leaf(TypeString, t.text, t))
		case css.URLToken:
			out = append(out, v.b.leaf(TypeURI, t.text, t))
		case css.IdentToken:
			out = append(out, v.b.leaf(TypeIdent, t.text, t))
		case css.CommentToken:
			out = append(out, v.b.leaf(TypeMultilineComment, t.text, t))
		case css.FunctionToken:
			out = append(out, v.function(t))
			continue
		case css.LeftParenthesisToken:
			out = append(out, v.container(TypeParentheses, t, css.RightParenthesisToken))
			continue
		case css.LeftBracketToken:
			out = append(out, v.container(TypeBrackets, t, css.RightBracketToken))
			continue
		case css.LeftBraceToken:
			out = append(out, v.container(TypeBlock, t, css.RightBraceToken))
			continue
		case css.CommaToken, css.SemicolonToken:
			if container {
				out = append(out, v.b.leaf(TypeDelimiter, t.text, t))
			} else {
				out = append(out, v.b.leaf(TypeOperator, t.text, t))
			}
		case css.ColonToken:
			out = append(out, v.b.leaf(TypeOperator, t.text, t))
		case css.DelimToken:
			if n, ok := v.delim(t, &out); ok {
				if n != nil {
					out = append(out, n)
				}
				continue
			}
			out = append(out, v.b.leaf(delimType(t.text), t.text, t))
		case css.BadStringToken, css.BadURLToken:
			v.b.p.log.Warn("skipping malformed token",
				zap.String("file", v.b.p.name()),
				zap.String("token", t.text),
				zap.Stringer("at", v.b.idx.Position(t.start)))
		default:
			out = append(out, v.b.leaf(TypeOperator, t.text, t))
		}
		v.pos++
	}
	return out
}

// delim handles the two-token forms $name, #{...} and !flag. It reports
// false when t is a plain delimiter; the returned node may be nil when the
// tokens were consumed without producing one.
func (v *valueParser) delim(t token, out *[]*query.Node) (*query.Node, bool) {
	next, ok := v.peek(1)
	if !ok {
		return nil, false
	}
	switch {
	case t.text == "$" && next.tt == css.IdentToken:
		v.pos += 2
		return v.b.variable(t, next), true
	case t.text == "#" && next.tt == css.LeftBraceToken:
		v.pos++
		n := v.container(TypeInterpolation, next, css.RightBraceToken)
		v.b.span(n, t.start, v.toks[v.pos-1].end())
		return n, true
	case t.text == "!" && next.tt == css.IdentToken:
		v.pos += 2
		// the space before a flag is not part of the value
		for len(*out) > 0 && (*out)[len(*out)-1].Type == TypeSpace {
			*out = (*out)[:len(*out)-1]
		}
		typ := TypeDefault
		if strings.EqualFold(next.text, "important") {
			typ = TypeImportant
		}
		n := query.NewLeaf(typ, strings.ToLower(next.text), "")
		v.b.span(n, t.start, next.end())
		return n, true
	}
	return nil, false
}

func delimType(text string) string {
	switch text {
	case "+", "-", "*", "/", "%", "=", "<", ">":
		return TypeOperator
	}
	return TypeDelimiter
}

// container parses an opener, its contents and the matching closer, which
// is consumed.
func (v *valueParser) container(typ string, open token, closer css.TokenType) *query.Node {
	v.pos++
	n := query.NewNode(typ, v.items(closer, true)...)
	end := open.end()
	if v.pos < len(v.toks) {
		end = v.toks[v.pos].end()
		v.pos++
	}
	v.b.span(n, open.start, end)
	return n
}

func (v *valueParser) function(t token) *query.Node {
	name := strings.TrimSuffix(t.text, "(")
	ident := query.NewLeaf(TypeIdent, name, "")
	v.b.span(ident, t.start, t.start+len(name))

	v.pos++
	args := query.NewNode(TypeArguments, v.items(css.RightParenthesisToken, true)...)
	argEnd, end := t.end(), t.end()
	if v.pos < len(v.toks) {
		argEnd, end = v.toks[v.pos].start, v.toks[v.pos].end()
		v.pos++
	}
	// arguments span only the text between the parentheses
	v.b.span(args, t.end(), argEnd)

	fn := query.NewNode(TypeFunction, ident, args)
	v.b.span(fn, t.start, end)
	return fn
}

func (v *valueParser) dimension(t token) *query.Node {
	num, unit := splitDimension(t.text)
	n := query.NewNode(TypeDimension,
		v.b.leaf(TypeNumber, num, token{tt: css.NumberToken, text: num, start: t.start}),
		v.b.leaf(TypeIdent, unit, token{tt: css.IdentToken, text: unit, start: t.start + len(num)}))
	v.b.span(n, t.start, t.end())
	return n
}

// splitDimension separates "-0.375em" into "-0.375" and "em"
func splitDimension(s string) (string, string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && (isDigit(s[i]) || s[i] == '.') {
		i++
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for i = j; i < len(s) && isDigit(s[i]); i++ {
			}
		}
	}
	return s[:i], s[i:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
