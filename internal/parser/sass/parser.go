// Package sass builds a query tree from indented Sass or SCSS source. Only
// the shape needed to inspect variable declarations is modelled; selectors,
// rule bodies and at-rules are kept as opaque nodes so they can be pruned.
package sass

import (
	"fmt"
	"sort"
	"strings"

	"bennypowers.dev/sass2ts/internal/position"
	"bennypowers.dev/sass2ts/internal/query"
	"bennypowers.dev/sass2ts/internal/schema"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser turns Sass source into a query tree. A Parser holds no per-call
// state and is safe for concurrent use.
type Parser struct {
	log      *zap.Logger
	filename string
	prune    bool
}

// Option configures a Parser
type Option func(*Parser)

// WithLogger sets the logger used for skipped tokens
func WithLogger(log *zap.Logger) Option {
	return func(p *Parser) {
		if log != nil {
			p.log = log
		}
	}
}

// WithFilename names the source in syntax errors
func WithFilename(name string) Option {
	return func(p *Parser) {
		p.filename = name
	}
}

// WithoutPruning keeps DiscardedTypes in the returned tree
func WithoutPruning() Option {
	return func(p *Parser) {
		p.prune = false
	}
}

// NewParser creates a Sass parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		log:   zap.NewNop(),
		prune: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses src with a default parser
func Parse(src []byte) (*query.Node, error) {
	return NewParser().Parse(src)
}

// Parse builds the tree for src. Unless WithoutPruning was given, the nodes
// listed in DiscardedTypes are removed before returning.
func (p *Parser) Parse(src []byte) (*query.Node, error) {
	blanked, comments := blankLineComments(src)
	toks, err := tokenize(blanked)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize %s: %w", p.name(), err)
	}

	b := &builder{
		p:   p,
		src: string(blanked),
		idx: position.NewIndex(string(src)),
	}

	stmts, err := b.split(toks)
	if err != nil {
		return nil, err
	}

	root := query.NewNode(TypeStylesheet)
	root.Text = string(src)
	root.Range = b.idx.Range(0, len(src))
	b.nest(root, stmts)
	b.attachComments(root, string(src), comments)

	p.log.Debug("parsed stylesheet",
		zap.String("file", p.name()),
		zap.Int("statements", len(stmts)),
		zap.Int("lineComments", len(comments)))

	if p.prune {
		query.Prune(root, DiscardedTypes...)
	}
	return root, nil
}

func (p *Parser) name() string {
	if p.filename == "" {
		return "<input>"
	}
	return p.filename
}

type statement struct {
	toks   []token
	indent int
}

type opener struct {
	tok   token
	block bool
}

type builder struct {
	p   *Parser
	src string
	idx *position.Index
}

func (b *builder) syntaxError(offset int, format string, args ...any) error {
	pos := b.idx.Position(offset)
	return schema.NewSyntaxError(b.p.filename, pos.Line, pos.Column, fmt.Sprintf(format, args...))
}

// split groups tokens into statements. A statement ends at a newline or ';'
// outside any brackets, or after a closing '}' of a block.
func (b *builder) split(toks []token) ([]statement, error) {
	var (
		stmts  []statement
		cur    []token
		stack  []opener
		indent int
		start  int
	)

	flush := func() {
		for len(cur) > 0 && cur[len(cur)-1].tt == css.WhitespaceToken {
			cur = cur[:len(cur)-1]
		}
		if len(cur) > 0 {
			stmts = append(stmts, statement{toks: cur, indent: start})
		}
		cur = nil
	}

	lineStart := true
	for _, t := range toks {
		switch {
		case t.tt == css.WhitespaceToken && len(stack) == 0 && strings.Contains(t.text, "\n"):
			flush()
			indent = indentWidth(t.text[strings.LastIndexByte(t.text, '\n')+1:])
			lineStart = false
			continue
		case t.tt == css.WhitespaceToken && len(cur) == 0:
			if lineStart {
				indent = indentWidth(t.text)
			}
			lineStart = false
			continue
		case (t.tt == css.BadStringToken || t.tt == css.BadURLToken) && len(stack) == 0 && strings.HasSuffix(t.text, "\n"):
			// the lexer swallows the newline that ends an unterminated string
			b.p.log.Warn("skipping malformed token",
				zap.String("file", b.p.name()),
				zap.String("token", strings.TrimSpace(t.text)),
				zap.Stringer("at", b.idx.Position(t.start)))
			flush()
			indent = 0
			lineStart = true
			continue
		case t.tt == css.SemicolonToken && len(stack) == 0:
			flush()
			continue
		case t.tt == css.CommentToken && len(stack) == 0 && len(cur) == 0:
			stmts = append(stmts, statement{toks: []token{t}, indent: indent})
			continue
		}

		lineStart = false
		if len(cur) == 0 {
			start = indent
		}
		cur = append(cur, t)

		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			stack = append(stack, opener{tok: t})
		case css.LeftBraceToken:
			interpolation := len(cur) > 1 && cur[len(cur)-2].is(css.DelimToken, "#")
			stack = append(stack, opener{tok: t, block: !interpolation})
		case css.RightParenthesisToken, css.RightBracketToken, css.RightBraceToken:
			if len(stack) == 0 {
				return nil, b.syntaxError(t.start, "unexpected %q", t.text)
			}
			top := stack[len(stack)-1]
			if !closes(top.tok.tt, t.tt) {
				return nil, b.syntaxError(t.start, "unexpected %q, %q is still open", t.text, top.tok.text)
			}
			stack = stack[:len(stack)-1]
			if top.block && len(stack) == 0 {
				flush()
			}
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return nil, b.syntaxError(top.tok.start, "unclosed %q", top.tok.text)
	}
	flush()
	return stmts, nil
}

func closes(open, closer css.TokenType) bool {
	switch open {
	case css.FunctionToken, css.LeftParenthesisToken:
		return closer == css.RightParenthesisToken
	case css.LeftBracketToken:
		return closer == css.RightBracketToken
	case css.LeftBraceToken:
		return closer == css.RightBraceToken
	}
	return false
}

func indentWidth(ws string) int {
	return len(strings.TrimRight(ws, "\r"))
}

type frame struct {
	indent int
	node   *query.Node
}

// nest attaches each statement to the closest preceding header that is
// indented less than it. Anything under a selector, mixin or at-rule is
// therefore removed together with it.
func (b *builder) nest(root *query.Node, stmts []statement) {
	var stack []frame
	for _, s := range stmts {
		node := b.statement(s)
		for len(stack) > 0 && stack[len(stack)-1].indent >= s.indent {
			stack = stack[:len(stack)-1]
		}
		parent := root
		if len(stack) > 0 {
			parent = stack[len(stack)-1].node
		}
		parent.Append(node)
		if node.Type != TypeMultilineComment && node.Type != TypeDeclaration {
			stack = append(stack, frame{indent: s.indent, node: node})
		}
	}
}

func (b *builder) statement(s statement) *query.Node {
	toks := s.toks
	first := toks[0]

	if isVariableDeclaration(toks) {
		return b.declaration(toks)
	}

	var typ string
	switch {
	case first.tt == css.CommentToken && len(toks) == 1:
		return b.leaf(TypeMultilineComment, strings.TrimSuffix(strings.TrimPrefix(first.text, "/*"), "*/"), first)
	case first.tt == css.AtKeywordToken:
		switch strings.ToLower(first.text) {
		case "@mixin":
			typ = TypeMixin
		case "@include":
			typ = TypeInclude
		default:
			typ = TypeAtrule
		}
	case first.is(css.DelimToken, "="):
		typ = TypeMixin
	case first.is(css.DelimToken, "+"):
		typ = TypeInclude
	default:
		typ = TypeRuleset
	}

	n := query.NewLeaf(typ, first.text, "")
	b.span(n, first.start, toks[len(toks)-1].end())
	return n
}

// isVariableDeclaration matches `$name:` at the start of a statement
func isVariableDeclaration(toks []token) bool {
	if len(toks) < 3 || !toks[0].is(css.DelimToken, "$") || toks[1].tt != css.IdentToken {
		return false
	}
	for _, t := range toks[2:] {
		switch t.tt {
		case css.WhitespaceToken:
			continue
		case css.ColonToken:
			return true
		default:
			return false
		}
	}
	return false
}

func (b *builder) declaration(toks []token) *query.Node {
	decl := query.NewNode(TypeDeclaration)
	b.span(decl, toks[0].start, toks[len(toks)-1].end())

	variable := b.variable(toks[0], toks[1])
	property := query.NewNode(TypeProperty, variable)
	b.span(property, toks[0].start, toks[1].end())
	decl.Append(property)

	i := 2
	for ; toks[i].tt != css.ColonToken; i++ {
		decl.Append(b.leaf(TypeSpace, toks[i].text, toks[i]))
	}
	decl.Append(b.leaf(TypePropertyDelimiter, ":", toks[i]))
	i++
	if i < len(toks) && toks[i].tt == css.WhitespaceToken {
		decl.Append(b.leaf(TypeSpace, toks[i].text, toks[i]))
		i++
	}

	value := query.NewNode(TypeValue)
	if i < len(toks) {
		vp := &valueParser{b: b, toks: toks[i:]}
		value.Append(vp.items(css.ErrorToken, false)...)
		b.span(value, toks[i].start, toks[len(toks)-1].end())
	}
	decl.Append(value)
	return decl
}

func (b *builder) variable(dollar, ident token) *query.Node {
	n := query.NewNode(TypeVariable, b.leaf(TypeIdent, ident.text, ident))
	b.span(n, dollar.start, ident.end())
	return n
}

func (b *builder) leaf(typ, content string, t token) *query.Node {
	n := query.NewLeaf(typ, content, "")
	b.span(n, t.start, t.end())
	return n
}

func (b *builder) span(n *query.Node, start, end int) {
	n.Text = b.src[start:end]
	n.Range = b.idx.Range(start, end)
}

// attachComments adds the // comments removed before lexing as top-level
// nodes, in document order.
func (b *builder) attachComments(root *query.Node, src string, comments []span) {
	if len(comments) == 0 {
		return
	}
	for _, c := range comments {
		text := src[c.start:c.end]
		n := query.NewLeaf(TypeSinglelineComment, strings.TrimPrefix(text, "//"), text)
		n.Range = b.idx.Range(c.start, c.end)
		root.Append(n)
	}
	sort.SliceStable(root.Children, func(i, j int) bool {
		a, c := root.Children[i].Range.Start, root.Children[j].Range.Start
		if a.Line != c.Line {
			return a.Line < c.Line
		}
		return a.Column < c.Column
	})
}
