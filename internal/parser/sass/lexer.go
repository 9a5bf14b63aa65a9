package sass

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt    css.TokenType
	text  string
	start int
}

func (t token) end() int {
	return t.start + len(t.text)
}

func (t token) is(tt css.TokenType, text string) bool {
	return t.tt == tt && t.text == text
}

type span struct {
	start, end int
}

// blankLineComments replaces every // comment with spaces, leaving offsets
// and newlines intact, because the CSS lexer has no notion of them. Strings,
// url() bodies and block comments are skipped.
func blankLineComments(src []byte) ([]byte, []span) {
	out := bytes.Clone(src)
	var comments []span
	for i := 0; i < len(out); i++ {
		switch c := out[i]; {
		case c == '"' || c == '\'':
			i = skipString(out, i)
		case c == '/' && i+1 < len(out) && out[i+1] == '*':
			end := bytes.Index(out[i+2:], []byte("*/"))
			if end < 0 {
				return out, comments
			}
			i += end + 3
		case c == '/' && i+1 < len(out) && out[i+1] == '/':
			end := bytes.IndexByte(out[i:], '\n')
			if end < 0 {
				end = len(out) - i
			}
			comments = append(comments, span{i, i + end})
			for j := i; j < i+end; j++ {
				if out[j] != '\r' {
					out[j] = ' '
				}
			}
			i += end
		case (c == 'u' || c == 'U') && hasURLPrefix(out[i:]):
			if end := bytes.IndexByte(out[i:], ')'); end > 0 {
				i += end
			}
		}
	}
	return out, comments
}

func skipString(b []byte, i int) int {
	quote := b[i]
	for j := i + 1; j < len(b); j++ {
		switch b[j] {
		case '\\':
			j++
		case quote, '\n':
			return j
		}
	}
	return len(b)
}

func hasURLPrefix(b []byte) bool {
	return len(b) >= 4 && strings.EqualFold(string(b[:4]), "url(")
}

// tokenize runs the CSS lexer over src. Token offsets index into src.
func tokenize(src []byte) ([]token, error) {
	l := css.NewLexer(parse.NewInput(bytes.NewReader(src)))
	var toks []token
	offset := 0
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				return toks, err
			}
			return toks, nil
		}
		toks = append(toks, token{tt: tt, text: string(data), start: offset})
		offset += len(data)
	}
}
