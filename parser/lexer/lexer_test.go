package lexer

import (
	"strings"
	"testing"

	"github.com/opensdraw/lcad/parser/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testToken struct {
	typ  token.Type
	text string
	line int
	col  int
}

func lexAll(t *testing.T, source string) []*token.Token {
	lex := New(token.NewScanner("test", strings.NewReader(source)))
	var toks []*token.Token
	for i := 0; i < 1000; i++ {
		tok := lex.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF || tok.Type == token.ERROR {
			return toks
		}
	}
	t.Fatalf("lexer did not terminate")
	return nil
}

func TestLexer(t *testing.T) {
	tests := []struct {
		name   string
		source string
		tokens []testToken
	}{
		{"empty", "", []testToken{
			{token.EOF, "", 1, 1},
		}},
		{"parens", "()", []testToken{
			{token.PAREN_L, "(", 1, 1},
			{token.PAREN_R, ")", 1, 2},
			{token.EOF, "", 1, 3},
		}},
		{"call", "(def x 3)", []testToken{
			{token.PAREN_L, "(", 1, 1},
			{token.SYMBOL, "def", 1, 2},
			{token.SYMBOL, "x", 1, 6},
			{token.INT, "3", 1, 8},
			{token.PAREN_R, ")", 1, 9},
			{token.EOF, "", 1, 10},
		}},
		{"numbers", "1 -2 +3 1.5 -0.25 .5 1e3 - + 1.2.3", []testToken{
			{token.INT, "1", 1, 1},
			{token.INT, "-2", 1, 3},
			{token.INT, "+3", 1, 6},
			{token.FLOAT, "1.5", 1, 9},
			{token.FLOAT, "-0.25", 1, 13},
			{token.FLOAT, ".5", 1, 19},
			{token.FLOAT, "1e3", 1, 22},
			{token.SYMBOL, "-", 1, 26},
			{token.SYMBOL, "+", 1, 28},
			{token.SYMBOL, "1.2.3", 1, 30},
			{token.EOF, "", 1, 35},
		}},
		{"symbols", "<= mod1:fn :color step-offset", []testToken{
			{token.SYMBOL, "<=", 1, 1},
			{token.SYMBOL, "mod1:fn", 1, 4},
			{token.SYMBOL, ":color", 1, 12},
			{token.SYMBOL, "step-offset", 1, 19},
			{token.EOF, "", 1, 30},
		}},
		{"strings", `"abc" "a\"b" ""`, []testToken{
			{token.STRING, `"abc"`, 1, 1},
			{token.STRING, `"a\"b"`, 1, 7},
			{token.STRING, `""`, 1, 14},
			{token.EOF, "", 1, 16},
		}},
		{"comments", "; leading\n(f) ; trailing\n  x", []testToken{
			{token.PAREN_L, "(", 2, 1},
			{token.SYMBOL, "f", 2, 2},
			{token.PAREN_R, ")", 2, 3},
			{token.SYMBOL, "x", 3, 3},
			{token.EOF, "", 3, 4},
		}},
		{"atoms end at delimiters", `(a"s")b;c`, []testToken{
			{token.PAREN_L, "(", 1, 1},
			{token.SYMBOL, "a", 1, 2},
			{token.STRING, `"s"`, 1, 3},
			{token.PAREN_R, ")", 1, 6},
			{token.SYMBOL, "b", 1, 7},
			{token.EOF, "", 1, 10},
		}},
		{"multiline", "(a\n  (b\n    c))", []testToken{
			{token.PAREN_L, "(", 1, 1},
			{token.SYMBOL, "a", 1, 2},
			{token.PAREN_L, "(", 2, 3},
			{token.SYMBOL, "b", 2, 4},
			{token.SYMBOL, "c", 3, 5},
			{token.PAREN_R, ")", 3, 6},
			{token.PAREN_R, ")", 3, 7},
			{token.EOF, "", 3, 8},
		}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			toks := lexAll(t, test.source)
			require.Len(t, toks, len(test.tokens))
			for i, tok := range toks {
				expect := test.tokens[i]
				assert.Equal(t, expect.typ, tok.Type, "token %d", i)
				assert.Equal(t, expect.text, tok.Text, "token %d", i)
				assert.Equal(t, expect.line, tok.Source.Line, "token %d line", i)
				assert.Equal(t, expect.col, tok.Source.Col, "token %d column", i)
			}
		})
	}
}

func TestLexer_unterminatedString(t *testing.T) {
	for _, source := range []string{
		`(print "abc`,
		"(print \"abc\n\")",
	} {
		lex := New(token.NewScanner("test", strings.NewReader(source)))
		var tok *token.Token
		for tok = lex.NextToken(); tok.Type != token.ERROR && tok.Type != token.EOF; tok = lex.NextToken() {
		}
		require.Equal(t, token.ERROR, tok.Type, source)
		require.NotNil(t, lex.Err())
		assert.Equal(t, "unterminated string literal", lex.Err().Reason)
		assert.Equal(t, 1, lex.Err().Source.Line)
		assert.Equal(t, 8, lex.Err().Source.Col)
		// the error is sticky
		assert.Equal(t, token.ERROR, lex.NextToken().Type)
	}
}
