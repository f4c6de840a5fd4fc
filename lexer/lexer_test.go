package lexer

import (
	"testing"

	"github.com/skx/lirbf/token"
	"github.com/stretchr/testify/require"
)

func collect(input string) []token.Token {
	l := New(input)
	var out []token.Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Type == token.EOF || tok.Type == token.ERROR {
			break
		}
	}
	return out
}

func TestKeywordsAndIdents(t *testing.T) {
	toks := collect("copy a b")
	require.Len(t, toks, 4)
	require.Equal(t, token.Type(token.COPY), toks[0].Type)
	require.Equal(t, token.Type(token.IDENT), toks[1].Type)
	require.Equal(t, "a", toks[1].Literal)
	require.Equal(t, token.Type(token.IDENT), toks[2].Type)
	require.Equal(t, "b", toks[2].Literal)
	require.Equal(t, token.Type(token.EOF), toks[3].Type)
}

func TestIntLiteral(t *testing.T) {
	toks := collect("set x 65")
	require.Equal(t, token.Type(token.INT), toks[2].Type)
	require.Equal(t, "65", toks[2].Literal)
}

func TestCharLiteral(t *testing.T) {
	toks := collect("set x 'A'")
	require.Equal(t, token.Type(token.CHAR), toks[2].Type)
	require.Equal(t, "A", toks[2].Literal)
}

func TestStringLiteralEscapes(t *testing.T) {
	toks := collect(`print_msg "hi\n\t\"there\""`)
	require.Equal(t, token.Type(token.STRING), toks[1].Type)
	require.Equal(t, "hi\n\t\"there\"", toks[1].Literal)
}

func TestLineComment(t *testing.T) {
	toks := collect("inc a // bump a\ndec a")
	require.Equal(t, token.Type(token.INC), toks[0].Type)
	require.Equal(t, token.Type(token.IDENT), toks[1].Type)
	require.Equal(t, token.Type(token.DEC), toks[2].Type)
}

func TestLineNumbers(t *testing.T) {
	toks := collect("inc a\ninc b\ninc c")
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 3, toks[4].Line)
}

func TestUnterminatedCharLiteral(t *testing.T) {
	toks := collect("set x '")
	require.Equal(t, token.Type(token.ERROR), toks[len(toks)-1].Type)
}

func TestUnterminatedStringLiteral(t *testing.T) {
	toks := collect(`print_msg "oops`)
	require.Equal(t, token.Type(token.ERROR), toks[len(toks)-1].Type)
}

func TestUnexpectedCharacter(t *testing.T) {
	toks := collect("copy a $")
	require.Equal(t, token.Type(token.ERROR), toks[len(toks)-1].Type)
}
