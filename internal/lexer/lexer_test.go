package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/latchlang/latch/internal/token"
)

func tokenTypes(toks []token.Token) []token.Type {
	types := make([]token.Type, 0, len(toks))
	for _, t := range toks {
		types = append(types, t.Type)
	}
	return types
}

func TestLexer_Operators(t *testing.T) {
	tests := []struct {
		Src      string
		Expected []token.Type
	}{
		{"x := 1", []token.Type{token.IDENT, token.DEFINE, token.INT, token.EOF}},
		{"a += 2", []token.Type{token.IDENT, token.PLUS_EQ, token.INT, token.EOF}},
		{"a ?. b ?? c", []token.Type{token.IDENT, token.SAFE_DOT, token.IDENT, token.NULL_COALESCE, token.IDENT, token.EOF}},
		{"a |> b(c)", []token.Type{token.IDENT, token.PIPE, token.IDENT, token.LPAREN, token.IDENT, token.RPAREN, token.EOF}},
	}
	for _, tt := range tests {
		l := New(tt.Src)
		got := l.ConsumeAll()
		assert.Equal(t, tt.Expected, tokenTypes(got), tt.Src)
	}
}

func TestLexer_RangeVsFloat(t *testing.T) {
	l := New("1..10")
	toks := l.ConsumeAll()
	assert.Equal(t, []token.Type{token.INT, token.DOTDOT, token.INT, token.EOF}, tokenTypes(toks))
	assert.Equal(t, "1", toks[0].Literal)
	assert.Equal(t, "10", toks[2].Literal)

	l2 := New("1.5")
	toks2 := l2.ConsumeAll()
	assert.Equal(t, []token.Type{token.FLOAT, token.EOF}, tokenTypes(toks2))
	assert.Equal(t, "1.5", toks2[0].Literal)
}

func TestLexer_NewlineCollapse(t *testing.T) {
	l := New("x := 1\n\n\n# comment\n\ny := 2")
	toks := l.ConsumeAll()
	assert.Equal(t, []token.Type{
		token.IDENT, token.DEFINE, token.INT, token.NEWLINE,
		token.IDENT, token.DEFINE, token.INT, token.EOF,
	}, tokenTypes(toks))
}

func TestLexer_Comments(t *testing.T) {
	l := New("x := 1 // trailing\n// whole line\ny := 2")
	toks := l.ConsumeAll()
	assert.Equal(t, []token.Type{
		token.IDENT, token.DEFINE, token.INT, token.NEWLINE,
		token.IDENT, token.DEFINE, token.INT, token.EOF,
	}, tokenTypes(toks))
}

func TestLexer_StringEscapes(t *testing.T) {
	l := New(`"a\nb\t\"c\""`)
	toks := l.ConsumeAll()
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "a\nb\t\"c\"", toks[0].Literal)
}

func TestLexer_StringInterpolation(t *testing.T) {
	l := New(`"hi ${1+2}!"`)
	toks := l.ConsumeAll()
	assert.Equal(t, token.INTERP_STR, toks[0].Type)
	assert.Len(t, toks[0].Fragments, 3)
	assert.Equal(t, "hi ", toks[0].Fragments[0].Text)
	assert.True(t, toks[0].Fragments[1].IsExpr)
	assert.Equal(t, "1+2", toks[0].Fragments[1].Text)
	assert.Equal(t, "!", toks[0].Fragments[2].Text)
}

func TestLexer_PlainStringNoInterp(t *testing.T) {
	l := New(`"no holes here"`)
	toks := l.ConsumeAll()
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "no holes here", toks[0].Literal)
}

func TestLexer_UnterminatedString(t *testing.T) {
	l := New(`"oops`)
	tok := l.NextToken()
	assert.Equal(t, token.ILLEGAL, tok.Type)
}

func TestLexer_Keywords(t *testing.T) {
	l := New("if else for in parallel workers fn return try catch finally use or stop null true false const yield while break continue")
	toks := l.ConsumeAll()
	expected := []token.Type{
		token.IF, token.ELSE, token.FOR, token.IN, token.PARALLEL, token.WORKERS,
		token.FN, token.RETURN, token.TRY, token.CATCH, token.FINALLY, token.USE,
		token.OR_KW, token.STOP, token.NULL, token.TRUE, token.FALSE, token.CONST,
		token.YIELD, token.WHILE, token.BREAK, token.CONTINUE, token.EOF,
	}
	assert.Equal(t, expected, tokenTypes(toks))
}

func TestLexer_LineColTracking(t *testing.T) {
	l := New("x\ny")
	first := l.NextToken()
	assert.Equal(t, 1, first.Line)
	_ = l.NextToken() // newline
	third := l.NextToken()
	assert.Equal(t, 2, third.Line)
}
