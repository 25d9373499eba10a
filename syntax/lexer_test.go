package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysc/ast"
	"sysc/report"
)

// lexAll reads every token from the given source text the way the parser
// does: the first read starts a new line, subsequent reads assume adjacency
// until the lexer clears it.
func lexAll(t *testing.T, text string) []*Token {
	t.Helper()

	l := NewLexer(NewSourceCursor(text))

	var tokens []*Token
	_, tok := l.ReadToken(true, true)
	for tok != nil {
		tokens = append(tokens, tok)
		_, tok = l.ReadToken(true, false)
	}

	return tokens
}

// lexError runs the lexer over the text and returns the compile error it
// raises.
func lexError(t *testing.T, text string) *report.LocalCompileError {
	t.Helper()

	var cerr *report.LocalCompileError
	func() {
		defer func() {
			x := recover()
			require.NotNil(t, x, "expected a lexical error")

			var ok bool
			cerr, ok = x.(*report.LocalCompileError)
			require.True(t, ok, "expected a compile error, got %v", x)
		}()

		lexAll(t, text)
	}()

	return cerr
}

func kindsOf(tokens []*Token) []int {
	kinds := make([]int, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}

	return kinds
}

// -----------------------------------------------------------------------------

func TestLexDigits(t *testing.T) {
	tokens := lexAll(t, "12_3e+4x")

	require.Len(t, tokens, 1)
	assert.Equal(t, TOK_DIGITS, tokens[0].Kind)
	assert.Equal(t, "123e+4x", tokens[0].Value)
}

func TestLexDigitsSignEndsLiteral(t *testing.T) {
	// The sign is only part of the literal directly after an exponent marker.
	tokens := lexAll(t, "3-2")

	require.Equal(t, []int{TOK_DIGITS, TOK_MINUS, TOK_DIGITS}, kindsOf(tokens))
	assert.Equal(t, "3", tokens[0].Value)
	assert.Equal(t, "2", tokens[2].Value)

	tokens = lexAll(t, "3e-2")
	require.Len(t, tokens, 1)
	assert.Equal(t, "3e-2", tokens[0].Value)
}

func TestLexDigitsNeverIncludeDot(t *testing.T) {
	tokens := lexAll(t, "3.5")

	require.Equal(t, []int{TOK_DIGITS, TOK_DOT, TOK_DIGITS}, kindsOf(tokens))
	assert.True(t, tokens[1].IsAdjacent)
	assert.True(t, tokens[2].IsAdjacent)
}

func TestLexKeywordsAndIdents(t *testing.T) {
	tokens := lexAll(t, "while whiles _ _x")

	require.Equal(t, []int{TOK_WHILE, TOK_IDENT, TOK_UNDERSCORE, TOK_IDENT}, kindsOf(tokens))
	assert.Equal(t, "whiles", tokens[1].Value)
	assert.Equal(t, "_x", tokens[3].Value)
}

func TestLexLongestMatchOperators(t *testing.T) {
	tokens := lexAll(t, ">>= >> >= > -> --x\n<<=")

	require.Equal(t, []int{TOK_RSHIFTEQ, TOK_RSHIFT, TOK_GTEQ, TOK_GT, TOK_ARROW, TOK_LSHIFTEQ}, kindsOf(tokens))
}

func TestLexAdjacencyAndNewLineFlags(t *testing.T) {
	tokens := lexAll(t, "a.b\nc")

	require.Len(t, tokens, 4)
	assert.True(t, tokens[0].IsOnNewLine)
	assert.True(t, tokens[1].IsAdjacent)
	assert.False(t, tokens[1].IsOnNewLine)
	assert.True(t, tokens[2].IsAdjacent)
	assert.True(t, tokens[3].IsOnNewLine)
	assert.False(t, tokens[3].IsAdjacent)
}

func TestLexLineComment(t *testing.T) {
	tokens := lexAll(t, "a -- the rest is skipped ,,,\nb")

	require.Len(t, tokens, 2)
	assert.Equal(t, "b", tokens[1].Value)
	assert.True(t, tokens[1].IsOnNewLine)
}

func TestLexNestedBlockComment(t *testing.T) {
	tokens := lexAll(t, "a /- x /- y -/ z -/ b")

	require.Len(t, tokens, 2)
	assert.Equal(t, "b", tokens[1].Value)
	assert.False(t, tokens[1].IsAdjacent)
	assert.False(t, tokens[1].IsOnNewLine)
}

func TestLexUnterminatedBlockComment(t *testing.T) {
	cerr := lexError(t, "/- a /- b -/ c")

	// Only the outer comment is still open.
	require.Len(t, cerr.Notes, 1)
	assert.Equal(t, 0, cerr.Notes[0].Span.StartCol)
}

func TestLexUnterminatedNestedBlockComment(t *testing.T) {
	cerr := lexError(t, "/- a /- b c")

	require.Len(t, cerr.Notes, 2)
	assert.Equal(t, 0, cerr.Notes[0].Span.StartCol)
	assert.Equal(t, 5, cerr.Notes[1].Span.StartCol)
}

func TestLexSlashSlashCommentAtLineStart(t *testing.T) {
	tokens := lexAll(t, "// block \\\\ rest of the line is skipped\nx")

	require.Len(t, tokens, 1)
	assert.Equal(t, "x", tokens[0].Value)
	assert.True(t, tokens[0].IsOnNewLine)
}

func TestLexSlashSlashCommentMidLine(t *testing.T) {
	cerr := lexError(t, "a // b \\\\")

	assert.Contains(t, cerr.Message, "start of a line")
}

// -----------------------------------------------------------------------------

func TestLexStringEscapes(t *testing.T) {
	tokens := lexAll(t, `"a\n\t\"\\b"`)

	require.Len(t, tokens, 1)
	require.Equal(t, TOK_STRINGLIT, tokens[0].Kind)
	require.Len(t, tokens[0].Components, 1)
	assert.Equal(t, ast.StringText{Value: "a\n\t\"\\b"}, tokens[0].Components[0])
}

func TestLexStringDoubledBraces(t *testing.T) {
	tokens := lexAll(t, `"{{x}}"`)

	require.Len(t, tokens, 1)
	require.Len(t, tokens[0].Components, 1)
	assert.Equal(t, ast.StringText{Value: "{x}"}, tokens[0].Components[0])
}

func TestLexStringUnmatchedCloseBrace(t *testing.T) {
	cerr := lexError(t, `"a}b"`)

	assert.Contains(t, cerr.Message, "unmatched `}`")
	require.Len(t, cerr.Notes, 1)
}

func TestLexStringInterpolation(t *testing.T) {
	tokens := lexAll(t, `"a{1 + 2}b"`)

	require.Len(t, tokens, 1)
	require.Len(t, tokens[0].Components, 3)

	assert.Equal(t, ast.StringText{Value: "a"}, tokens[0].Components[0])

	interp, ok := tokens[0].Components[1].(ast.StringInterp)
	require.True(t, ok)

	sum, ok := interp.X.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "add", sum.Op.Name)

	assert.Equal(t, ast.StringText{Value: "b"}, tokens[0].Components[2])
}

func TestLexStringInterpolationResumesAfterBrace(t *testing.T) {
	// Scanning must resume directly after the matching `}`: the closing quote
	// still terminates the string and the text after the interpolation is
	// kept.
	tokens := lexAll(t, `"x{a}y" z`)

	require.Len(t, tokens, 2)
	require.Len(t, tokens[0].Components, 3)
	assert.Equal(t, ast.StringText{Value: "y"}, tokens[0].Components[2])
	assert.Equal(t, "z", tokens[1].Value)
}

func TestLexStringNestedInterpolation(t *testing.T) {
	tokens := lexAll(t, `"a{"inner {b}"}c"`)

	require.Len(t, tokens, 1)
	require.Len(t, tokens[0].Components, 3)

	interp, ok := tokens[0].Components[1].(ast.StringInterp)
	require.True(t, ok)

	inner, ok := interp.X.(*ast.StringLit)
	require.True(t, ok)
	require.Len(t, inner.Components, 2)
	assert.Equal(t, ast.StringText{Value: "inner "}, inner.Components[0])
}

func TestLexStringEmptyInterpolation(t *testing.T) {
	tokens := lexAll(t, `"{}"`)

	require.Len(t, tokens, 1)
	require.Len(t, tokens[0].Components, 1)

	interp, ok := tokens[0].Components[0].(ast.StringInterp)
	require.True(t, ok)
	assert.Nil(t, interp.X)
}

func TestLexUnterminatedString(t *testing.T) {
	cerr := lexError(t, `"abc`)

	assert.Contains(t, cerr.Message, "unterminated string")
}

func TestLexUnrecognizedCharacter(t *testing.T) {
	cerr := lexError(t, "a # b")

	assert.Contains(t, cerr.Message, "unrecognized character")
}
