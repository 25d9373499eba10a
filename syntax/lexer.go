package syntax

import (
	"strings"
	"unicode"

	"sysc/ast"
	"sysc/report"
)

// Lexer is responsible for tokenizing a source file.  It is context sensitive:
// string literals re-enter the expression parser for embedded expressions, and
// every token carries adjacency and start-of-line metadata the parser uses to
// enforce line-break-terminated statements.
type Lexer struct {
	cur *SourceCursor
}

// NewLexer creates a new lexer over the given source cursor.
func NewLexer(cur *SourceCursor) *Lexer {
	return &Lexer{cur: cur}
}

// ReadToken scans the next token from the input.  The two flags carry the
// lexing context: whether the previous token ended immediately before the
// cursor and whether the cursor is at the start of a new line.  Skipped
// whitespace clears adjacency, and a skipped line break sets the new-line
// flag.  The returned token is nil at the end of input; the start index is
// returned either way.  Lexical errors are raised as local compile errors.
func (l *Lexer) ReadToken(isAdjacent, isOnNewLine bool) (Index, *Token) {
	// Skip whitespace, updating the context flags.
	for {
		c := l.cur.Peek()
		if c == -1 {
			return l.cur.Index(), nil
		}

		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f' {
			isAdjacent = false
			if c == '\n' {
				isOnNewLine = true
			}

			l.cur.Consume()
		} else {
			break
		}
	}

	start := l.cur.Index()
	c := l.cur.Peek()
	l.cur.Consume()

	var kind int
	var value string
	var components []ast.StringComponent

	switch {
	case '0' <= c && c <= '9':
		kind = TOK_DIGITS
		value = l.scanDigits(c)
	case c == '"':
		kind = TOK_STRINGLIT
		components = l.scanStringLit(start)
	case c == '_' || unicode.IsLetter(c):
		kind, value = l.scanIdentOrKeyword(c)
	default:
		switch c {
		case '+':
			kind, value = l.selectEq(TOK_PLUSEQ, TOK_PLUS, "+")
		case '-':
			if l.cur.ConsumeIf('-') {
				l.skipLineComment()
				return l.ReadToken(false, true)
			} else if l.cur.ConsumeIf('=') {
				kind, value = TOK_MINUSEQ, "-="
			} else if l.cur.ConsumeIf('>') {
				kind, value = TOK_ARROW, "->"
			} else {
				kind, value = TOK_MINUS, "-"
			}
		case '*':
			kind, value = l.selectEq(TOK_STAREQ, TOK_STAR, "*")
		case '/':
			if l.cur.ConsumeIf('-') {
				l.skipBlockComment(start, '/', '-', '-', '/')
				return l.ReadToken(false, isOnNewLine)
			} else if l.cur.ConsumeIf('/') {
				// The `//`-comment form is only legal as a line's first token.
				if !isOnNewLine {
					panic(report.Raise(
						SpanBetween(start, l.cur.Index()),
						"a `//` comment may only begin at the start of a line",
					))
				}

				l.skipBlockComment(start, '/', '/', '\\', '\\')
				l.skipLineComment()
				return l.ReadToken(false, true)
			} else if l.cur.ConsumeIf('=') {
				kind, value = TOK_DIVEQ, "/="
			} else {
				kind, value = TOK_DIV, "/"
			}
		case '%':
			kind, value = l.selectEq(TOK_MODEQ, TOK_MOD, "%")
		case '=':
			if l.cur.ConsumeIf('=') {
				kind, value = TOK_EQ, "=="
			} else if l.cur.ConsumeIf('>') {
				kind, value = TOK_FATARROW, "=>"
			} else {
				kind, value = TOK_ASSIGN, "="
			}
		case '!':
			kind, value = l.selectEq(TOK_NEQ, TOK_NOT, "!")
		case '>':
			if l.cur.ConsumeIf('>') {
				if l.cur.ConsumeIf('=') {
					kind, value = TOK_RSHIFTEQ, ">>="
				} else {
					kind, value = TOK_RSHIFT, ">>"
				}
			} else if l.cur.ConsumeIf('=') {
				kind, value = TOK_GTEQ, ">="
			} else {
				kind, value = TOK_GT, ">"
			}
		case '<':
			if l.cur.ConsumeIf('<') {
				if l.cur.ConsumeIf('=') {
					kind, value = TOK_LSHIFTEQ, "<<="
				} else {
					kind, value = TOK_LSHIFT, "<<"
				}
			} else if l.cur.ConsumeIf('=') {
				kind, value = TOK_LTEQ, "<="
			} else {
				kind, value = TOK_LT, "<"
			}
		case '&':
			if l.cur.ConsumeIf('&') {
				kind, value = TOK_LAND, "&&"
			} else if l.cur.ConsumeIf('=') {
				kind, value = TOK_AMPEQ, "&="
			} else {
				kind, value = TOK_AMP, "&"
			}
		case '|':
			if l.cur.ConsumeIf('|') {
				kind, value = TOK_LOR, "||"
			} else if l.cur.ConsumeIf('=') {
				kind, value = TOK_PIPEEQ, "|="
			} else {
				kind, value = TOK_PIPE, "|"
			}
		case '^':
			kind, value = l.selectEq(TOK_CARETEQ, TOK_CARET, "^")
		case '.':
			kind, value = TOK_DOT, "."
		case ':':
			kind, value = TOK_COLON, ":"
		case ';':
			kind, value = TOK_SEMI, ";"
		case ',':
			kind, value = TOK_COMMA, ","
		case '?':
			kind, value = TOK_QUESTION, "?"
		case '~':
			kind, value = TOK_TILDE, "~"
		case '$':
			kind, value = TOK_DOLLAR, "$"
		case '(':
			kind, value = TOK_LPAREN, "("
		case ')':
			kind, value = TOK_RPAREN, ")"
		case '[':
			kind, value = TOK_LBRACKET, "["
		case ']':
			kind, value = TOK_RBRACKET, "]"
		case '{':
			kind, value = TOK_LBRACE, "{"
		case '}':
			kind, value = TOK_RBRACE, "}"
		default:
			panic(report.Raise(
				SpanBetween(start, l.cur.Index()),
				"unrecognized character `%c`", c,
			))
		}
	}

	return start, &Token{
		Kind:        kind,
		Value:       value,
		Components:  components,
		Span:        SpanBetween(start, l.cur.Index()),
		IsAdjacent:  isAdjacent,
		IsOnNewLine: isOnNewLine,
	}
}

// selectEq resolves the common two-character pattern of an operator optionally
// followed by `=`.
func (l *Lexer) selectEq(eqKind, plainKind int, lexeme string) (int, string) {
	if l.cur.ConsumeIf('=') {
		return eqKind, lexeme + "="
	}

	return plainKind, lexeme
}

// -----------------------------------------------------------------------------

// scanDigits scans the remainder of a numeric literal whose first digit has
// already been consumed.  The scan greedily consumes digits, letters, and
// underscores (underscores stripped), and after an exponent marker also admits
// one sign character.  The literal never includes a decimal point: the parser
// assembles fractions from adjacent tokens so that `3.degrees` stays a field
// access.
func (l *Lexer) scanDigits(first rune) string {
	var sb strings.Builder
	sb.WriteRune(first)

	afterExp := false
	for {
		c := l.cur.Peek()

		switch {
		case c == 'e' || c == 'E':
			afterExp = true
		case '0' <= c && c <= '9' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || c == '_':
			afterExp = false
		case (c == '+' || c == '-') && afterExp:
			afterExp = false
		default:
			return sb.String()
		}

		if c != '_' {
			sb.WriteRune(c)
		}

		l.cur.Consume()
	}
}

// -----------------------------------------------------------------------------

// scanIdentOrKeyword scans an identifier or keyword whose first rune has
// already been consumed.
func (l *Lexer) scanIdentOrKeyword(first rune) (int, string) {
	var sb strings.Builder
	sb.WriteRune(first)

	for {
		c := l.cur.Peek()
		if c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c) {
			sb.WriteRune(c)
			l.cur.Consume()
		} else {
			break
		}
	}

	name := sb.String()
	if kind, ok := keywordPatterns[name]; ok {
		return kind, name
	}

	return TOK_IDENT, name
}

// -----------------------------------------------------------------------------

// The three things a scanned string character can mean.
const (
	actionBorder = iota // The closing quote.
	actionChar          // A literal character.
	actionExpr          // The start of an embedded expression.
)

// scanStringLit scans a string literal whose opening quote has already been
// consumed, producing its ordered literal-text and embedded-expression
// components.  Doubled braces are literal braces; a lone `{` re-enters the
// expression parser on the same cursor until the matching `}`.
func (l *Lexer) scanStringLit(start Index) []ast.StringComponent {
	var components []ast.StringComponent
	var buf strings.Builder

	prevAction := actionBorder
	for {
		c := l.cur.Peek()
		if c == -1 {
			panic(l.unterminatedString(start))
		}

		idx := l.cur.Index()
		l.cur.Consume()

		action := actionChar
		switch c {
		case '"':
			action = actionBorder
		case '{':
			if !l.cur.ConsumeIf('{') {
				action = actionExpr
			}
		case '}':
			if !l.cur.ConsumeIf('}') {
				panic(report.Raise(
					SpanBetween(idx, l.cur.Index()),
					"unmatched `}` in string literal",
				).WithNote(
					SpanBetween(start, Index{Line: start.Line, Col: start.Col + 1}),
					"string literal begins here",
				))
			}
		case '\\':
			next := l.cur.Peek()
			if next == -1 {
				panic(l.unterminatedString(start))
			}

			l.cur.Consume()

			switch next {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			case '0':
				c = 0
			case '"', '\'', '\\':
				c = next
			default:
				panic(report.Raise(
					SpanBetween(idx, l.cur.Index()),
					"invalid escape sequence `\\%c`", next,
				))
			}
		}

		if action == actionChar {
			buf.WriteRune(c)
		} else if prevAction == actionChar {
			components = append(components, ast.StringText{Value: buf.String()})
			buf.Reset()
		}

		if action == actionExpr {
			components = append(components, l.scanInterpolation(idx))
		} else if action == actionBorder {
			break
		}

		prevAction = action
	}

	return components
}

// scanInterpolation parses the embedded expression opened by the `{` at
// openIdx by recursively invoking the full expression grammar on this lexer's
// cursor.  The matching `}` is consumed as the inner parser's lookahead.
func (l *Lexer) scanInterpolation(openIdx Index) ast.StringComponent {
	p := newParserFrom(l)

	x := p.parseDisjunction(true)

	if p.tok == nil {
		panic(report.Raise(
			SpanBetween(openIdx, Index{Line: openIdx.Line, Col: openIdx.Col + 1}),
			"interpolated expression is never closed",
		))
	} else if p.tok.Kind != TOK_RBRACE {
		panic(report.Raise(
			p.tok.Span,
			"expected `}` to close interpolated expression, found %s", p.tok.KindName(),
		).WithNote(
			SpanBetween(openIdx, Index{Line: openIdx.Line, Col: openIdx.Col + 1}),
			"interpolation begins here",
		))
	}

	return ast.StringInterp{X: x}
}

// unterminatedString builds the error for a string literal still open at the
// end of the input.
func (l *Lexer) unterminatedString(start Index) *report.LocalCompileError {
	return report.Raise(
		SpanBetween(start, Index{Line: start.Line, Col: start.Col + 1}),
		"unterminated string literal",
	)
}

// -----------------------------------------------------------------------------

// skipLineComment skips the remainder of the current line.
func (l *Lexer) skipLineComment() {
	for {
		c := l.cur.Peek()
		l.cur.Consume()

		if c == -1 || c == '\n' {
			return
		}
	}
}

// skipBlockComment skips a block comment whose opening delimiter (start0 then
// start1) has already been consumed.  Comments of the same form nest; a stack
// of open-comment start positions is kept so that an input ending inside the
// comment can report every open start.
func (l *Lexer) skipBlockComment(start Index, start0, start1, end0, end1 rune) {
	opens := []Index{start}

	for {
		c := l.cur.Peek()
		if c == -1 {
			cerr := report.Raise(
				SpanBetween(l.cur.Index(), l.cur.Index()),
				"unterminated block comment at end of input",
			)
			for _, open := range opens {
				cerr.WithNote(
					SpanBetween(open, Index{Line: open.Line, Col: open.Col + 2}),
					"comment opened here",
				)
			}

			panic(cerr)
		}

		idx := l.cur.Index()
		l.cur.Consume()

		if c == start0 && l.cur.ConsumeIf(start1) {
			opens = append(opens, idx)
		} else if c == end0 && l.cur.ConsumeIf(end1) {
			opens = opens[:len(opens)-1]
			if len(opens) == 0 {
				return
			}
		}
	}
}
