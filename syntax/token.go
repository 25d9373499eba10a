package syntax

import (
	"sysc/ast"
	"sysc/report"
)

// Token represents a single lexical token.
type Token struct {
	// The kind of the token.  This must be one of the enumerated token kinds.
	Kind int

	// The string value of the token: the digit text of a numeric literal
	// (underscores stripped) or the name of an identifier.
	Value string

	// The components of a string literal token, in order.  Embedded
	// expressions are parsed by the time the token is produced.
	Components []ast.StringComponent

	// The text span over which the token exists.
	Span *report.TextSpan

	// IsAdjacent indicates that no whitespace or comment separates this token
	// from the previous one.
	IsAdjacent bool

	// IsOnNewLine indicates that this token is the first on its line.
	IsOnNewLine bool
}

// Enumeration of token kinds.
const (
	TOK_DIGITS = iota
	TOK_STRINGLIT

	TOK_IMPORT
	TOK_EXPORT
	TOK_STRUCT
	TOK_FUNC
	TOK_METHOD
	TOK_IF
	TOK_ELSE
	TOK_WHILE
	TOK_BREAK
	TOK_CONTINUE
	TOK_RETURN
	TOK_END
	TOK_VAR
	TOK_INT
	TOK_FLOAT

	TOK_UNDERSCORE
	TOK_IDENT

	TOK_PLUS
	TOK_PLUSEQ
	TOK_MINUS
	TOK_MINUSEQ
	TOK_ARROW
	TOK_STAR
	TOK_STAREQ
	TOK_DIV
	TOK_DIVEQ
	TOK_MOD
	TOK_MODEQ

	TOK_ASSIGN
	TOK_EQ
	TOK_FATARROW
	TOK_NOT
	TOK_NEQ

	TOK_GT
	TOK_GTEQ
	TOK_RSHIFT
	TOK_RSHIFTEQ
	TOK_LT
	TOK_LTEQ
	TOK_LSHIFT
	TOK_LSHIFTEQ

	TOK_AMP
	TOK_AMPEQ
	TOK_LAND
	TOK_PIPE
	TOK_PIPEEQ
	TOK_LOR
	TOK_CARET
	TOK_CARETEQ

	TOK_DOT
	TOK_COLON
	TOK_SEMI
	TOK_COMMA
	TOK_QUESTION
	TOK_TILDE
	TOK_DOLLAR

	TOK_LPAREN
	TOK_RPAREN
	TOK_LBRACKET
	TOK_RBRACKET
	TOK_LBRACE
	TOK_RBRACE
)

// keywordPatterns maps keyword strings (patterns) to their keyword token kind.
var keywordPatterns = map[string]int{
	"import":   TOK_IMPORT,
	"export":   TOK_EXPORT,
	"struct":   TOK_STRUCT,
	"func":     TOK_FUNC,
	"method":   TOK_METHOD,
	"if":       TOK_IF,
	"else":     TOK_ELSE,
	"while":    TOK_WHILE,
	"break":    TOK_BREAK,
	"continue": TOK_CONTINUE,
	"return":   TOK_RETURN,
	"end":      TOK_END,
	"var":      TOK_VAR,
	"int":      TOK_INT,
	"float":    TOK_FLOAT,
	"_":        TOK_UNDERSCORE,
}

// tokenKindNames gives a human readable name for each token kind, used in
// diagnostics.
var tokenKindNames = map[int]string{
	TOK_DIGITS:    "numeric literal",
	TOK_STRINGLIT: "string literal",
	TOK_IDENT:     "identifier",
}

// KindName returns the display name of the token's kind.
func (t *Token) KindName() string {
	if name, ok := tokenKindNames[t.Kind]; ok {
		return name
	}

	if t.Value != "" {
		return "`" + t.Value + "`"
	}

	return "token"
}
