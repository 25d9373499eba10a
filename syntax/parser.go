package syntax

import (
	"sysc/report"
)

// Parser is the parser for a Sysc source file.  It is a recursive descent
// parser with one token of lookahead.  All parsing functions assume they begin
// with the parser centered on the first token of their production and must
// consume every token of their production, leaving the parser on the next
// token.  Hard errors are raised as local compile errors and caught at the
// file boundary; "parse one expression" entry points instead return nil when
// no expression is present, and callers decide whether absence is legal.
type Parser struct {
	// lexer is the Lexer this parser is reading tokens from.
	lexer *Lexer

	// imp is the importer invoked when an `import` statement is parsed.  It is
	// nil for the throwaway parsers created for interpolated expressions,
	// which can never contain imports.
	imp Importer

	// fileDir is the directory of the file being parsed, used to resolve
	// implicit import paths.
	fileDir string

	// tok is the lookahead token; nil once the input is exhausted.
	tok *Token

	// tokStart is the start index of the lookahead token.
	tokStart Index

	// prevEnd is the end index of the most recently consumed token, used to
	// close the spans of finished nodes.
	prevEnd Index
}

// NewParser creates a new parser for a source file.
func NewParser(imp Importer, fileDir string, lexer *Lexer) *Parser {
	p := &Parser{lexer: lexer, imp: imp, fileDir: fileDir}
	p.tokStart, p.tok = lexer.ReadToken(true, true)
	return p
}

// newParserFrom creates a parser picking up mid-stream on an existing lexer.
// This is the re-entry point used for interpolated expressions.
func newParserFrom(l *Lexer) *Parser {
	p := &Parser{lexer: l}
	p.tokStart, p.tok = l.ReadToken(true, false)
	return p
}

// -----------------------------------------------------------------------------

// consume moves the parser forward one token.
func (p *Parser) consume() {
	p.prevEnd = p.lexer.cur.Index()
	p.tokStart, p.tok = p.lexer.ReadToken(true, false)
}

// tokOnCurrentLine returns the lookahead token only if it is not the first
// token of a new line.
func (p *Parser) tokOnCurrentLine() *Token {
	if p.tok != nil && !p.tok.IsOnNewLine {
		return p.tok
	}

	return nil
}

// adjacentTok returns the lookahead token only if no whitespace or comment
// separates it from the previous token.
func (p *Parser) adjacentTok() *Token {
	if p.tok != nil && p.tok.IsAdjacent {
		return p.tok
	}

	return nil
}

// hasTokOnCurrentLine returns whether any token remains on the current line.
func (p *Parser) hasTokOnCurrentLine() bool {
	return p.tok != nil && !p.tok.IsOnNewLine
}

// tokSpan returns the span of the lookahead token, or a zero-width span at the
// end of the input.
func (p *Parser) tokSpan() *report.TextSpan {
	if p.tok != nil {
		return p.tok.Span
	}

	i := p.lexer.cur.Index()
	return SpanBetween(i, i)
}

// rangeFrom returns the span from start up to the end of the most recently
// consumed token.
func (p *Parser) rangeFrom(start Index) *report.TextSpan {
	return SpanBetween(start, p.prevEnd)
}

// errorOn raises a local compile error on the given span, aborting the parse
// of the current file.
func (p *Parser) errorOn(span *report.TextSpan, msg string, args ...interface{}) {
	panic(report.Raise(span, msg, args...))
}
