package syntax

import "sysc/report"

// Index is a zero-indexed (line, column) position within the source text.
type Index struct {
	Line, Col int
}

// SpanBetween builds the half-open text span from start up to end.
func SpanBetween(start, end Index) *report.TextSpan {
	return &report.TextSpan{
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   end.Line,
		EndCol:    end.Col,
	}
}

// -----------------------------------------------------------------------------

// SourceCursor is a position-tracked iterator over the runes of one source
// file.  It exposes the peek/consume/position primitives the tokenizer is
// built on.
type SourceCursor struct {
	runes []rune
	pos   int

	line, col int
}

// NewSourceCursor creates a cursor over the given source text.
func NewSourceCursor(text string) *SourceCursor {
	return &SourceCursor{runes: []rune(text)}
}

// Peek returns the next rune without moving the cursor forward.  It returns -1
// at the end of the input.
func (sc *SourceCursor) Peek() rune {
	if sc.pos >= len(sc.runes) {
		return -1
	}

	return sc.runes[sc.pos]
}

// Consume moves the cursor forward one rune.
func (sc *SourceCursor) Consume() {
	if sc.pos >= len(sc.runes) {
		return
	}

	if sc.runes[sc.pos] == '\n' {
		sc.line++
		sc.col = 0
	} else {
		sc.col++
	}

	sc.pos++
}

// ConsumeIf moves the cursor forward one rune only if the next rune is c.  It
// returns whether the cursor moved.
func (sc *SourceCursor) ConsumeIf(c rune) bool {
	if sc.Peek() == c {
		sc.Consume()
		return true
	}

	return false
}

// Index returns the position of the next unconsumed rune.
func (sc *SourceCursor) Index() Index {
	return Index{Line: sc.line, Col: sc.col}
}
