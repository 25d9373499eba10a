package report

// TextSpan represents a range or "span" of source text.  It is used to specify
// erroneous or otherwise significant source text in a Sysc program.  Spans are
// half-open: the starting position is the position of the first character in
// the span and the ending position is one past the last character.  The line
// and column numbers are zero-indexed.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// -----------------------------------------------------------------------------

// SourceText is the raw text of a source file together with the metadata
// diagnostics are rendered against: its path and its line-offset table.
type SourceText struct {
	// AbsPath is the absolute, canonical path to the source file.
	AbsPath string

	// ReprPath is the representative path used when displaying messages.
	ReprPath string

	// Text is the full contents of the source file.
	Text string

	// LineOffsets[n] is the byte offset of the first character of line n.
	LineOffsets []int
}

// NewSourceText creates the source text record for a file, computing its
// line-offset table.
func NewSourceText(absPath, reprPath, text string) *SourceText {
	offsets := []int{0}
	for i, c := range text {
		if c == '\n' {
			offsets = append(offsets, i+1)
		}
	}

	return &SourceText{
		AbsPath:     absPath,
		ReprPath:    reprPath,
		Text:        text,
		LineOffsets: offsets,
	}
}

// Line returns the text of the given zero-indexed line without its trailing
// line break.
func (st *SourceText) Line(n int) string {
	if n < 0 || n >= len(st.LineOffsets) {
		return ""
	}

	start := st.LineOffsets[n]
	end := len(st.Text)
	if n+1 < len(st.LineOffsets) {
		end = st.LineOffsets[n+1]
	}

	line := st.Text[start:end]
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}

	return line
}
