package report

import "fmt"

// Note is a secondary piece of position information attached to an error: eg.
// the start of each comment still open when the input ended.
type Note struct {
	// The note message.
	Message string

	// The span the note points at.  May be nil for positionless notes.
	Span *TextSpan
}

// LocalCompileError is a compilation error that occurs in a context in which
// the file is known by the error handler and thus doesn't need to be passed
// along with the error.
type LocalCompileError struct {
	// The error message.
	Message string

	// The span over which the error occurs.  May be nil for errors that only
	// carry notes (eg. an unclosed block at end of input).
	Span *TextSpan

	// Notes are additional positions giving context for the error: open block
	// starts, open comment starts, the matching opening delimiter, etc.
	Notes []Note
}

func (lce *LocalCompileError) Error() string {
	return lce.Message
}

// Raise creates a new local compile error.
func Raise(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	return &LocalCompileError{Message: fmt.Sprintf(msg, args...), Span: span}
}

// WithNote attaches a positioned note to a local compile error and returns the
// error to allow chaining.
func (lce *LocalCompileError) WithNote(span *TextSpan, msg string, args ...interface{}) *LocalCompileError {
	lce.Notes = append(lce.Notes, Note{Message: fmt.Sprintf(msg, args...), Span: span})
	return lce
}

// -----------------------------------------------------------------------------

// CatchErrors catches any errors thrown by a `panic` during a stage of
// compilation.  In effect, this handler determines when errors "unrecoverable"
// within a given subsection of the compiler should stop bubbling.
// NB: This function must ALWAYS be deferred.
func CatchErrors(src *SourceText) {
	if x := recover(); x != nil {
		if cerr, ok := x.(*LocalCompileError); ok {
			ReportCompileError(src, cerr)
		} else if serr, ok := x.(error); ok {
			ReportStdError(src.ReprPath, serr)
		} else {
			ReportFatal("%s", x)
		}
	}
}
