package depm

import (
	"sysc/ast"
	"sysc/report"
)

// SyscFile is the record of one loaded source file.
type SyscFile struct {
	// Src is the file's source text, kept in memory for error display.
	Src *report.SourceText

	// Stmts are the file's top-level statements.
	Stmts []ast.Stmt

	// Items maps the file's top-level names to their namespace entries.
	Items map[string]ast.Item

	// Parsed is false if parsing reported errors.  A failed file still
	// occupies its slot in the file table so indices held by other files stay
	// valid.
	Parsed bool
}
