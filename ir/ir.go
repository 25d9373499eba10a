package ir

// Program is the fully lowered form of a compilation: one entry per source
// file plus the flat function table shared by all of them.
type Program struct {
	Files     []*File
	Functions []*Function
}

// File is the lowered top level of one source file.
type File struct {
	// NumGlobals is the number of global-variable slots the file owns.
	// Globals are numbered densely from zero in declaration order.
	NumGlobals int

	// Stmts are the file's top-level statements.
	Stmts []Stmt
}

// Function is the lowered body of one function definition.  Parameters occupy
// the first NumParams local slots; locals declared in the body follow.
type Function struct {
	NumParams int
	NumLocals int
	Body      []Stmt
}
