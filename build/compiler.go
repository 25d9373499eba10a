package build

import (
	"sysc/depm"
	"sysc/ir"
	"sysc/report"
	"sysc/walk"
)

// Compiler runs the front-end pipeline for one root file: reading and parsing
// the root and everything it imports, then resolving names and lowering every
// file and function.
type Compiler struct {
	// rootPath is the path of the root source file.
	rootPath string

	// reader loads and owns the file and function-definition tables.
	reader *depm.Reader

	// program is the lowered output, set once Analyze succeeds.
	program *ir.Program
}

// NewCompiler creates a new compiler for the given root file.
func NewCompiler(rootPath string) *Compiler {
	return &Compiler{rootPath: rootPath, reader: depm.NewReader()}
}

// Reader exposes the compiler's file manager.
func (c *Compiler) Reader() *depm.Reader {
	return c.reader
}

// Program returns the lowered program, or nil if Analyze has not succeeded.
func (c *Compiler) Program() *ir.Program {
	return c.program
}

// Analyze runs the front end to completion and reports whether compilation
// can proceed.  Parsing stops at the first error within a file but continues
// across files; name resolution runs only over an error-free parse so its
// diagnostics are not noise from broken syntax.
func (c *Compiler) Analyze() bool {
	if _, err := c.reader.ReadRoot(c.rootPath); err != nil {
		report.ReportStdError(c.rootPath, err)
		return false
	}

	if !report.ShouldProceed() {
		return false
	}

	c.program = walk.WalkProgram(c.reader)
	return report.ShouldProceed()
}
