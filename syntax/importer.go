package syntax

import (
	"errors"

	"sysc/ast"
)

// Importer is the callback surface through which the parser hands off
// `import` statements and finished function definitions to the file manager.
type Importer interface {
	// ImportFile loads and parses the file at the given path (without its
	// extension) if it has not been loaded already and returns its file index.
	ImportFile(path string) (int, error)

	// AddFunctionDef records a parsed function definition and returns its
	// index in the global definition table.
	AddFunctionDef(def *ast.FunctionDefinition) int
}

// ErrCircularImport is returned by ImportFile when the requested file is
// already being read somewhere below the current file on the import chain.
var ErrCircularImport = errors.New("circular import")
