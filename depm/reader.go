package depm

import (
	"os"
	"path/filepath"

	"sysc/ast"
	"sysc/report"
	"sysc/syntax"
)

// SourceExt is the file extension of source files.
const SourceExt = ".sysc"

// Reader loads and parses every source file of a compilation.  It implements
// syntax.Importer so files are read on demand, depth first, as `import`
// statements are encountered.  Each file is parsed exactly once no matter how
// many files import it; a file imported while it is still being read is a
// circular import.
type Reader struct {
	// Files is the flat table of loaded files in completion order.
	Files []*SyscFile

	// FunctionDefs is the flat table of every function definition across all
	// loaded files.
	FunctionDefs []*ast.FunctionDefinition

	// fileIndices maps canonical file paths to their Files indices.
	fileIndices map[string]int

	// importChain is the set of canonical paths currently being read, used to
	// detect circular imports.
	importChain map[string]struct{}
}

// NewReader creates a new, empty reader.
func NewReader() *Reader {
	return &Reader{
		fileIndices: make(map[string]int),
		importChain: make(map[string]struct{}),
	}
}

// ReadRoot reads and parses the root file of a compilation and, recursively,
// everything it imports, and returns the root's file index.  The extension is
// appended if the path is missing one.
func (r *Reader) ReadRoot(path string) (int, error) {
	if filepath.Ext(path) == "" {
		path += SourceExt
	}

	return r.readFile(path)
}

// ImportFile loads and parses the file at the given extensionless path if it
// has not been loaded already and returns its file index.
func (r *Reader) ImportFile(path string) (int, error) {
	return r.readFile(path + SourceExt)
}

// AddFunctionDef records a parsed function definition and returns its index
// in the definition table.
func (r *Reader) AddFunctionDef(def *ast.FunctionDefinition) int {
	r.FunctionDefs = append(r.FunctionDefs, def)
	return len(r.FunctionDefs) - 1
}

// IndexOf returns the file index of the given canonical path.
func (r *Reader) IndexOf(absPath string) (int, bool) {
	index, ok := r.fileIndices[absPath]
	return index, ok
}

// readFile parses the file at the given path if it has not been read already
// and returns its file index.
func (r *Reader) readFile(path string) (int, error) {
	abs, err := canonicalize(path)
	if err != nil {
		return -1, err
	}

	if index, ok := r.fileIndices[abs]; ok {
		return index, nil
	}

	if _, reading := r.importChain[abs]; reading {
		return -1, syntax.ErrCircularImport
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return -1, err
	}

	r.importChain[abs] = struct{}{}
	defer delete(r.importChain, abs)

	src := report.NewSourceText(abs, filepath.Clean(path), string(data))
	stmts, items, ok := syntax.ParseFile(r, src)

	// A file that failed to parse still gets a file record so the indices
	// already handed out stay aligned with the table.
	index := len(r.Files)
	r.Files = append(r.Files, &SyscFile{Src: src, Stmts: stmts, Items: items, Parsed: ok})
	r.fileIndices[abs] = index
	return index, nil
}

// canonicalize converts a path to its canonical absolute form so the same
// file always maps to the same table entry regardless of how imports spell
// its path.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	// Resolving symlinks fails for files that do not exist; keep the plain
	// absolute path in that case and let the read report the error.
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	return abs, nil
}
