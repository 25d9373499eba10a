package walk

import (
	"sysc/ast"
	"sysc/depm"
	"sysc/ir"
	"sysc/report"
)

// Walker resolves the names of one file and lowers its statements.  Errors
// are reported and recovered from so one bad name does not hide the rest of
// the file's problems.
type Walker struct {
	reader    *depm.Reader
	file      *depm.SyscFile
	fileIndex int

	// numGlobals is the number of global slots assigned to this file.
	numGlobals int

	// bindings maps in-scope local names to their slots inside the function
	// currently being walked; nil at the top level of a file, where names
	// resolve through the item table instead.
	bindings map[string]int

	// undo is the shadowing log: every local declaration records the binding
	// it replaced so leaving a block restores the enclosing scope.
	undo []undoEntry

	// nextSlot is the next free local slot of the current function.
	nextSlot int
}

type undoEntry struct {
	name    string
	prev    int
	hadPrev bool
}

// WalkProgram resolves and lowers every loaded file and every function
// definition.  Global declaration happens for all files before any statement
// is lowered so cross-file references resolve regardless of load order.
func WalkProgram(r *depm.Reader) *ir.Program {
	prog := &ir.Program{}

	walkers := make([]*Walker, len(r.Files))
	for i, file := range r.Files {
		w := &Walker{reader: r, file: file, fileIndex: i}
		w.declareGlobals(file.Stmts)
		walkers[i] = w
	}

	for _, w := range walkers {
		prog.Files = append(prog.Files, &ir.File{
			NumGlobals: w.numGlobals,
			Stmts:      w.walkStmts(w.file.Stmts),
		})
	}

	for _, def := range r.FunctionDefs {
		fileIndex, ok := r.IndexOf(def.Path)
		if !ok {
			// Unreachable: every definition comes from a loaded file.
			continue
		}

		w := &Walker{reader: r, file: r.Files[fileIndex], fileIndex: fileIndex}
		prog.Functions = append(prog.Functions, w.walkFunction(def))
	}

	return prog
}

// error reports a recoverable compile error in the file being walked.
func (w *Walker) error(span *report.TextSpan, msg string, args ...interface{}) {
	report.ReportCompileError(w.file.Src, report.Raise(span, msg, args...))
}

// declareLocal binds a name to the next free local slot, logging whatever
// binding it shadows.
func (w *Walker) declareLocal(name string) int {
	prev, hadPrev := w.bindings[name]
	w.undo = append(w.undo, undoEntry{name: name, prev: prev, hadPrev: hadPrev})

	slot := w.nextSlot
	w.nextSlot++
	w.bindings[name] = slot
	return slot
}

// scopeMark returns a mark for the current scope depth to be passed to
// popScope when the scope ends.
func (w *Walker) scopeMark() int {
	return len(w.undo)
}

// popScope unwinds the shadowing log down to the given mark, restoring every
// binding the scope replaced.
func (w *Walker) popScope(mark int) {
	for len(w.undo) > mark {
		e := w.undo[len(w.undo)-1]
		w.undo = w.undo[:len(w.undo)-1]

		if e.hadPrev {
			w.bindings[e.name] = e.prev
		} else {
			delete(w.bindings, e.name)
		}
	}
}

// splitDecl breaks a declaration target into its name, the name's span, and
// the optional initializer.  The declared name may carry a type annotation
// and an initializing assignment; anything else returns an empty name.
func splitDecl(target ast.Term) (string, *report.TextSpan, ast.Term) {
	var init ast.Term
	if asn, ok := target.(*ast.Assignment); ok && asn.Op.Name == "assign" {
		init = asn.Rhs
		target = asn.Lhs
	}

	if ta, ok := target.(*ast.TypeAnnotation); ok {
		target = ta.Value
	}

	if id, ok := target.(*ast.Identifier); ok {
		return id.Name, id.Span(), init
	}

	return "", nil, nil
}
