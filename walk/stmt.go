package walk

import (
	"sysc/ast"
	"sysc/ir"
)

// declareGlobals is the first pass over a file's top level: every `var name`
// gets the file's next global slot and an item-table entry so statements and
// functions anywhere in the program can reference it.  Declarations inside
// top-level loops count as globals too.
func (w *Walker) declareGlobals(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		switch v := stmt.(type) {
		case *ast.VarDecl:
			name, nameSpan, _ := splitDecl(v.Target)
			if name == "" {
				w.error(v.Target.Span(), "expected a variable name after `var`")
				continue
			}

			if _, exists := w.file.Items[name]; exists {
				w.error(nameSpan, "multiple definitions of `%s`", name)
				continue
			}

			w.file.Items[name] = ast.Item{Kind: ast.ItemGlobalVar, Slot: w.numGlobals}
			w.numGlobals++
		case *ast.WhileLoop:
			w.declareGlobals(v.Body)
		}
	}
}

// walkStmts lowers a statement list in the current scope.
func (w *Walker) walkStmts(stmts []ast.Stmt) []ir.Stmt {
	var lowered []ir.Stmt
	for _, stmt := range stmts {
		if s := w.walkStmt(stmt); s != nil {
			lowered = append(lowered, s)
		}
	}

	return lowered
}

func (w *Walker) walkStmt(stmt ast.Stmt) ir.Stmt {
	switch v := stmt.(type) {
	case *ast.VarDecl:
		return w.walkVarDecl(v)
	case *ast.WhileLoop:
		cond := w.walkExpr(v.Cond)

		mark := w.scopeMark()
		body := w.walkStmts(v.Body)
		w.popScope(mark)

		return &ir.While{Cond: cond, Body: body}
	case *ast.ExprStmt:
		return &ir.ExprStmt{X: w.walkExpr(v.X)}
	default:
		// Unreachable: the parser produces no other statement kinds.
		return nil
	}
}

func (w *Walker) walkVarDecl(v *ast.VarDecl) ir.Stmt {
	name, _, init := splitDecl(v.Target)
	if name == "" {
		// Already reported during global declaration at the top level.
		if w.bindings != nil {
			w.error(v.Target.Span(), "expected a variable name after `var`")
		}

		return nil
	}

	// The initializer resolves against the enclosing scope, so it is lowered
	// before the name is bound.
	var loweredInit ir.Expr
	if init != nil {
		loweredInit = w.walkExpr(init)
	}

	if w.bindings != nil {
		return &ir.Decl{Slot: w.declareLocal(name), Init: loweredInit}
	}

	item, ok := w.file.Items[name]
	if !ok || item.Kind != ast.ItemGlobalVar {
		// The name collided with another item; already reported.
		return nil
	}

	return &ir.Decl{Slot: item.Slot, Init: loweredInit}
}

// walkFunction lowers one function definition.  Parameters occupy the first
// local slots in order; body declarations follow.
func (w *Walker) walkFunction(def *ast.FunctionDefinition) *ir.Function {
	w.bindings = make(map[string]int)

	numParams := 0
	for _, param := range def.Params {
		if param.IsEmpty() {
			w.error(param.CommaSpan, "expected a parameter before `,`")
			continue
		}

		name, nameSpan, init := splitDecl(param.X)
		if name == "" || init != nil {
			w.error(param.X.Span(), "expected a parameter name")
			continue
		}

		if _, exists := w.bindings[name]; exists {
			w.error(nameSpan, "multiple parameters named `%s`", name)
			continue
		}

		w.declareLocal(name)
		numParams++
	}

	body := w.walkStmts(def.Body)

	return &ir.Function{NumParams: numParams, NumLocals: w.nextSlot, Body: body}
}
