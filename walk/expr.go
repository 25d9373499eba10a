package walk

import (
	"sysc/ast"
	"sysc/ir"
	"sysc/report"
)

// walkExpr lowers an expression, resolving every name to a slot or table
// reference.  A resolution failure is reported and replaced by an unresolved
// marker so the rest of the expression is still checked.
func (w *Walker) walkExpr(x ast.Term) ir.Expr {
	switch v := x.(type) {
	case *ast.NumericLit:
		return &ir.NumericLit{Value: v.Value}
	case *ast.StringLit:
		return w.walkStringLit(v)
	case *ast.IntTypeLit:
		return &ir.IntType{}
	case *ast.FloatTypeLit:
		return &ir.FloatType{}
	case *ast.Wildcard:
		w.error(v.Span(), "`_` cannot be used as a value")
		return &ir.Unresolved{}
	case *ast.Identifier:
		return w.resolveName(v.Name, v.Span())
	case *ast.FieldByName:
		return w.walkFieldByName(v)
	case *ast.FieldByIndex:
		root := w.walkExpr(v.Root)
		if _, isModule := root.(*ir.ModuleRef); isModule {
			w.error(v.Span(), "expected a member name, not an index")
			return &ir.Unresolved{}
		}

		return &ir.FieldIndex{Root: root, Index: v.Index}
	case *ast.TypeAnnotation:
		if v.Value == nil {
			w.error(v.ColonSpan, "expected an expression before `:`")
			return &ir.Unresolved{}
		}

		return w.walkExpr(v.Value)
	case *ast.UnaryOp:
		if v.Operand == nil {
			w.error(v.Op.Span(), "expected an operand after the operator")
			return &ir.Unresolved{}
		}

		return &ir.MethodCall{Receiver: w.walkExpr(v.Operand), Name: v.Op.Name}
	case *ast.BinaryOp:
		return w.walkOperatorPair(v.Lhs, v.Op, v.Rhs)
	case *ast.Assignment:
		return w.walkOperatorPair(v.Lhs, v.Op, v.Rhs)
	case *ast.Conjunction:
		return &ir.LogicalAnd{Operands: w.walkChain(v.Operands, v.OpSpans)}
	case *ast.Disjunction:
		return &ir.LogicalOr{Operands: w.walkChain(v.Operands, v.OpSpans)}
	case *ast.Paren:
		return w.walkExpr(v.Inner)
	case *ast.Tuple:
		return &ir.Tuple{Elements: w.walkList(v.Elements)}
	case *ast.Call:
		return &ir.Call{Fn: w.walkExpr(v.Fn), Args: w.walkList(v.Args)}
	case *ast.TypeParams:
		w.error(v.Span(), "type parameters are not supported yet")
		return &ir.Unresolved{}
	case *ast.ReturnType:
		w.error(v.ArrowSpan, "a function type cannot be used as a value")
		return &ir.Unresolved{}
	default:
		return &ir.Unresolved{}
	}
}

// resolveName resolves a bare name: innermost local bindings first, then the
// file's items.
func (w *Walker) resolveName(name string, span *report.TextSpan) ir.Expr {
	if w.bindings != nil {
		if slot, ok := w.bindings[name]; ok {
			return &ir.LocalVar{Slot: slot}
		}
	}

	if item, ok := w.file.Items[name]; ok {
		return w.itemExpr(w.fileIndex, item)
	}

	w.error(span, "undefined name `%s`", name)
	return &ir.Unresolved{}
}

// itemExpr lowers a reference to an item of the given file.
func (w *Walker) itemExpr(fileIndex int, item ast.Item) ir.Expr {
	switch item.Kind {
	case ast.ItemImport:
		return &ir.ModuleRef{File: item.FileIndex}
	case ast.ItemFunction:
		return &ir.FuncRef{Defs: item.Overloads}
	case ast.ItemGlobalVar:
		return &ir.GlobalVar{File: fileIndex, Slot: item.Slot}
	default:
		return &ir.Unresolved{}
	}
}

// walkFieldByName lowers field access.  Access rooted in an imported file is
// resolved statically through that file's items.
func (w *Walker) walkFieldByName(v *ast.FieldByName) ir.Expr {
	root := w.walkExpr(v.Root)

	if module, isModule := root.(*ir.ModuleRef); isModule {
		item, ok := w.reader.Files[module.File].Items[v.Name]
		if !ok {
			w.error(v.Span(), "`%s` has no member `%s`", w.reader.Files[module.File].Src.ReprPath, v.Name)
			return &ir.Unresolved{}
		}

		return w.itemExpr(module.File, item)
	}

	return &ir.Field{Root: root, Name: v.Name}
}

// walkOperatorPair lowers a binary or assignment operator application to a
// method call on its left operand.
func (w *Walker) walkOperatorPair(lhs ast.Term, op *ast.MethodName, rhs ast.Term) ir.Expr {
	if lhs == nil {
		w.error(op.Span(), "expected an operand before the operator")
		return &ir.Unresolved{}
	}

	if rhs == nil {
		w.error(op.Span(), "expected an operand after the operator")
		return &ir.Unresolved{}
	}

	return &ir.MethodCall{
		Receiver: w.walkExpr(lhs),
		Name:     op.Name,
		Args:     []ir.Expr{w.walkExpr(rhs)},
	}
}

// walkChain lowers the operands of a conjunction or disjunction.  A missing
// operand is reported at the operator it belongs to.
func (w *Walker) walkChain(operands []ast.Term, opSpans []*report.TextSpan) []ir.Expr {
	lowered := make([]ir.Expr, 0, len(operands))
	for i, operand := range operands {
		if operand == nil {
			if i == 0 {
				w.error(opSpans[0], "expected an operand before the operator")
			} else {
				w.error(opSpans[i-1], "expected an operand after the operator")
			}

			lowered = append(lowered, &ir.Unresolved{})
			continue
		}

		lowered = append(lowered, w.walkExpr(operand))
	}

	return lowered
}

// walkList lowers a comma-separated argument or element list.  Empty interior
// slots are reported at their commas and stand in as unresolved values so the
// list keeps its arity.
func (w *Walker) walkList(elements []ast.ListElement) []ir.Expr {
	lowered := make([]ir.Expr, 0, len(elements))
	for _, element := range elements {
		if element.IsEmpty() {
			w.error(element.CommaSpan, "expected an expression before `,`")
			lowered = append(lowered, &ir.Unresolved{})
			continue
		}

		lowered = append(lowered, w.walkExpr(element.X))
	}

	return lowered
}

// walkStringLit lowers a string literal's components in order.
func (w *Walker) walkStringLit(v *ast.StringLit) ir.Expr {
	var parts []ir.StringPart
	for _, component := range v.Components {
		switch c := component.(type) {
		case ast.StringText:
			parts = append(parts, ir.StringText{Value: c.Value})
		case ast.StringInterp:
			if c.X == nil {
				w.error(v.Span(), "expected an expression between `{` and `}`")
				parts = append(parts, ir.StringExpr{X: &ir.Unresolved{}})
				continue
			}

			parts = append(parts, ir.StringExpr{X: w.walkExpr(c.X)})
		}
	}

	return &ir.StringLit{Parts: parts}
}
