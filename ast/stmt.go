package ast

import "sysc/report"

// Stmt is the interface implemented by all statement nodes.
type Stmt interface {
	ASTNode

	stmt()
}

// StmtBase is the base struct for all statement nodes.
type StmtBase struct {
	ASTBase
}

// NewStmtBase creates a new statement base with the given span.
func NewStmtBase(span *report.TextSpan) StmtBase {
	return StmtBase{ASTBase: NewASTBaseOn(span)}
}

func (StmtBase) stmt() {}

// -----------------------------------------------------------------------------

// VarDecl represents a variable declaration: `var <term>`.  The target must
// reduce to a bare identifier; the resolver enforces this.
type VarDecl struct {
	StmtBase

	Target Term
}

// ExprStmt represents a bare expression statement terminated by a line break.
type ExprStmt struct {
	StmtBase

	X Term
}

// WhileLoop represents a while loop: a condition on the `while` line followed
// by a block of statements terminated by `end`.
type WhileLoop struct {
	StmtBase

	Cond Term
	Body []Stmt
}
