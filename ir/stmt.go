package ir

// Stmt is a lowered statement.
type Stmt interface {
	stmt()
}

// Decl introduces a variable in its slot, optionally with an initial value.
// Whether the slot is local or global depends on where the statement occurs.
type Decl struct {
	Slot int
	Init Expr
}

func (*Decl) stmt() {}

// ExprStmt evaluates an expression for its effect.
type ExprStmt struct {
	X Expr
}

func (*ExprStmt) stmt() {}

// While evaluates its condition before each iteration and runs the body while
// it holds.
type While struct {
	Cond Expr
	Body []Stmt
}

func (*While) stmt() {}
