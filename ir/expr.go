package ir

// Expr is a lowered expression.  All name references are resolved to slots or
// table indices; operators are resolved to named method calls.
type Expr interface {
	expr()
}

// LocalVar references a local variable of the enclosing function by slot.
type LocalVar struct {
	Slot int
}

func (*LocalVar) expr() {}

// GlobalVar references a file-global variable by file index and slot.
type GlobalVar struct {
	File int
	Slot int
}

func (*GlobalVar) expr() {}

// FuncRef references a function overload set: the definition-table indices of
// every definition sharing the referenced name.
type FuncRef struct {
	Defs []int
}

func (*FuncRef) expr() {}

// ModuleRef references an imported file by file index.  It only ever appears
// as the root of a field access resolving into that file's items.
type ModuleRef struct {
	File int
}

func (*ModuleRef) expr() {}

// -----------------------------------------------------------------------------

// NumericLit is a numeric constant kept as its literal text.
type NumericLit struct {
	Value string
}

func (*NumericLit) expr() {}

// StringLit is a string constant assembled from literal text and embedded
// expressions in order.
type StringLit struct {
	Parts []StringPart
}

func (*StringLit) expr() {}

// StringPart is a single part of a lowered string literal.
type StringPart interface {
	stringPart()
}

// StringText is a run of literal text.
type StringText struct {
	Value string
}

func (StringText) stringPart() {}

// StringExpr is an embedded expression formatted into the string.
type StringExpr struct {
	X Expr
}

func (StringExpr) stringPart() {}

// IntType is the built-in integer type used as a value.
type IntType struct{}

func (*IntType) expr() {}

// FloatType is the built-in floating-point type used as a value.
type FloatType struct{}

func (*FloatType) expr() {}

// -----------------------------------------------------------------------------

// Call applies a callee to its arguments.
type Call struct {
	Fn   Expr
	Args []Expr
}

func (*Call) expr() {}

// MethodCall invokes a named method on a receiver.  Operator applications
// lower to this form: `a + b` becomes a call of `add` on `a` with `b` as the
// argument.
type MethodCall struct {
	Receiver Expr
	Name     string
	Args     []Expr
}

func (*MethodCall) expr() {}

// Field accesses a named field of a non-module value.
type Field struct {
	Root Expr
	Name string
}

func (*Field) expr() {}

// FieldIndex accesses a positional field of a value; the index is kept as its
// literal digit text.
type FieldIndex struct {
	Root  Expr
	Index string
}

func (*FieldIndex) expr() {}

// Tuple constructs a tuple from its element values.
type Tuple struct {
	Elements []Expr
}

func (*Tuple) expr() {}

// LogicalAnd is a short-circuiting n-ary conjunction.
type LogicalAnd struct {
	Operands []Expr
}

func (*LogicalAnd) expr() {}

// LogicalOr is a short-circuiting n-ary disjunction.
type LogicalOr struct {
	Operands []Expr
}

func (*LogicalOr) expr() {}

// Unresolved stands in for an expression that failed to resolve so lowering
// can continue past the error.
type Unresolved struct{}

func (*Unresolved) expr() {}
