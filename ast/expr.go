package ast

import "sysc/report"

// Term is the universal expression node.  All expression nodes implement the
// `Term` interface.
type Term interface {
	ASTNode

	term()
}

// TermBase is the base struct for all expression nodes.
type TermBase struct {
	ASTBase
}

// NewTermBase creates a new term base with the given span.
func NewTermBase(span *report.TextSpan) TermBase {
	return TermBase{ASTBase: NewASTBaseOn(span)}
}

func (TermBase) term() {}

// -----------------------------------------------------------------------------

// NumericLit represents a numeric literal.  The value is kept as the literal
// text (underscores stripped); the backend decides how to interpret it.
type NumericLit struct {
	TermBase

	Value string
}

// StringLit represents a string literal: an ordered sequence of literal text
// and embedded expression components.
type StringLit struct {
	TermBase

	Components []StringComponent
}

// StringComponent is a single component of a string literal.
type StringComponent interface {
	stringComponent()
}

// StringText is a run of literal text inside a string literal.
type StringText struct {
	Value string
}

func (StringText) stringComponent() {}

// StringInterp is an expression embedded in a string literal between `{` and
// `}`.  X is nil if the braces enclose no expression.
type StringInterp struct {
	X Term
}

func (StringInterp) stringComponent() {}

// Wildcard represents the wildcard term `_`.
type Wildcard struct {
	TermBase
}

// IntTypeLit represents the built-in type keyword `int` used as a term.
type IntTypeLit struct {
	TermBase
}

// FloatTypeLit represents the built-in type keyword `float` used as a term.
type FloatTypeLit struct {
	TermBase
}

// Identifier represents a named reference.
type Identifier struct {
	TermBase

	Name string
}

// MethodName is a synthetic method-name term: operators are represented as
// named methods (`add`, `mul`, `assign`, ...) positioned at the operator
// token.
type MethodName struct {
	TermBase

	Name string
}

// -----------------------------------------------------------------------------

// FieldByName represents access to a field by name: `expr.name`.
type FieldByName struct {
	TermBase

	Root Term
	Name string
}

// FieldByIndex represents access to a field by position: `expr.0`.  The index
// is kept as its literal digit text.
type FieldByIndex struct {
	TermBase

	Root  Term
	Index string
}

// TypeAnnotation represents a type-annotated term: `expr: type`.  Type is nil
// when no type follows the colon.
type TypeAnnotation struct {
	TermBase

	Value     Term
	ColonSpan *report.TextSpan
	Type      Term
}

// UnaryOp represents a prefix operator application.  Operand is nil when the
// operator has no operand.
type UnaryOp struct {
	TermBase

	Op      *MethodName
	Operand Term
}

// BinaryOp represents a binary operator application.  Either operand may be
// nil when the corresponding expression is absent.
type BinaryOp struct {
	TermBase

	Lhs Term
	Op  *MethodName
	Rhs Term
}

// Assignment represents an assignment: right-associative and lowest
// precedence, so Rhs is itself a full assignment-level term.  Either side may
// be nil when absent.
type Assignment struct {
	TermBase

	Lhs Term
	Op  *MethodName
	Rhs Term
}

// Conjunction represents a flattened n-ary `&&` chain.  Operand entries may be
// nil where an operand is absent; OpSpans holds the position of every operator
// individually.
type Conjunction struct {
	TermBase

	Operands []Term
	OpSpans  []*report.TextSpan
}

// Disjunction represents a flattened n-ary `||` chain, with the same shape as
// Conjunction.
type Disjunction struct {
	TermBase

	Operands []Term
	OpSpans  []*report.TextSpan
}

// -----------------------------------------------------------------------------

// Paren represents a parenthesized term: exactly one element with no trailing
// comma.
type Paren struct {
	TermBase

	Inner Term
}

// Tuple represents a tuple: zero, two or more elements, or a single element
// with a trailing comma.
type Tuple struct {
	TermBase

	Elements []ListElement
}

// Call represents a function call: `fn(args)`.
type Call struct {
	TermBase

	Fn   Term
	Args []ListElement
}

// TypeParams represents type-parameter application: `expr[params]`.  This is a
// parse-only extension point: no type system interprets it yet.
type TypeParams struct {
	TermBase

	Root   Term
	Params []ListElement
}

// ReturnType represents a return-type annotation: `args -> ret`.  Ret is nil
// when no type follows the arrow.
type ReturnType struct {
	TermBase

	ArrowSpan *report.TextSpan
	Args      Term
	Ret       Term
}

// -----------------------------------------------------------------------------

// ListElement is a single slot of a comma-separated list.  An empty slot
// (interior comma with no expression) keeps the comma's position so "missing
// expression" diagnostics can point at it.
type ListElement struct {
	// The expression filling the slot; nil if the slot is empty.
	X Term

	// The span of the comma following an empty slot.
	CommaSpan *report.TextSpan
}

// IsEmpty returns whether the list slot holds no expression.
func (le ListElement) IsEmpty() bool {
	return le.X == nil
}
