package ast

import "sysc/report"

// FunctionDefinition represents a single `func` definition.  Definitions are
// stored in one flat table owned by the reader and referenced by index; one
// name may map to several definitions (an overload set).
type FunctionDefinition struct {
	// Path is the canonical path of the file the definition originates from.
	Path string

	// NameSpan is the span of the function name at its definition.
	NameSpan *report.TextSpan

	// TypeParams is the bracketed type-parameter list.  Parsing for type
	// parameters is stubbed: this is always nil for now and exists as an
	// extension point.
	TypeParams []ListElement

	// Params is the parenthesized parameter list; each element is a full
	// expression, typically a type-annotated identifier.  HasParams
	// distinguishes an absent list from an empty one.
	Params    []ListElement
	HasParams bool

	// ReturnType is the optional `-> <type>` annotation.
	ReturnType *ReturnTypeAnnot

	// Body is the list of statements making up the function body.
	Body []Stmt
}

// ReturnTypeAnnot is the return-type annotation of a function definition.
// Type is nil when no type follows the arrow.
type ReturnTypeAnnot struct {
	ArrowSpan *report.TextSpan
	Type      Term
}

// -----------------------------------------------------------------------------

// ItemKind enumerates the kinds of per-file namespace entries.
type ItemKind int

const (
	ItemImport    ItemKind = iota // An imported file.
	ItemFunction                  // A function overload set.
	ItemType                      // A type definition (unused for now).
	ItemGlobalVar                 // A file-global variable.
)

// Item is a per-file namespace entry.  Which fields are meaningful depends on
// the kind.
type Item struct {
	Kind ItemKind

	// FileIndex is the file-table index of the imported file (ItemImport).
	FileIndex int

	// Overloads is the list of function-definition indices sharing this name
	// (ItemFunction).
	Overloads []int

	// TypeIndex is the index of the type definition (ItemType, unused).
	TypeIndex int

	// Slot is the global-variable slot within the file (ItemGlobalVar).
	Slot int
}
