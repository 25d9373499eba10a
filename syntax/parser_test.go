package syntax

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysc/ast"
	"sysc/report"
)

// fakeImporter records the imports and function definitions a parse hands
// off.  Paths in importErrs fail with the mapped error instead of importing.
type fakeImporter struct {
	imports    []string
	importErrs map[string]error
	defs       []*ast.FunctionDefinition
}

func (f *fakeImporter) ImportFile(path string) (int, error) {
	if err, bad := f.importErrs[filepath.Base(path)]; bad {
		return -1, err
	}

	f.imports = append(f.imports, path)
	return len(f.imports) - 1, nil
}

func (f *fakeImporter) AddFunctionDef(def *ast.FunctionDefinition) int {
	f.defs = append(f.defs, def)
	return len(f.defs) - 1
}

// parseSource parses the given text as a whole file with a fresh silent
// reporter.
func parseSource(t *testing.T, imp *fakeImporter, text string) ([]ast.Stmt, map[string]ast.Item, bool) {
	t.Helper()

	report.InitReporter(report.LogLevelSilent)
	src := report.NewSourceText("/proj/main.sysc", "main.sysc", text)
	return ParseFile(imp, src)
}

// parseExpr parses the text as a single expression statement and returns the
// expression.
func parseExpr(t *testing.T, text string) ast.Term {
	t.Helper()

	stmts, _, ok := parseSource(t, &fakeImporter{}, text)
	require.True(t, ok, "parse failed")
	require.Len(t, stmts, 1)

	exprStmt, isExpr := stmts[0].(*ast.ExprStmt)
	require.True(t, isExpr, "expected an expression statement, got %T", stmts[0])
	return exprStmt.X
}

// -----------------------------------------------------------------------------

func TestParseNumericDisambiguation(t *testing.T) {
	num, ok := parseExpr(t, "3.5").(*ast.NumericLit)
	require.True(t, ok)
	assert.Equal(t, "3.5", num.Value)

	num, ok = parseExpr(t, "3.").(*ast.NumericLit)
	require.True(t, ok)
	assert.Equal(t, "3.", num.Value)

	num, ok = parseExpr(t, ".5").(*ast.NumericLit)
	require.True(t, ok)
	assert.Equal(t, ".5", num.Value)

	field, ok := parseExpr(t, "3.degrees").(*ast.FieldByName)
	require.True(t, ok)
	assert.Equal(t, "degrees", field.Name)

	root, ok := field.Root.(*ast.NumericLit)
	require.True(t, ok)
	assert.Equal(t, "3", root.Value)
}

func TestParseFieldByIndex(t *testing.T) {
	field, ok := parseExpr(t, "pair.0").(*ast.FieldByIndex)
	require.True(t, ok)
	assert.Equal(t, "0", field.Index)
}

func TestParsePrecedence(t *testing.T) {
	// Multiplication binds tighter than addition.
	sum, ok := parseExpr(t, "1 + 2 * 3").(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "add", sum.Op.Name)

	product, ok := sum.Rhs.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "mul", product.Op.Name)

	// Comparison binds looser than arithmetic, `&` looser than shifts.
	cmp, ok := parseExpr(t, "a << 1 < b & c").(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "less", cmp.Op.Name)

	and, ok := cmp.Rhs.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "bitwise_and", and.Op.Name)
}

func TestParseLeftAssociativity(t *testing.T) {
	diff, ok := parseExpr(t, "a - b - c").(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "sub", diff.Op.Name)

	inner, ok := diff.Lhs.(*ast.BinaryOp)
	require.True(t, ok)
	assert.Equal(t, "sub", inner.Op.Name)
}

func TestParseNAryLogicalChains(t *testing.T) {
	conj, ok := parseExpr(t, "a && b && c").(*ast.Conjunction)
	require.True(t, ok)
	assert.Len(t, conj.Operands, 3)
	assert.Len(t, conj.OpSpans, 2)

	// Conjunctions nest inside disjunctions.
	disj, ok := parseExpr(t, "a && b || c").(*ast.Disjunction)
	require.True(t, ok)
	require.Len(t, disj.Operands, 2)

	_, ok = disj.Operands[0].(*ast.Conjunction)
	assert.True(t, ok)
}

func TestParseChainedAssignmentIsRightAssociative(t *testing.T) {
	asn, ok := parseExpr(t, "a = b += c").(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, "assign", asn.Op.Name)

	inner, ok := asn.Rhs.(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, "add_assign", inner.Op.Name)
}

func TestParsePrefixOperators(t *testing.T) {
	neg, ok := parseExpr(t, "-x").(*ast.UnaryOp)
	require.True(t, ok)
	assert.Equal(t, "minus", neg.Op.Name)

	recip, ok := parseExpr(t, "/x").(*ast.UnaryOp)
	require.True(t, ok)
	assert.Equal(t, "reciprocal", recip.Op.Name)
}

func TestParseParenVersusTuple(t *testing.T) {
	_, isParen := parseExpr(t, "(1)").(*ast.Paren)
	assert.True(t, isParen)

	tup, isTuple := parseExpr(t, "(1,)").(*ast.Tuple)
	require.True(t, isTuple)
	assert.Len(t, tup.Elements, 1)

	tup, isTuple = parseExpr(t, "(1, 2)").(*ast.Tuple)
	require.True(t, isTuple)
	assert.Len(t, tup.Elements, 2)

	tup, isTuple = parseExpr(t, "()").(*ast.Tuple)
	require.True(t, isTuple)
	assert.Empty(t, tup.Elements)
}

func TestParseEmptyListSlots(t *testing.T) {
	tup, ok := parseExpr(t, "(, 2)").(*ast.Tuple)
	require.True(t, ok)
	require.Len(t, tup.Elements, 2)

	assert.True(t, tup.Elements[0].IsEmpty())
	assert.NotNil(t, tup.Elements[0].CommaSpan)
	assert.False(t, tup.Elements[1].IsEmpty())
}

func TestParseCallAndAnnotation(t *testing.T) {
	call, ok := parseExpr(t, "f(x, 2)").(*ast.Call)
	require.True(t, ok)
	assert.Len(t, call.Args, 2)

	annot, ok := parseExpr(t, "x: int").(*ast.TypeAnnotation)
	require.True(t, ok)

	_, isInt := annot.Type.(*ast.IntTypeLit)
	assert.True(t, isInt)
}

func TestParseExpressionEndsAtLineBreak(t *testing.T) {
	stmts, _, ok := parseSource(t, &fakeImporter{}, "a\n+ b\n")
	require.True(t, ok)

	// The `+ b` is its own statement: a prefix application.
	require.Len(t, stmts, 2)
}

func TestParseDelimitedExpressionSpansLines(t *testing.T) {
	sum, ok := parseExpr(t, "(a\n+ b)").(*ast.Paren)
	require.True(t, ok)

	_, isBinary := sum.Inner.(*ast.BinaryOp)
	assert.True(t, isBinary)
}

func TestParseFieldAccessSpansLines(t *testing.T) {
	stmts, _, ok := parseSource(t, &fakeImporter{}, "a.\n  b\n")
	require.True(t, ok)
	require.Len(t, stmts, 1)

	field, isField := stmts[0].(*ast.ExprStmt).X.(*ast.FieldByName)
	require.True(t, isField)
	assert.Equal(t, "b", field.Name)
}

func TestParseMissingLineBreak(t *testing.T) {
	_, _, ok := parseSource(t, &fakeImporter{}, "f(x) g(y)\n")
	assert.False(t, ok)
	assert.Positive(t, report.ErrorCount())
}

// -----------------------------------------------------------------------------

func TestParseWhileLoop(t *testing.T) {
	stmts, _, ok := parseSource(t, &fakeImporter{}, "while x\n  f(x)\n  var y\nend\n")
	require.True(t, ok)
	require.Len(t, stmts, 1)

	loop, isLoop := stmts[0].(*ast.WhileLoop)
	require.True(t, isLoop)
	require.Len(t, loop.Body, 2)

	_, isDecl := loop.Body[1].(*ast.VarDecl)
	assert.True(t, isDecl)
}

func TestParseUnclosedBlocks(t *testing.T) {
	report.InitReporter(report.LogLevelSilent)

	src := report.NewSourceText("/proj/main.sysc", "main.sysc", "while a\n  while b\n    c\n")
	_, _, ok := ParseFile(&fakeImporter{}, src)
	assert.False(t, ok)
}

func TestParseFunctionDefinition(t *testing.T) {
	imp := &fakeImporter{}
	stmts, items, ok := parseSource(t, imp, "func add(a: int, b: int) -> int\n  a\nend\n")
	require.True(t, ok)
	assert.Empty(t, stmts)

	item, exists := items["add"]
	require.True(t, exists)
	assert.Equal(t, ast.ItemFunction, item.Kind)
	require.Equal(t, []int{0}, item.Overloads)

	require.Len(t, imp.defs, 1)
	def := imp.defs[0]
	assert.True(t, def.HasParams)
	assert.Len(t, def.Params, 2)
	require.NotNil(t, def.ReturnType)
	assert.Len(t, def.Body, 1)
}

func TestParseFunctionOverloads(t *testing.T) {
	imp := &fakeImporter{}
	_, items, ok := parseSource(t, imp, "func f\nend\nfunc f(x)\n  x\nend\n")
	require.True(t, ok)

	item := items["f"]
	assert.Equal(t, []int{0, 1}, item.Overloads)

	assert.False(t, imp.defs[0].HasParams)
	assert.True(t, imp.defs[1].HasParams)
}

func TestParseTypeParametersRejected(t *testing.T) {
	_, _, ok := parseSource(t, &fakeImporter{}, "func f[T](x)\n  x\nend\n")
	assert.False(t, ok)
}

func TestParseReservedKeywordsRejected(t *testing.T) {
	_, _, ok := parseSource(t, &fakeImporter{}, "return 5\n")
	assert.False(t, ok)
	assert.Positive(t, report.ErrorCount())
}

// -----------------------------------------------------------------------------

func TestParseImplicitImport(t *testing.T) {
	imp := &fakeImporter{}
	_, items, ok := parseSource(t, imp, "import util\n")
	require.True(t, ok)

	item, exists := items["util"]
	require.True(t, exists)
	assert.Equal(t, ast.ItemImport, item.Kind)
	assert.Equal(t, 0, item.FileIndex)

	require.Len(t, imp.imports, 1)
	assert.Equal(t, filepath.Join("/proj", "util"), imp.imports[0])
}

func TestParseExplicitImportPath(t *testing.T) {
	imp := &fakeImporter{}
	_, items, ok := parseSource(t, imp, "import util(\"lib/util\")\n")
	require.True(t, ok)
	require.Contains(t, items, "util")

	require.Len(t, imp.imports, 1)
	assert.Equal(t, filepath.Join("/proj", "lib", "util"), imp.imports[0])
}

func TestParseImportPathMustBePlainString(t *testing.T) {
	_, _, ok := parseSource(t, &fakeImporter{}, "import util(\"lib/{x}\")\n")
	assert.False(t, ok)
}

func TestParseCircularImport(t *testing.T) {
	imp := &fakeImporter{importErrs: map[string]error{"util": ErrCircularImport}}
	_, _, ok := parseSource(t, imp, "import util\n")
	assert.False(t, ok)
	assert.Positive(t, report.ErrorCount())
}

func TestParseDuplicateTopLevelName(t *testing.T) {
	imp := &fakeImporter{}
	_, _, ok := parseSource(t, imp, "import f\nfunc f\nend\n")
	assert.False(t, ok)
}
