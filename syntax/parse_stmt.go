package syntax

import (
	"errors"
	"path/filepath"

	"sysc/ast"
	"sysc/report"
)

// reservedStmtKeywords maps keywords that are recognized but whose statements
// are not implemented yet to their rejection messages.
var reservedStmtKeywords = map[int]string{
	TOK_EXPORT:   "`export` is not supported yet",
	TOK_STRUCT:   "`struct` definitions are not supported yet",
	TOK_METHOD:   "`method` definitions are not supported yet",
	TOK_IF:       "`if` statements are not supported yet",
	TOK_ELSE:     "`else` without a matching `if`",
	TOK_BREAK:    "`break` is not supported yet",
	TOK_CONTINUE: "`continue` is not supported yet",
	TOK_RETURN:   "`return` is not supported yet",
}

// ParseFile parses a whole source file, reporting any compile error it
// encounters.  It returns the file's top-level statements and its item table,
// and whether parsing succeeded.  Imports and function definitions are handed
// off to the importer as they are parsed.
func ParseFile(imp Importer, src *report.SourceText) (stmts []ast.Stmt, items map[string]ast.Item, ok bool) {
	items = make(map[string]ast.Item)
	ok = true

	defer report.CatchErrors(src)
	defer func() {
		if err := recover(); err != nil {
			ok = false
			panic(err)
		}
	}()

	p := NewParser(imp, filepath.Dir(src.AbsPath), NewLexer(NewSourceCursor(src.Text)))

	for p.tok != nil {
		switch p.tok.Kind {
		case TOK_IMPORT:
			name, nameSpan, fileIndex := p.parseImport()

			if _, exists := items[name]; exists {
				p.errorOn(nameSpan, "multiple definitions of `%s`", name)
			}

			items[name] = ast.Item{Kind: ast.ItemImport, FileIndex: fileIndex}
		case TOK_FUNC:
			name, def := p.parseFunctionDefinition(src.AbsPath)
			defIndex := p.imp.AddFunctionDef(def)

			if item, exists := items[name]; exists {
				if item.Kind != ast.ItemFunction {
					p.errorOn(def.NameSpan, "multiple definitions of `%s`", name)
				}

				item.Overloads = append(item.Overloads, defIndex)
				items[name] = item
			} else {
				items[name] = ast.Item{Kind: ast.ItemFunction, Overloads: []int{defIndex}}
			}
		default:
			var openBlocks []*report.TextSpan
			stmt := p.parseStmt(&openBlocks)
			if stmt == nil {
				p.errorOn(p.tokSpan(), "unexpected %s at top level", p.tok.KindName())
			}

			stmts = append(stmts, stmt)
		}
	}

	return
}

// parseStmt parses a single statement.  Returns nil if the lookahead token
// cannot begin a statement.  openBlocks is the stack of spans of the blocks
// enclosing the statement, used to annotate unclosed-block errors.
func (p *Parser) parseStmt(openBlocks *[]*report.TextSpan) ast.Stmt {
	if p.tok == nil {
		return nil
	}

	start := p.tokStart

	switch p.tok.Kind {
	case TOK_VAR:
		varSpan := p.tok.Span
		p.consume()

		target := p.parseAssign(false)
		if target == nil {
			p.errorOn(varSpan, "expected a variable name after `var`")
		}

		p.requireLineBreak(target.Span())

		return &ast.VarDecl{StmtBase: ast.NewStmtBase(p.rangeFrom(start)), Target: target}
	case TOK_WHILE:
		whileSpan := p.tok.Span
		p.consume()

		if !p.hasTokOnCurrentLine() {
			p.errorOn(whileSpan, "expected a loop condition after `while`")
		}

		cond := p.parseDisjunction(false)
		if cond == nil {
			panic(report.
				Raise(p.tokSpan(), "unexpected %s after `while`", p.tok.KindName()).
				WithNote(whileSpan, "`while` is here"))
		}

		p.requireLineBreak(cond.Span())

		*openBlocks = append(*openBlocks, whileSpan)
		body := p.parseBlock(openBlocks)
		*openBlocks = (*openBlocks)[:len(*openBlocks)-1]

		return &ast.WhileLoop{
			StmtBase: ast.NewStmtBase(p.rangeFrom(start)),
			Cond:     cond,
			Body:     body,
		}
	default:
		if msg, reserved := reservedStmtKeywords[p.tok.Kind]; reserved {
			p.errorOn(p.tok.Span, msg)
		}

		x := p.parseAssign(false)
		if x == nil {
			return nil
		}

		p.requireLineBreak(x.Span())

		return &ast.ExprStmt{StmtBase: ast.NewStmtBase(p.rangeFrom(start)), X: x}
	}
}

// requireLineBreak raises an error if another token follows the given span on
// the same line.
func (p *Parser) requireLineBreak(after *report.TextSpan) {
	if p.hasTokOnCurrentLine() {
		panic(report.
			Raise(p.tokSpan(), "expected a line break before %s", p.tok.KindName()).
			WithNote(after, "the statement ends here"))
	}
}

// parseBlock parses a block of statements terminated by `end`, consuming the
// `end`.
func (p *Parser) parseBlock(openBlocks *[]*report.TextSpan) []ast.Stmt {
	var stmts []ast.Stmt
	for {
		if p.tok != nil && p.tok.Kind == TOK_END {
			p.consume()
			return stmts
		}

		stmt := p.parseStmt(openBlocks)
		if stmt != nil {
			stmts = append(stmts, stmt)
			continue
		}

		var cerr *report.LocalCompileError
		if p.tok != nil {
			cerr = report.Raise(p.tokSpan(), "unexpected %s in block", p.tok.KindName())
		} else {
			cerr = report.Raise(p.tokSpan(), "input ended before every block was closed with `end`")
		}

		for _, open := range *openBlocks {
			cerr = cerr.WithNote(open, "block opened here")
		}

		panic(cerr)
	}
}

// parseFunctionDefinition parses a `func` definition, beginning on the `func`
// keyword, and returns the function's name along with the definition.
func (p *Parser) parseFunctionDefinition(path string) (string, *ast.FunctionDefinition) {
	funcSpan := p.tok.Span
	p.consume()

	nameTok := p.tokOnCurrentLine()
	if nameTok == nil {
		p.errorOn(funcSpan, "expected a function name after `func`")
	} else if nameTok.Kind != TOK_IDENT {
		panic(report.
			Raise(nameTok.Span, "expected a function name, found %s", nameTok.KindName()).
			WithNote(funcSpan, "`func` is here"))
	}

	name := nameTok.Value
	nameSpan := nameTok.Span
	p.consume()

	// Type parameters are recognized but not implemented yet.
	if t := p.tokOnCurrentLine(); t != nil && t.Kind == TOK_LBRACKET {
		p.errorOn(t.Span, "type parameters are not supported yet")
	}

	var params []ast.ListElement
	hasParams := false
	if t := p.tokOnCurrentLine(); t != nil && t.Kind == TOK_LPAREN {
		openSpan := t.Span
		p.consume()

		params, _ = p.parseListUntil(openSpan, TOK_RPAREN, "parentheses")
		hasParams = true
	}

	var returnType *ast.ReturnTypeAnnot
	if p.tok != nil && p.tok.Kind == TOK_ARROW {
		arrowSpan := p.tok.Span
		p.consume()

		returnType = &ast.ReturnTypeAnnot{ArrowSpan: arrowSpan, Type: p.parseDisjunction(false)}
	}

	openBlocks := []*report.TextSpan{funcSpan}
	body := p.parseBlock(&openBlocks)

	return name, &ast.FunctionDefinition{
		Path:       path,
		NameSpan:   nameSpan,
		Params:     params,
		HasParams:  hasParams,
		ReturnType: returnType,
		Body:       body,
	}
}

// parseImport parses an `import` statement, beginning on the `import`
// keyword, and returns the bound name, its span, and the file index of the
// imported file.  The import target is the bound name itself resolved in the
// importing file's directory unless an explicit parenthesized path string
// follows the name.
func (p *Parser) parseImport() (string, *report.TextSpan, int) {
	importSpan := p.tok.Span
	p.consume()

	nameTok := p.tokOnCurrentLine()
	if nameTok == nil {
		p.errorOn(importSpan, "expected a name after `import`")
	} else if nameTok.Kind != TOK_IDENT {
		panic(report.
			Raise(nameTok.Span, "expected a name after `import`, found %s", nameTok.KindName()).
			WithNote(importSpan, "`import` is here"))
	}

	name := nameTok.Value
	nameSpan := nameTok.Span
	p.consume()

	target := filepath.Join(p.fileDir, name)
	if t := p.tokOnCurrentLine(); t != nil {
		if t.Kind != TOK_LPAREN {
			panic(report.
				Raise(t.Span, "unexpected %s after import name", t.KindName()).
				WithNote(nameSpan, "the import name is here"))
		}

		target = p.parseImportPath(t.Span)
	}

	fileIndex, err := p.imp.ImportFile(target)
	if err != nil {
		if errors.Is(err, ErrCircularImport) {
			p.errorOn(report.NewSpanOver(importSpan, nameSpan), "circular import of `%s`", name)
		}

		p.errorOn(report.NewSpanOver(importSpan, nameSpan), "cannot import `%s`: %s", name, err)
	}

	return name, nameSpan, fileIndex
}

// parseImportPath parses the explicit parenthesized path of an import
// statement, beginning on the opening parenthesis, and returns the path
// resolved against the importing file's directory.  The path must be a single
// plain string literal.
func (p *Parser) parseImportPath(openSpan *report.TextSpan) string {
	p.consume()

	pathTerm := p.parseAssign(true)

	if p.tok == nil {
		panic(report.
			Raise(p.tokSpan(), "input ended inside parentheses").
			WithNote(openSpan, "parentheses opened here"))
	} else if p.tok.Kind != TOK_RPAREN {
		panic(report.
			Raise(p.tok.Span, "unexpected %s in parentheses", p.tok.KindName()).
			WithNote(openSpan, "parentheses opened here"))
	}

	closeSpan := p.tok.Span
	p.consume()

	if pathTerm == nil {
		p.errorOn(report.NewSpanOver(openSpan, closeSpan), "expected an import path between the parentheses")
	}

	if lit, isLit := pathTerm.(*ast.StringLit); isLit && len(lit.Components) == 1 {
		if text, isText := lit.Components[0].(ast.StringText); isText {
			return filepath.Join(p.fileDir, filepath.FromSlash(text.Value))
		}
	}

	p.errorOn(pathTerm.Span(), "an import path must be a plain string literal")
	return ""
}
