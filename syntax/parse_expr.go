package syntax

import (
	"sysc/ast"
	"sysc/report"
)

// This file parses expressions.  Precedence runs, lowest first:
//
//	assignment (right associative)
//	disjunction (`||`, n-ary)
//	conjunction (`&&`, n-ary)
//	equality, ordering, `|`, `^`, `&`, shifts, `+ -`, `* / %` (left associative)
//	prefix operators
//	postfix suffixes (field access, annotation, call, ...)
//
// Every operator is represented as a synthetic method name positioned at the
// operator token.
//
// The `delimited` flag threads through every level: inside parentheses,
// brackets, and interpolated strings expressions may span lines freely;
// outside, a line break ends the expression before a left-associative
// operator or most suffixes.  Field access and type annotation suffixes are
// the exceptions and continue across line breaks everywhere.

// assignOperators maps assignment token kinds to their method names.
var assignOperators = map[int]string{
	TOK_ASSIGN:   "assign",
	TOK_PLUSEQ:   "add_assign",
	TOK_MINUSEQ:  "sub_assign",
	TOK_STAREQ:   "mul_assign",
	TOK_DIVEQ:    "div_assign",
	TOK_MODEQ:    "rem_assign",
	TOK_RSHIFTEQ: "right_shift_assign",
	TOK_LSHIFTEQ: "left_shift_assign",
	TOK_AMPEQ:    "bitwise_and_assign",
	TOK_CARETEQ:  "bitwise_xor_assign",
	TOK_PIPEEQ:   "bitwise_or_assign",
}

// infixLevels lists the left-associative binary tiers from loosest to
// tightest binding, mapping token kinds to method names within each tier.
var infixLevels = []map[int]string{
	{TOK_EQ: "equal", TOK_NEQ: "not_equal"},
	{TOK_GT: "greater", TOK_GTEQ: "greater_or_equal", TOK_LT: "less", TOK_LTEQ: "less_or_equal"},
	{TOK_PIPE: "bitwise_or"},
	{TOK_CARET: "bitwise_xor"},
	{TOK_AMP: "bitwise_and"},
	{TOK_RSHIFT: "right_shift", TOK_LSHIFT: "left_shift"},
	{TOK_PLUS: "add", TOK_MINUS: "sub"},
	{TOK_STAR: "mul", TOK_DIV: "div", TOK_MOD: "rem"},
}

// prefixOperators maps prefix token kinds to their method names.
var prefixOperators = map[int]string{
	TOK_PLUS:  "plus",
	TOK_MINUS: "minus",
	TOK_DIV:   "reciprocal",
	TOK_NOT:   "logical_not",
	TOK_TILDE: "bitwise_not",
}

// parseAssign parses an assignment-level expression.  Returns nil if no
// expression is present.
func (p *Parser) parseAssign(delimited bool) ast.Term {
	start := p.tokStart

	lhs := p.parseDisjunction(delimited)

	if p.tok == nil {
		return lhs
	}

	name, ok := assignOperators[p.tok.Kind]
	if !ok {
		return lhs
	}

	op := &ast.MethodName{TermBase: ast.NewTermBase(p.tok.Span), Name: name}
	p.consume()

	rhs := p.parseAssign(delimited)

	return &ast.Assignment{
		TermBase: ast.NewTermBase(p.rangeFrom(start)),
		Lhs:      lhs,
		Op:       op,
		Rhs:      rhs,
	}
}

// parseDisjunction parses a chain of `||` operators into a single flat node.
func (p *Parser) parseDisjunction(delimited bool) ast.Term {
	start := p.tokStart

	term := p.parseConjunction(delimited)
	if p.tok == nil || p.tok.Kind != TOK_LOR {
		return term
	}

	operands := []ast.Term{term}
	var opSpans []*report.TextSpan
	for p.tok != nil && p.tok.Kind == TOK_LOR {
		opSpans = append(opSpans, p.tok.Span)
		p.consume()

		operands = append(operands, p.parseConjunction(delimited))
	}

	return &ast.Disjunction{
		TermBase: ast.NewTermBase(p.rangeFrom(start)),
		Operands: operands,
		OpSpans:  opSpans,
	}
}

// parseConjunction parses a chain of `&&` operators into a single flat node.
func (p *Parser) parseConjunction(delimited bool) ast.Term {
	start := p.tokStart

	term := p.parseBinaryLevel(delimited, 0)
	if p.tok == nil || p.tok.Kind != TOK_LAND {
		return term
	}

	operands := []ast.Term{term}
	var opSpans []*report.TextSpan
	for p.tok != nil && p.tok.Kind == TOK_LAND {
		opSpans = append(opSpans, p.tok.Span)
		p.consume()

		operands = append(operands, p.parseBinaryLevel(delimited, 0))
	}

	return &ast.Conjunction{
		TermBase: ast.NewTermBase(p.rangeFrom(start)),
		Operands: operands,
		OpSpans:  opSpans,
	}
}

// parseBinaryLevel parses one left-associative binary tier, recursing into
// the next tighter tier for its operands.
func (p *Parser) parseBinaryLevel(delimited bool, level int) ast.Term {
	if level >= len(infixLevels) {
		return p.parseFactor(delimited)
	}

	start := p.tokStart

	lhs := p.parseBinaryLevel(delimited, level+1)

	for p.tok != nil {
		if !delimited && p.tok.IsOnNewLine {
			break
		}

		name, ok := infixLevels[level][p.tok.Kind]
		if !ok {
			break
		}

		op := &ast.MethodName{TermBase: ast.NewTermBase(p.tok.Span), Name: name}
		p.consume()

		rhs := p.parseBinaryLevel(delimited, level+1)

		lhs = &ast.BinaryOp{
			TermBase: ast.NewTermBase(p.rangeFrom(start)),
			Lhs:      lhs,
			Op:       op,
			Rhs:      rhs,
		}
	}

	return lhs
}

// parseFactor parses an atomic expression with any prefix operators and
// postfix suffixes attached.  Returns nil if no expression is present.
func (p *Parser) parseFactor(delimited bool) ast.Term {
	if p.tok == nil {
		return nil
	}

	start := p.tokStart

	var factor ast.Term
	switch p.tok.Kind {
	case TOK_UNDERSCORE:
		p.consume()
		factor = &ast.Wildcard{TermBase: ast.NewTermBase(p.rangeFrom(start))}
	case TOK_INT:
		p.consume()
		factor = &ast.IntTypeLit{TermBase: ast.NewTermBase(p.rangeFrom(start))}
	case TOK_FLOAT:
		p.consume()
		factor = &ast.FloatTypeLit{TermBase: ast.NewTermBase(p.rangeFrom(start))}
	case TOK_IDENT:
		name := p.tok.Value
		p.consume()
		factor = &ast.Identifier{TermBase: ast.NewTermBase(p.rangeFrom(start)), Name: name}
	case TOK_STRINGLIT:
		components := p.tok.Components
		p.consume()
		factor = &ast.StringLit{TermBase: ast.NewTermBase(p.rangeFrom(start)), Components: components}
	case TOK_DIGITS:
		factor = p.parseNumericFactor(start)
	case TOK_DOT:
		dotSpan := p.tok.Span
		p.consume()

		t := p.adjacentTok()
		if t == nil || t.Kind != TOK_DIGITS {
			p.errorOn(dotSpan, "expected digits immediately after `.`")
		}

		value := "." + t.Value
		p.consume()
		factor = &ast.NumericLit{TermBase: ast.NewTermBase(p.rangeFrom(start)), Value: value}
	case TOK_LPAREN:
		factor = p.parseParenFactor(start)
	default:
		name, ok := prefixOperators[p.tok.Kind]
		if !ok {
			return nil
		}

		op := &ast.MethodName{TermBase: ast.NewTermBase(p.tok.Span), Name: name}
		p.consume()

		operand := p.parseFactor(delimited)
		factor = &ast.UnaryOp{
			TermBase: ast.NewTermBase(p.rangeFrom(start)),
			Op:       op,
			Operand:  operand,
		}
	}

	return p.parseFactorSuffix(start, factor, delimited)
}

// parseNumericFactor parses a numeric literal beginning with a digits token,
// handling the fractional-part lookahead.  The digits may be followed by an
// adjacent `.` which either begins a fractional part or, when an identifier
// follows it, is instead field access on the integer literal (`3.degrees`).
func (p *Parser) parseNumericFactor(start Index) ast.Term {
	value := p.tok.Value
	p.consume()

	t := p.adjacentTok()
	if t == nil || t.Kind != TOK_DOT {
		return &ast.NumericLit{TermBase: ast.NewTermBase(p.rangeFrom(start)), Value: value}
	}

	numberSpan := p.rangeFrom(start)
	p.consume()

	if p.tok != nil && p.tok.Kind == TOK_IDENT {
		number := &ast.NumericLit{TermBase: ast.NewTermBase(numberSpan), Value: value}
		name := p.tok.Value
		p.consume()

		return &ast.FieldByName{
			TermBase: ast.NewTermBase(p.rangeFrom(start)),
			Root:     number,
			Name:     name,
		}
	}

	value += "."
	if t := p.adjacentTok(); t != nil && t.Kind == TOK_DIGITS {
		value += t.Value
		p.consume()
	}

	return &ast.NumericLit{TermBase: ast.NewTermBase(p.rangeFrom(start)), Value: value}
}

// parseParenFactor parses a parenthesized expression or a tuple, beginning on
// the opening parenthesis.  A single element with no trailing comma is
// grouping; anything else is a tuple.
func (p *Parser) parseParenFactor(start Index) ast.Term {
	openSpan := p.tok.Span
	p.consume()

	elements, hasTrailingComma := p.parseListUntil(openSpan, TOK_RPAREN, "parentheses")

	if len(elements) == 1 && !hasTrailingComma && !elements[0].IsEmpty() {
		return &ast.Paren{
			TermBase: ast.NewTermBase(p.rangeFrom(start)),
			Inner:    elements[0].X,
		}
	}

	return &ast.Tuple{
		TermBase: ast.NewTermBase(p.rangeFrom(start)),
		Elements: elements,
	}
}

// parseListUntil parses a comma-separated expression list up to and including
// the closing delimiter.  Interior empty slots are kept with their comma
// positions; the second return value reports whether the list ended with a
// trailing comma (or was empty).
func (p *Parser) parseListUntil(openSpan *report.TextSpan, closeKind int, noun string) ([]ast.ListElement, bool) {
	var elements []ast.ListElement
	for {
		element := p.parseAssign(true)

		if p.tok == nil {
			panic(report.
				Raise(p.tokSpan(), "input ended inside %s", noun).
				WithNote(openSpan, "%s opened here", noun))
		}

		switch p.tok.Kind {
		case closeKind:
			p.consume()

			if element != nil {
				elements = append(elements, ast.ListElement{X: element})
				return elements, false
			}

			return elements, true
		case TOK_COMMA:
			commaSpan := p.tok.Span
			p.consume()

			if element != nil {
				elements = append(elements, ast.ListElement{X: element})
			} else {
				elements = append(elements, ast.ListElement{CommaSpan: commaSpan})
			}
		default:
			panic(report.
				Raise(p.tok.Span, "unexpected %s in %s", p.tok.KindName(), noun).
				WithNote(openSpan, "%s opened here", noun))
		}
	}
}

// parseFactorSuffix parses the chain of postfix suffixes following a factor.
// Field access and type annotation continue across line breaks; outside a
// delimited context every other suffix ends at a line break.
func (p *Parser) parseFactorSuffix(start Index, factor ast.Term, delimited bool) ast.Term {
	for p.tok != nil {
		switch p.tok.Kind {
		case TOK_DOT:
			dotSpan := p.tok.Span
			p.consume()

			switch {
			case p.tok != nil && p.tok.Kind == TOK_IDENT:
				name := p.tok.Value
				p.consume()

				factor = &ast.FieldByName{
					TermBase: ast.NewTermBase(p.rangeFrom(start)),
					Root:     factor,
					Name:     name,
				}
			case p.tok != nil && p.tok.Kind == TOK_DIGITS:
				index := p.tok.Value
				p.consume()

				factor = &ast.FieldByIndex{
					TermBase: ast.NewTermBase(p.rangeFrom(start)),
					Root:     factor,
					Index:    index,
				}
			default:
				p.errorOn(dotSpan, "expected a field name or index after `.`")
			}
		case TOK_COLON:
			colonSpan := p.tok.Span
			p.consume()

			ty := p.parseFactor(delimited)
			factor = &ast.TypeAnnotation{
				TermBase:  ast.NewTermBase(p.rangeFrom(start)),
				Value:     factor,
				ColonSpan: colonSpan,
				Type:      ty,
			}
		default:
			if !delimited && p.tok.IsOnNewLine {
				return factor
			}

			switch p.tok.Kind {
			case TOK_ARROW:
				arrowSpan := p.tok.Span
				p.consume()

				ret := p.parseFactor(delimited)
				factor = &ast.ReturnType{
					TermBase:  ast.NewTermBase(p.rangeFrom(start)),
					ArrowSpan: arrowSpan,
					Args:      factor,
					Ret:       ret,
				}
			case TOK_LPAREN:
				openSpan := p.tok.Span
				p.consume()

				args, _ := p.parseListUntil(openSpan, TOK_RPAREN, "parentheses")
				factor = &ast.Call{
					TermBase: ast.NewTermBase(p.rangeFrom(start)),
					Fn:       factor,
					Args:     args,
				}
			case TOK_LBRACKET:
				openSpan := p.tok.Span
				p.consume()

				params, _ := p.parseListUntil(openSpan, TOK_RBRACKET, "brackets")
				factor = &ast.TypeParams{
					TermBase: ast.NewTermBase(p.rangeFrom(start)),
					Root:     factor,
					Params:   params,
				}
			default:
				return factor
			}
		}
	}

	return factor
}
