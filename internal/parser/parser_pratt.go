package parser

import (
	"fmt"

	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/token"
)

type binaryOperator struct {
	prec  int
	right bool
	op    ast.BinaryOperator
}

// Binding power, low to high. '?' sits just above '*' and is handled
// separately since its right side is an attribute path.
var binaryPrecedence = map[token.Kind]binaryOperator{
	token.PIPE_LEFT:   {1, false, ast.PipeLeft},
	token.PIPE_RIGHT:  {1, true, ast.PipeRight},
	token.IMPLIES:     {2, true, ast.Implication},
	token.LOGICAL_OR:  {3, false, ast.LogicalOr},
	token.LOGICAL_AND: {4, false, ast.LogicalAnd},
	token.EQ:          {5, false, ast.EqualTo},
	token.NEQ:         {5, false, ast.NotEqualTo},
	token.LT:          {5, false, ast.LessThan},
	token.LTE:         {5, false, ast.LessThanOrEqualTo},
	token.GT:          {5, false, ast.GreaterThan},
	token.GTE:         {5, false, ast.GreaterThanOrEqualTo},
	token.UPDATE:      {6, true, ast.Update},
	token.ADD:         {7, false, ast.Addition},
	token.SUB:         {7, false, ast.Subtraction},
	token.LIST_CONCAT: {7, true, ast.Concatenation},
	token.MUL:         {8, false, ast.Multiplication},
	token.DIV:         {8, false, ast.Division},
}

const hasAttrPrecedence = 9

func (p *Parser) parseBinaryExpr(minPrec int) ast.Expr {
	expr := p.parseUnaryExpr()

	for {
		leaf, ok := p.peek().(Leaf)
		if !ok {
			break
		}

		if leaf.Token.Kind == token.HAS_ATTR {
			if hasAttrPrecedence < minPrec {
				break
			}
			p.advance()
			path, bad := p.parseAttrPath()
			if bad != nil {
				return bad
			}
			expr = &ast.HasAttribute{
				Span:          p.spanFrom(ast.SpanOf(expr)),
				Expression:    expr,
				AttributePath: path,
			}
			continue
		}

		info, ok := binaryPrecedence[leaf.Token.Kind]
		if !ok || info.prec < minPrec {
			break
		}
		p.advance()

		next := info.prec + 1
		if info.right {
			next = info.prec
		}
		right := p.parseBinaryExpr(next)

		expr = &ast.BinaryOperation{
			Span:     token.Join(ast.SpanOf(expr), ast.SpanOf(right)),
			Left:     expr,
			Operator: info.op,
			Right:    right,
		}
	}

	return expr
}

// parseUnaryExpr resolves '!' and '-' by position: they are prefix
// operators whenever no left operand is pending.
func (p *Parser) parseUnaryExpr() ast.Expr {
	if p.match(token.LOGICAL_NOT, token.SUB) {
		op := p.previousToken()
		operand := p.parseUnaryExpr()

		operator := ast.Not
		if op.Kind == token.SUB {
			operator = ast.Negate
		}
		return &ast.UnaryOperation{
			Span:     token.Join(op.Span, ast.SpanOf(operand)),
			Operator: operator,
			Operand:  operand,
		}
	}

	return p.parseApplication()
}

// parseApplication folds juxtaposed expressions into left-nested applications.
func (p *Parser) parseApplication() ast.Expr {
	expr := p.parseSelectExpr()

	for p.canStartArgument() {
		arg := p.parseSelectExpr()
		expr = &ast.FunctionApplication{
			Span:      token.Join(ast.SpanOf(expr), ast.SpanOf(arg)),
			Function:  expr,
			Arguments: arg,
		}
	}

	return expr
}

func (p *Parser) canStartArgument() bool {
	switch n := p.peek().(type) {
	case Leaf:
		switch n.Token.Kind {
		case token.INTEGER, token.FLOAT, token.STRING, token.BOOL, token.NULL,
			token.PATH, token.SEARCH_PATH, token.URI, token.IDENTIFIER:
			return true
		case token.KEYWORD:
			_, ok := groupAt(p.peekAt(1), token.LBRACE)
			return n.Token.Content == "rec" && ok
		}
	case *Group:
		return n.Kind() != token.INTERPOLATE
	}
	return false
}

// parseSelectExpr parses a primary followed by an optional '.' attribute
// path and 'or' default. The default is itself a select expression, so
// "f a.b or c" applies f to (a.b or c).
func (p *Parser) parseSelectExpr() ast.Expr {
	expr := p.parsePrimaryExpr()
	if !p.match(token.ATTR_SELECT) {
		return expr
	}

	path, bad := p.parseAttrPath()
	if bad != nil {
		return bad
	}

	access := &ast.PropertyAccess{
		Expression:    expr,
		AttributePath: path,
	}
	if p.matchKeyword("or") {
		if p.canStartArgument() {
			access.Default = p.parseSelectExpr()
		} else {
			access.Default = p.errorAtCurrent(errors.ErrorExpectedExpression, "expected default value after 'or'")
		}
	}
	access.Span = p.spanFrom(ast.SpanOf(expr))
	if access.Default != nil {
		access.Span = token.Join(access.Span, ast.SpanOf(access.Default))
	}
	return access
}

func (p *Parser) parsePrimaryExpr() ast.Expr {
	switch n := p.peek().(type) {
	case nil:
		return p.errorAtEnd(errors.ErrorExpectedExpression, "expected expression")

	case Leaf:
		tok := n.Token
		switch tok.Kind {
		case token.INTEGER:
			p.advance()
			return &ast.Integer{Span: tok.Span, Value: tok.Content}
		case token.FLOAT:
			p.advance()
			return &ast.Float{Span: tok.Span, Value: tok.Content}
		case token.IDENTIFIER, token.BOOL, token.NULL:
			p.advance()
			return &ast.Identifier{Span: tok.Span, ID: tok.Content}
		case token.STRING:
			p.advance()
			return p.parseStringLiteral(tok)
		case token.PATH:
			p.advance()
			return p.parsePathLiteral(tok)
		case token.SEARCH_PATH:
			p.advance()
			return &ast.SearchNixPath{Span: tok.Span, Path: tok.Content[1 : len(tok.Content)-1]}
		case token.URI:
			p.advance()
			return &ast.Uri{Span: tok.Span, Uri: tok.Content}
		case token.KEYWORD:
			if tok.Content == "rec" {
				if g, ok := groupAt(p.peekAt(1), token.LBRACE); ok {
					p.advance()
					p.advance()
					m := p.parseMap(g, true)
					m.Span = token.Join(tok.Span, m.Span)
					return m
				}
				p.advance()
				return p.errorNode(errors.ErrorUnexpectedToken, "expected '{' after 'rec'", tok.Span)
			}
		}

		if isTerminator(n) {
			return p.errorAtCurrent(errors.ErrorExpectedExpression,
				fmt.Sprintf("expected expression, found '%s'", tok.Content))
		}
		p.advance()
		return p.errorNode(errors.ErrorUnexpectedToken,
			fmt.Sprintf("unexpected '%s', expected expression", tok.Content), tok.Span)

	case *Group:
		p.advance()
		switch n.Kind() {
		case token.LPAREN:
			if len(n.Inner()) == 0 {
				return p.errorNode(errors.ErrorExpectedExpression, "expected expression inside parentheses", n.NodeSpan())
			}
			return p.enter(n).parseRun()
		case token.LBRACKET:
			return p.parseList(n)
		case token.LBRACE:
			return p.parseMap(n, false)
		default:
			return p.errorNode(errors.ErrorInvalidInterpolation,
				"'${' is only valid inside strings, paths and attribute names", n.NodeSpan())
		}
	}

	return p.errorAtCurrent(errors.ErrorExpectedExpression, "expected expression")
}

// parseList parses the elements of a [ ... ] group. Elements are select
// expressions, so "[ f x ]" has two elements.
func (p *Parser) parseList(g *Group) *ast.List {
	inner := p.enter(g)
	list := &ast.List{Span: g.NodeSpan(), Elements: []ast.Expr{}}

	for !inner.isAtEnd() {
		if inner.canStartArgument() {
			list.Elements = append(list.Elements, inner.parseSelectExpr())
			continue
		}
		node := inner.advance()
		list.Elements = append(list.Elements, inner.errorNode(errors.ErrorUnexpectedToken,
			"list elements must be simple expressions; wrap this one in parentheses", node.NodeSpan()))
	}

	return list
}
