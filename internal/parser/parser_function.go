package parser

import (
	"fmt"

	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/token"
)

// isSimpleHead matches "x:".
func (p *Parser) isSimpleHead() bool {
	return leafAt(p.peek(), token.IDENTIFIER) && leafAt(p.peekAt(1), token.COLON)
}

// destructuredHead matches "{ ... }:", "{ ... }@name:" and "name@{ ... }:".
func (p *Parser) destructuredHead() (*Group, string, bool) {
	if g, ok := groupAt(p.peek(), token.LBRACE); ok {
		if leafAt(p.peekAt(1), token.COLON) {
			return g, "", true
		}
		if leafAt(p.peekAt(1), token.AT) && leafAt(p.peekAt(2), token.IDENTIFIER) && leafAt(p.peekAt(3), token.COLON) {
			return g, p.peekAt(2).(Leaf).Token.Content, true
		}
		return nil, "", false
	}

	if leafAt(p.peek(), token.IDENTIFIER) && leafAt(p.peekAt(1), token.AT) && leafAt(p.peekAt(3), token.COLON) {
		if g, ok := groupAt(p.peekAt(2), token.LBRACE); ok {
			return g, p.peek().(Leaf).Token.Content, true
		}
	}
	return nil, "", false
}

func (p *Parser) parseSimpleFunction() ast.Expr {
	name := p.advance().(Leaf).Token
	p.advance() // ':'

	body := p.parseExpr()
	return &ast.Function{
		Span: token.Join(name.Span, ast.SpanOf(body)),
		Head: &ast.FunctionHeadSimple{Span: name.Span, Identifier: name.Content},
		Body: body,
	}
}

func (p *Parser) parseDestructuredFunction(g *Group, name string) ast.Expr {
	start := p.currentSpan()
	for !p.check(token.COLON) {
		p.advance()
	}
	headSpan := p.spanFrom(start)
	p.advance() // ':'

	head, bad := p.parseFunctionPattern(g)
	body := p.parseExpr()
	span := token.Join(headSpan, ast.SpanOf(body))

	if bad != nil {
		return &ast.Error{Span: span, Message: bad.Message}
	}

	head.Span = headSpan
	head.Identifier = name
	for _, arg := range head.Arguments {
		if arg.Identifier == name {
			return p.errorNode(errors.ErrorMalformedFunctionHead,
				fmt.Sprintf("'%s' is bound both by '@' and by the pattern", name), headSpan)
		}
	}

	return &ast.Function{Span: span, Head: head, Body: body}
}

// parseFunctionPattern parses the comma separated entries of "{ a, b ? 1, ... }".
func (p *Parser) parseFunctionPattern(g *Group) (*ast.FunctionHeadDestructured, *ast.Error) {
	inner := p.enter(g)
	head := &ast.FunctionHeadDestructured{Arguments: []ast.FunctionHeadDestructuredArgument{}}
	seen := map[string]bool{}

	for !inner.isAtEnd() {
		if head.Ellipsis {
			return nil, inner.errorAtCurrent(errors.ErrorMalformedFunctionHead, "'...' must be the last entry of a function pattern")
		}

		switch {
		case inner.match(token.ELLIPSIS):
			head.Ellipsis = true

		case inner.check(token.IDENTIFIER):
			tok := inner.advance().(Leaf).Token
			if seen[tok.Content] {
				return nil, inner.errorNode(errors.ErrorMalformedFunctionHead,
					fmt.Sprintf("duplicate argument '%s' in function pattern", tok.Content), tok.Span)
			}
			seen[tok.Content] = true

			arg := ast.FunctionHeadDestructuredArgument{Span: tok.Span, Identifier: tok.Content}
			if inner.match(token.HAS_ATTR) {
				arg.Default = inner.parseExpr()
				if _, isErr := arg.Default.(*ast.Error); isErr {
					return nil, arg.Default.(*ast.Error)
				}
				arg.Span = token.Join(tok.Span, ast.SpanOf(arg.Default))
			}
			head.Arguments = append(head.Arguments, arg)

		default:
			return nil, inner.errorAtCurrent(errors.ErrorMalformedFunctionHead,
				"function pattern entries must be identifiers, 'name ? default' or '...'")
		}

		if !inner.isAtEnd() && !inner.match(token.COMMA) {
			return nil, inner.errorAtCurrent(errors.ErrorMalformedFunctionHead, "expected ',' between function pattern entries")
		}
	}

	return head, nil
}
