package parser

import (
	"fmt"

	"gnix/internal/ast"
	"gnix/internal/errors"
	"gnix/token"
)

// The keyword constructs find their separators by parsing forward on the
// same run. Groups are opaque, so a 'then' nested in brackets never ends
// an outer 'if'.

func (p *Parser) expectKeyword(construct, word string, start token.Span) *ast.Error {
	if p.matchKeyword(word) {
		return nil
	}
	bad := p.errorAtCurrent(errors.ErrorMissingKeyword, fmt.Sprintf("expected '%s' in '%s' expression", word, construct))
	bad.Span = token.Join(start, bad.Span)
	return bad
}

func (p *Parser) expectSemicolon(construct string, start token.Span) *ast.Error {
	if p.match(token.SEMICOLON) {
		return nil
	}
	bad := p.errorAtCurrent(errors.ErrorMissingKeyword, fmt.Sprintf("expected ';' after '%s' expression", construct))
	bad.Span = token.Join(start, bad.Span)
	return bad
}

func (p *Parser) parseAssert() ast.Expr {
	start := p.advance().NodeSpan()
	condition := p.parseExpr()
	if bad := p.expectSemicolon("assert", start); bad != nil {
		return bad
	}
	target := p.parseExpr()

	return &ast.Assert{
		Span:       token.Join(start, ast.SpanOf(target)),
		Expression: condition,
		Target:     target,
	}
}

func (p *Parser) parseWith() ast.Expr {
	start := p.advance().NodeSpan()
	scope := p.parseExpr()
	if bad := p.expectSemicolon("with", start); bad != nil {
		return bad
	}
	target := p.parseExpr()

	return &ast.With{
		Span:       token.Join(start, ast.SpanOf(target)),
		Expression: scope,
		Target:     target,
	}
}

func (p *Parser) parseLetIn() ast.Expr {
	start := p.advance().NodeSpan()
	bindings := p.parseBindings()
	if bad := p.expectKeyword("let", "in", start); bad != nil {
		return bad
	}
	target := p.parseExpr()

	return &ast.LetIn{
		Span:     token.Join(start, ast.SpanOf(target)),
		Bindings: bindings,
		Target:   target,
	}
}

func (p *Parser) parseIfThenElse() ast.Expr {
	start := p.advance().NodeSpan()
	predicate := p.parseExpr()
	if bad := p.expectKeyword("if", "then", start); bad != nil {
		return bad
	}
	then := p.parseExpr()
	if bad := p.expectKeyword("if", "else", start); bad != nil {
		return bad
	}
	otherwise := p.parseExpr()

	return &ast.IfThenElse{
		Span:      token.Join(start, ast.SpanOf(otherwise)),
		Predicate: predicate,
		Then:      then,
		Else:      otherwise,
	}
}
